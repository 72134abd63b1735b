package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

func newNoteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Add, list, change and archive notes",
	}
	cmd.AddCommand(
		newNoteAddCmd(a),
		newNoteListCmd(a),
		newNoteShowCmd(a),
		newNoteUpdateCmd(a),
		newNoteDeleteCmd(a),
		newNoteArchiveCmd(a),
		newNoteArchiveCompleteCmd(a),
	)
	return cmd
}

func newNoteAddCmd(a *app) *cobra.Command {
	var (
		title    string
		priority int
		category string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPriority(priority); err != nil {
				return err
			}
			if err := checkCategory(category); err != nil {
				return err
			}
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				note := types.NewNote(title, priority, category)
				api.Add(note)
				fmt.Fprintf(cmd.OutOrStdout(), "Note added: %d: %s", api.NumberOfNotes()-1, note)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title (max 20 characters)")
	cmd.Flags().IntVar(&priority, "priority", types.DefaultPriority, "priority 1-5")
	cmd.Flags().StringVar(&category, "category", "", "category: "+types.CategoryLabels())
	return cmd
}

func newNoteListCmd(a *app) *cobra.Command {
	var active, archived bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes with their items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(false, func(api *noteapi.NoteAPI) error {
				switch {
				case active:
					writeReport(cmd.OutOrStdout(), api.ListActiveNotes())
				case archived:
					writeReport(cmd.OutOrStdout(), api.ListArchivedNotes())
				default:
					writeReport(cmd.OutOrStdout(), api.ListAllNotes())
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&active, "active", false, "only notes that are not archived")
	cmd.Flags().BoolVar(&archived, "archived", false, "only archived notes")
	cmd.MarkFlagsMutuallyExclusive("active", "archived")
	return cmd
}

func newNoteShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <note>",
		Short: "Show one note and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(false, func(api *noteapi.NoteAPI) error {
				i, note, err := lookupNote(api, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s", i, note)
				return nil
			})
		},
	}
}

func newNoteUpdateCmd(a *app) *cobra.Command {
	var (
		title    string
		priority int
		category string
	)
	cmd := &cobra.Command{
		Use:   "update <note>",
		Short: "Change the title, priority or category of a note",
		Long: "Change the title, priority or category of a note. Fields whose flag is\n" +
			"not given keep their value. A title longer than 20 characters only\n" +
			"applies while the note still has the default title.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("priority") {
				if err := checkPriority(priority); err != nil {
					return err
				}
			}
			if err := checkCategory(category); err != nil {
				return err
			}
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				i, note, err := lookupNote(api, args[0])
				if err != nil {
					return err
				}
				if !flags.Changed("title") {
					title = note.Title()
				}
				if !flags.Changed("priority") {
					priority = note.Priority()
				}
				if !flags.Changed("category") {
					category = note.Category().String()
				}
				changes, _ := api.UpdateNoteChanges(i, title, priority, category)
				fmt.Fprintf(cmd.OutOrStdout(), "Note %d %s\n", i, describeChanges(changes))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().IntVar(&priority, "priority", 0, "new priority 1-5")
	cmd.Flags().StringVar(&category, "category", "", "new category: "+types.CategoryLabels())
	return cmd
}

// describeChanges renders the fields an update changed.
func describeChanges(c noteapi.NoteChanges) string {
	if !c.Any() {
		return "unchanged"
	}
	var fields []string
	if c.Title {
		fields = append(fields, "title")
	}
	if c.Priority {
		fields = append(fields, "priority")
	}
	if c.Category {
		fields = append(fields, "category")
	}
	return "updated: " + strings.Join(fields, ", ")
}

func newNoteDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note>",
		Short: "Delete a note and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				i, err := parseIndex("note", args[0])
				if err != nil {
					return err
				}
				removed := api.DeleteNote(i)
				if removed == nil {
					return userError("invalid note index [%d]", i)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %s", removed)
				return nil
			})
		},
	}
}

func newNoteArchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <note>",
		Short: "Archive a note whose items are all complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				i, note, err := lookupNote(api, args[0])
				if err != nil {
					return err
				}
				if note.Archived() {
					return userError("note %d is already archived", i)
				}
				if !api.ArchiveNote(i) {
					return userError("note %d has incomplete items", i)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Note %d archived\n", i)
				return nil
			})
		},
	}
}

func newNoteArchiveCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive-complete",
		Short: "Archive every active note whose items are all complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				writeReport(cmd.OutOrStdout(), api.ArchiveNotesWithAllItemsComplete())
				return nil
			})
		},
	}
}
