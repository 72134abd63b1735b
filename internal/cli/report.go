package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reports over notes and items",
	}
	cmd.AddCommand(
		a.readOnly("overview", "Active notes, then archived notes", cobra.NoArgs,
			func(w io.Writer, api *noteapi.NoteAPI, _ []string) error {
				writeOverview(w, api)
				return nil
			}),
		a.readOnly("category <category>", "Notes in a category", cobra.ExactArgs(1),
			func(w io.Writer, api *noteapi.NoteAPI, args []string) error {
				if err := requireCategory(args[0]); err != nil {
					return err
				}
				writeReport(w, api.ListNotesBySelectedCategory(args[0]))
				return nil
			}),
		a.readOnly("priority <priority>", "Notes with a priority", cobra.ExactArgs(1),
			func(w io.Writer, api *noteapi.NoteAPI, args []string) error {
				p, err := parsePriority(args[0])
				if err != nil {
					return err
				}
				writeReport(w, api.ListNotesBySelectedPriority(p))
				return nil
			}),
		a.readOnly("todo", "Every todo item with its note title", cobra.NoArgs,
			func(w io.Writer, api *noteapi.NoteAPI, _ []string) error {
				writeReport(w, api.ListTodoItems())
				return nil
			}),
		a.readOnly("item-status <category>", "Completed and todo items in a category", cobra.ExactArgs(1),
			func(w io.Writer, api *noteapi.NoteAPI, args []string) error {
				if err := requireCategory(args[0]); err != nil {
					return err
				}
				writeReport(w, api.ListItemStatusByCategory(args[0]))
				return nil
			}),
		a.readOnly("counts", "Note and item totals", cobra.NoArgs,
			func(w io.Writer, api *noteapi.NoteAPI, _ []string) error {
				writeCounts(w, api)
				return nil
			}),
	)
	return cmd
}

// readOnly builds a leaf command that loads the notes and prints a report
// without saving.
func (a *app) readOnly(use, short string, args cobra.PositionalArgs,
	run func(w io.Writer, api *noteapi.NoteAPI, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(false, func(api *noteapi.NoteAPI) error {
				return run(cmd.OutOrStdout(), api, args)
			})
		},
	}
}

// writeOverview prints the active notes followed by the archived notes.
func writeOverview(w io.Writer, api *noteapi.NoteAPI) {
	if api.NumberOfNotes() == 0 {
		writeReport(w, api.ListAllNotes())
		return
	}
	fmt.Fprintln(w, "Active notes:")
	writeReport(w, api.ListActiveNotes())
	fmt.Fprintln(w, "Archived notes:")
	writeReport(w, api.ListArchivedNotes())
}

// writeCounts prints the totals, then the notes per category and priority.
func writeCounts(w io.Writer, api *noteapi.NoteAPI) {
	fmt.Fprintf(w, "Notes: %d (active %d, archived %d)\n",
		api.NumberOfNotes(), api.NumberOfActiveNotes(), api.NumberOfArchivedNotes())
	fmt.Fprintf(w, "Items: %d (completed %d, todo %d)\n",
		api.NumberOfItems(), api.NumberOfCompleteItems(), api.NumberOfTodoItems())
	for _, c := range types.Categories() {
		fmt.Fprintf(w, "Category %s: %d\n", c, api.NumberOfNotesByCategory(c.String()))
	}
	for p := types.MinPriority; p <= types.MaxPriority; p++ {
		fmt.Fprintf(w, "Priority %d: %d\n", p, api.NumberOfNotesByPriority(p))
	}
}
