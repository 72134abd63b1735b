package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// Item commands only change active notes.
func newItemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, change and complete the items of a note",
	}
	cmd.AddCommand(
		newItemAddCmd(a),
		newItemUpdateCmd(a),
		newItemDeleteCmd(a),
		newItemMarkCmd(a),
	)
	return cmd
}

func newItemAddCmd(a *app) *cobra.Command {
	var (
		description string
		completed   bool
	)
	cmd := &cobra.Command{
		Use:   "add <note>",
		Short: "Add an item to a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				i, note, err := lookupActiveNote(api, args[0])
				if err != nil {
					return err
				}
				it := types.NewItem(description, completed)
				note.AddItem(it)
				fmt.Fprintf(cmd.OutOrStdout(), "Item added to note %d: %d: %s\n", i, note.NumberOfItems()-1, it)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "item description (max 50 characters)")
	cmd.Flags().BoolVar(&completed, "completed", false, "add the item already completed")
	return cmd
}

func newItemUpdateCmd(a *app) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "update <note> <item>",
		Short: "Change the description of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				_, note, err := lookupActiveNote(api, args[0])
				if err != nil {
					return err
				}
				j, it, err := lookupItem(note, args[1])
				if err != nil {
					return err
				}
				before := it.Description()
				note.UpdateItem(j, description, it.Completed())
				if it.Description() == before {
					fmt.Fprintf(cmd.OutOrStdout(), "Item %d unchanged: %s\n", j, it)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Item %d updated: %s\n", j, it)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "new description")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newItemDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note> <item>",
		Short: "Delete an item from a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				_, note, err := lookupActiveNote(api, args[0])
				if err != nil {
					return err
				}
				j, err := parseIndex("item", args[1])
				if err != nil {
					return err
				}
				removed := note.DeleteItem(j)
				if removed == nil {
					return userError("invalid item index [%d]", j)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Item deleted: %s\n", removed)
				return nil
			})
		},
	}
}

func newItemMarkCmd(a *app) *cobra.Command {
	var todo bool
	cmd := &cobra.Command{
		Use:   "mark <note> <item>",
		Short: "Mark an item as completed, or as todo with --todo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withNotes(true, func(api *noteapi.NoteAPI) error {
				_, note, err := lookupActiveNote(api, args[0])
				if err != nil {
					return err
				}
				j, it, err := lookupItem(note, args[1])
				if err != nil {
					return err
				}
				it.SetCompleted(!todo)
				fmt.Fprintf(cmd.OutOrStdout(), "Item %d marked: %s\n", j, it)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&todo, "todo", false, "mark the item as todo instead of completed")
	return cmd
}
