package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
)

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Case-sensitive search over note titles and item descriptions",
	}
	cmd.AddCommand(
		a.readOnly("notes <text>", "Notes whose title contains text", cobra.ExactArgs(1),
			func(w io.Writer, api *noteapi.NoteAPI, args []string) error {
				writeReport(w, api.SearchNotesByTitle(args[0]))
				return nil
			}),
		a.readOnly("items <text>", "Items whose description contains text", cobra.ExactArgs(1),
			func(w io.Writer, api *noteapi.NoteAPI, args []string) error {
				writeReport(w, api.SearchItemByDescription(args[0]))
				return nil
			}),
	)
	return cmd
}
