// Shared helpers for notekeeper commands.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// parseIndex converts a positional argument into an index.
func parseIndex(what, arg string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, userError("invalid %s index %q", what, arg)
	}
	return i, nil
}

// lookupNote parses arg and returns the note it addresses.
func lookupNote(api *noteapi.NoteAPI, arg string) (int, *types.Note, error) {
	i, err := parseIndex("note", arg)
	if err != nil {
		return 0, nil, err
	}
	note := api.FindNote(i)
	if note == nil {
		return i, nil, userError("invalid note index [%d]", i)
	}
	return i, note, nil
}

// lookupActiveNote is lookupNote for commands that change items; archived
// notes are read-only.
func lookupActiveNote(api *noteapi.NoteAPI, arg string) (int, *types.Note, error) {
	i, note, err := lookupNote(api, arg)
	if err != nil {
		return i, nil, err
	}
	if note.Archived() {
		return i, nil, userError("note %d is archived", i)
	}
	return i, note, nil
}

// lookupItem parses arg and returns the item of note it addresses.
func lookupItem(note *types.Note, arg string) (int, *types.Item, error) {
	i, err := parseIndex("item", arg)
	if err != nil {
		return 0, nil, err
	}
	it := note.FindItem(i)
	if it == nil {
		return i, nil, userError("invalid item index [%d]", i)
	}
	return i, it, nil
}

// checkCategory rejects labels outside the category registry. An empty
// label is allowed and leaves the note uncategorised.
func checkCategory(label string) error {
	if label == "" || types.IsValidCategory(label) {
		return nil
	}
	return userError("invalid category %q (valid: %s)", label, types.CategoryLabels())
}

// requireCategory is checkCategory for report filters, where a label is
// mandatory.
func requireCategory(label string) error {
	if types.IsValidCategory(label) {
		return nil
	}
	return userError("invalid category %q (valid: %s)", label, types.CategoryLabels())
}

// parsePriority converts arg into a priority in range.
func parsePriority(arg string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || !types.ValidPriority(p) {
		return 0, userError("invalid priority %q (valid: %d-%d)", arg, types.MinPriority, types.MaxPriority)
	}
	return p, nil
}

// checkPriority is parsePriority for an already-parsed flag value.
func checkPriority(p int) error {
	if !types.ValidPriority(p) {
		return userError("invalid priority %d (valid: %d-%d)", p, types.MinPriority, types.MaxPriority)
	}
	return nil
}

// writeReport prints a report, terminating it with a newline if needed.
func writeReport(w io.Writer, report string) {
	if strings.HasSuffix(report, "\n") {
		fmt.Fprint(w, report)
		return
	}
	fmt.Fprintln(w, report)
}
