package noteapi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// Sentinel report texts.
const (
	noNotes          = "No notes stored"
	noActiveNotes    = "No active notes stored"
	noArchivedNotes  = "No archived notes stored"
	noneEligible     = "No active notes eligible for archive"
	noTodoItems      = "No todo items"
	noCategoryPrefix = "No notes with category "
	noPriorityPrefix = "No notes with priority "
	noTitlePrefix    = "No notes found for: "
	noItemPrefix     = "No items found for: "
)

// report accumulates note listings as "<index>: <note>" entries.
type report struct {
	b     strings.Builder
	count int
}

func newReport() *report {
	return &report{}
}

func (r *report) note(index int, n *types.Note) {
	r.count++
	fmt.Fprintf(&r.b, "%d: %s", index, n)
}

func (r *report) line(format string, args ...any) {
	r.count++
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *report) empty() bool {
	return r.count == 0
}

func (r *report) String() string {
	return r.b.String()
}

// ListAllNotes lists every note with its index.
func (a *NoteAPI) ListAllNotes() string {
	if len(a.notes) == 0 {
		return noNotes
	}
	return a.listNotes(func(*types.Note) bool { return true }).String()
}

// ListActiveNotes lists the notes that are not archived, with their indexes.
func (a *NoteAPI) ListActiveNotes() string {
	if len(a.notes) == 0 {
		return noNotes
	}
	r := a.listNotes(func(n *types.Note) bool { return !n.Archived() })
	if r.empty() {
		return noActiveNotes
	}
	return r.String()
}

// ListArchivedNotes lists the archived notes with their indexes.
func (a *NoteAPI) ListArchivedNotes() string {
	if len(a.notes) == 0 {
		return noNotes
	}
	r := a.listNotes(func(n *types.Note) bool { return n.Archived() })
	if r.empty() {
		return noArchivedNotes
	}
	return r.String()
}

// ListNotesBySelectedCategory lists the notes in category, prefixed by how
// many there are.
func (a *NoteAPI) ListNotesBySelectedCategory(category string) string {
	if len(a.notes) == 0 {
		return noNotes
	}
	c, ok := types.ParseCategory(category)
	if !ok {
		return noCategoryPrefix + category
	}
	r := a.listNotes(func(n *types.Note) bool { return n.Category() == c })
	if r.empty() {
		return noCategoryPrefix + category
	}
	return fmt.Sprintf("%d notes with category %s:\n", r.count, strings.ToUpper(c.String())) + r.String()
}

// ListNotesBySelectedPriority lists the notes with priority p, prefixed by how
// many there are.
func (a *NoteAPI) ListNotesBySelectedPriority(p int) string {
	if len(a.notes) == 0 {
		return noNotes
	}
	if !types.ValidPriority(p) {
		return noPriorityPrefix + strconv.Itoa(p)
	}
	r := a.listNotes(func(n *types.Note) bool { return n.Priority() == p })
	if r.empty() {
		return noPriorityPrefix + strconv.Itoa(p)
	}
	return fmt.Sprintf("%d notes with priority %d:\n", r.count, p) + r.String()
}

// ListTodoItems lists every unfinished item as "<note title>: <item>".
func (a *NoteAPI) ListTodoItems() string {
	if len(a.notes) == 0 {
		return noNotes
	}
	r := newReport()
	for _, n := range a.notes {
		for _, it := range n.Items() {
			if !it.Completed() {
				r.line("%s: %s", n.Title(), it)
			}
		}
	}
	if r.empty() {
		return noTodoItems
	}
	return r.String()
}

// ListItemStatusByCategory splits the items of every note in category into
// completed and todo groups, each headed by its count.
func (a *NoteAPI) ListItemStatusByCategory(category string) string {
	if len(a.notes) == 0 {
		return noNotes
	}
	c, ok := types.ParseCategory(category)
	if !ok || a.NumberOfNotesByCategory(category) == 0 {
		return noCategoryPrefix + category
	}

	done, todo := newReport(), newReport()
	for _, n := range a.notes {
		if n.Category() != c {
			continue
		}
		for _, it := range n.Items() {
			target := todo
			if it.Completed() {
				target = done
			}
			target.line("%s (Note: %s)", it.Description(), n.Title())
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Number Completed: %d\n", done.count)
	b.WriteString(done.String())
	fmt.Fprintf(&b, "Number TODO: %d\n", todo.count)
	b.WriteString(todo.String())
	return b.String()
}

func (a *NoteAPI) listNotes(match func(*types.Note) bool) *report {
	r := newReport()
	for i, n := range a.notes {
		if match(n) {
			r.note(i, n)
		}
	}
	return r
}
