package noteapi

import "github.com/mesh-intelligence/notekeeper/pkg/types"

// NumberOfNotes returns the number of stored notes.
func (a *NoteAPI) NumberOfNotes() int {
	return len(a.notes)
}

// NumberOfArchivedNotes returns the number of archived notes.
func (a *NoteAPI) NumberOfArchivedNotes() int {
	return a.countNotes(func(n *types.Note) bool { return n.Archived() })
}

// NumberOfActiveNotes returns the number of notes that are not archived.
func (a *NoteAPI) NumberOfActiveNotes() int {
	return a.countNotes(func(n *types.Note) bool { return !n.Archived() })
}

// NumberOfNotesByCategory returns the number of notes in category. The label
// is matched case-insensitively; an unknown label counts zero notes.
func (a *NoteAPI) NumberOfNotesByCategory(category string) int {
	c, ok := types.ParseCategory(category)
	if !ok {
		return 0
	}
	return a.countNotes(func(n *types.Note) bool { return n.Category() == c })
}

// NumberOfNotesByPriority returns the number of notes with priority p. An
// out-of-range priority counts zero notes.
func (a *NoteAPI) NumberOfNotesByPriority(p int) int {
	if !types.ValidPriority(p) {
		return 0
	}
	return a.countNotes(func(n *types.Note) bool { return n.Priority() == p })
}

// NumberOfItems returns the number of items across all notes.
func (a *NoteAPI) NumberOfItems() int {
	total := 0
	for _, n := range a.notes {
		total += n.NumberOfItems()
	}
	return total
}

// NumberOfCompleteItems returns the number of completed items across all notes.
func (a *NoteAPI) NumberOfCompleteItems() int {
	return a.countItems(func(it *types.Item) bool { return it.Completed() })
}

// NumberOfTodoItems returns the number of items not yet completed.
func (a *NoteAPI) NumberOfTodoItems() int {
	return a.countItems(func(it *types.Item) bool { return !it.Completed() })
}

func (a *NoteAPI) countNotes(match func(*types.Note) bool) int {
	count := 0
	for _, n := range a.notes {
		if match(n) {
			count++
		}
	}
	return count
}

func (a *NoteAPI) countItems(match func(*types.Item) bool) int {
	count := 0
	for _, n := range a.notes {
		for _, it := range n.Items() {
			if match(it) {
				count++
			}
		}
	}
	return count
}
