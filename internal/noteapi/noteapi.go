// Package noteapi manages the ordered collection of notes. Every operation is
// addressed by position in the collection; an invalid index or filter never
// produces an error, only a sentinel result (false, nil, or a "no results"
// report) with the collection left untouched.
package noteapi

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// NoteAPI owns the note collection. It is not safe for concurrent use.
type NoteAPI struct {
	notes []*types.Note
	store types.Store
}

// New returns an empty NoteAPI that persists through store. store may be nil
// when persistence is not needed; Load and Save then return
// types.ErrStoreNotConfigured.
func New(store types.Store) *NoteAPI {
	return &NoteAPI{store: store}
}

// NoteChanges records which fields an update actually changed.
type NoteChanges struct {
	Title    bool
	Priority bool
	Category bool
}

// Any reports whether at least one field changed.
func (c NoteChanges) Any() bool {
	return c.Title || c.Priority || c.Category
}

// IsValidIndex reports whether index addresses a stored note. It is the only
// bounds check; every index-based operation goes through it.
func (a *NoteAPI) IsValidIndex(index int) bool {
	return index >= 0 && index < len(a.notes)
}

// Add appends note to the collection. It returns false only for a nil note.
func (a *NoteAPI) Add(note *types.Note) bool {
	if note == nil {
		return false
	}
	a.notes = append(a.notes, note)
	return true
}

// UpdateNote applies the title, priority, and category setters to the note
// at index. It returns true whenever the note exists, even if a setter
// rejected its value.
func (a *NoteAPI) UpdateNote(index int, title string, priority int, category string) bool {
	_, ok := a.UpdateNoteChanges(index, title, priority, category)
	return ok
}

// UpdateNoteChanges is UpdateNote that also reports which fields changed.
func (a *NoteAPI) UpdateNoteChanges(index int, title string, priority int, category string) (NoteChanges, bool) {
	note := a.FindNote(index)
	if note == nil {
		return NoteChanges{}, false
	}
	return NoteChanges{
		Title:    note.SetTitle(title),
		Priority: note.SetPriority(priority),
		Category: note.SetCategory(category),
	}, true
}

// DeleteNote removes the note at index, or returns nil for an invalid index.
// The stored note's items are deleted one by one before the note leaves the
// collection. The returned value is a copy of the note as it was before
// deletion, items included, so callers can still report what was removed.
func (a *NoteAPI) DeleteNote(index int) *types.Note {
	note := a.FindNote(index)
	if note == nil {
		return nil
	}
	removed := note.Clone()
	for note.NumberOfItems() > 0 {
		note.DeleteItem(note.NumberOfItems() - 1)
	}
	a.notes = append(a.notes[:index], a.notes[index+1:]...)
	return removed
}

// ArchiveNote archives the note at index when it is active and all of its
// items are complete. It returns false, changing nothing, otherwise.
func (a *NoteAPI) ArchiveNote(index int) bool {
	note := a.FindNote(index)
	if note == nil || !archivable(note) {
		return false
	}
	note.SetArchived(true)
	return true
}

// ArchiveNotesWithAllItemsComplete archives every active note whose items
// are all complete and returns a report of the notes it archived.
func (a *NoteAPI) ArchiveNotesWithAllItemsComplete() string {
	if a.NumberOfActiveNotes() == 0 {
		return noActiveNotes
	}
	var b strings.Builder
	for _, note := range a.notes {
		if !archivable(note) {
			continue
		}
		note.SetArchived(true)
		b.WriteString(note.String())
	}
	if b.Len() == 0 {
		return noneEligible
	}
	return "Archived Notes:\n" + b.String()
}

// CheckNoteCompletionStatus reports whether the note at index exists and all
// of its items are complete.
func (a *NoteAPI) CheckNoteCompletionStatus(index int) bool {
	note := a.FindNote(index)
	return note != nil && note.CheckCompletionStatus()
}

// FindNote returns the note at index, or nil for an invalid index.
func (a *NoteAPI) FindNote(index int) *types.Note {
	if !a.IsValidIndex(index) {
		return nil
	}
	return a.notes[index]
}

// Notes returns the stored notes in order. The slice is a copy; the notes
// are shared.
func (a *NoteAPI) Notes() []*types.Note {
	out := make([]*types.Note, len(a.notes))
	copy(out, a.notes)
	return out
}

// Load replaces the collection with the notes read from the store. On error
// the collection is left unchanged.
func (a *NoteAPI) Load() error {
	if a.store == nil {
		return types.ErrStoreNotConfigured
	}
	notes, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	a.notes = notes
	return nil
}

// Save writes the whole collection to the store.
func (a *NoteAPI) Save() error {
	if a.store == nil {
		return types.ErrStoreNotConfigured
	}
	if err := a.store.Save(a.notes); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

func archivable(note *types.Note) bool {
	return !note.Archived() && note.CheckCompletionStatus()
}
