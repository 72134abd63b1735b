package noteapi

import "strings"

// SearchNotesByTitle lists every note whose title contains query
// (case-sensitive), with its index.
func (a *NoteAPI) SearchNotesByTitle(query string) string {
	if len(a.notes) == 0 {
		return noNotes
	}
	r := newReport()
	for i, n := range a.notes {
		if strings.Contains(n.Title(), query) {
			r.note(i, n)
		}
	}
	if r.empty() {
		return noTitlePrefix + query
	}
	return r.String()
}

// SearchItemByDescription lists every item whose description contains query
// (case-sensitive), under the index and title of the note that owns it.
func (a *NoteAPI) SearchItemByDescription(query string) string {
	if len(a.notes) == 0 {
		return noNotes
	}
	r := newReport()
	for i, n := range a.notes {
		for _, it := range n.Items() {
			if strings.Contains(it.Description(), query) {
				r.line("%d: %s\n  %s", i, n.Title(), it)
			}
		}
	}
	if r.empty() {
		return noItemPrefix + query
	}
	return r.String()
}
