package types

import (
	"strings"
	"unicode/utf8"
)

// Item field limits and defaults.
const (
	MaxDescriptionLength = 50
	DefaultDescription   = "No Description"
)

// Item is a single to-do entry owned by exactly one Note.
// Fields are unexported so every write goes through the validating setters.
type Item struct {
	description string
	completed   bool
}

// NewItem creates an item with the given description and completion flag.
// An over-length description on a new item is truncated; a blank one leaves
// the default in place.
func NewItem(description string, completed bool) *Item {
	it := &Item{description: DefaultDescription}
	it.SetDescription(description)
	it.SetCompleted(completed)
	return it
}

// Description returns the item description.
func (it *Item) Description() string {
	return it.description
}

// Completed reports whether the item is done.
func (it *Item) Completed() bool {
	return it.completed
}

// SetDescription applies text if it is valid and reports whether the stored
// description changed.
//
// Text is first reduced to storable characters (see storable). Blank text is
// ignored. Text within MaxDescriptionLength is stored verbatim.
// Longer text is truncated only while the description still holds the
// default; once a real description is set, over-length text is ignored.
func (it *Item) SetDescription(text string) bool {
	text = storable(text)
	if strings.TrimSpace(text) == "" {
		return false
	}
	next := it.description
	switch {
	case utf8.RuneCountInString(text) <= MaxDescriptionLength:
		next = text
	case it.description == DefaultDescription:
		next = truncate(text, MaxDescriptionLength)
	}
	changed := next != it.description
	it.description = next
	return changed
}

// SetCompleted sets the completion flag unconditionally.
func (it *Item) SetCompleted(completed bool) {
	it.completed = completed
}

// Equal reports whether both items have the same description and
// completion flag. Two nil items are equal.
func (it *Item) Equal(other *Item) bool {
	if it == nil || other == nil {
		return it == other
	}
	return it.description == other.description && it.completed == other.completed
}

// String renders the item as "<description>. [Completed]" or
// "<description>. [TODO]".
func (it *Item) String() string {
	if it.completed {
		return it.description + ". [Completed]"
	}
	return it.description + ". [TODO]"
}

// storable drops invalid UTF-8 and any rune outside the XML character range,
// so every stored string survives a save and load unchanged.
func storable(s string) string {
	return strings.Map(func(r rune) rune {
		if xmlChar(r) {
			return r
		}
		return -1
	}, strings.ToValidUTF8(s, ""))
}

func xmlChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= utf8.MaxRune
	}
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
