package types

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Note field limits and defaults.
const (
	MaxTitleLength  = 20
	DefaultTitle    = "No Title"
	MinPriority     = 1
	MaxPriority     = 5
	DefaultPriority = MinPriority
)

// noItemsText is rendered in place of the item listing for an empty note.
const noItemsText = "No items added"

// Note is a titled container of items. A note exclusively owns its items;
// deleting the note deletes them.
//
// Archived notes must not have their items changed. Note does not enforce
// this itself; the console layer checks Archived before any item write.
type Note struct {
	title    string
	priority int
	category Category
	archived bool
	items    []*Item
}

// NewNote creates a note, applying the title, priority, and category setters
// in that order so that invalid input leaves the defaults in place.
func NewNote(title string, priority int, category string) *Note {
	n := &Note{
		title:    DefaultTitle,
		priority: DefaultPriority,
		category: CategoryNone,
	}
	n.SetTitle(title)
	n.SetPriority(priority)
	n.SetCategory(category)
	return n
}

// Title returns the note title.
func (n *Note) Title() string { return n.title }

// Priority returns the note priority, always in [MinPriority, MaxPriority].
func (n *Note) Priority() int { return n.priority }

// Category returns the note category, or CategoryNone.
func (n *Note) Category() Category { return n.category }

// Archived reports whether the note is archived.
func (n *Note) Archived() bool { return n.archived }

// SetTitle applies text and reports whether the stored title changed.
//
// Text is first reduced to storable characters. Blank text resets the title
// to DefaultTitle. Text within MaxTitleLength is stored verbatim. Longer text is truncated only while the title still holds
// the default; a customised title is left unchanged.
func (n *Note) SetTitle(text string) bool {
	text = storable(text)
	next := n.title
	switch {
	case strings.TrimSpace(text) == "":
		next = DefaultTitle
	case utf8.RuneCountInString(text) <= MaxTitleLength:
		next = text
	case n.title == DefaultTitle:
		next = truncate(text, MaxTitleLength)
	}
	changed := next != n.title
	n.title = next
	return changed
}

// SetPriority stores p when it is in range and reports whether the stored
// priority changed. Out-of-range values are ignored, not clamped.
func (n *Note) SetPriority(p int) bool {
	if !ValidPriority(p) {
		return false
	}
	changed := p != n.priority
	n.priority = p
	return changed
}

// SetCategory normalises text against the category registry and reports
// whether the stored category changed. An unknown label keeps the current
// category when one is set, and otherwise leaves the note uncategorised.
func (n *Note) SetCategory(text string) bool {
	next := n.category
	if c, ok := ParseCategory(text); ok {
		next = c
	}
	changed := next != n.category
	n.category = next
	return changed
}

// SetArchived sets the archived flag.
func (n *Note) SetArchived(archived bool) {
	n.archived = archived
}

// Items returns the note's items in order. The slice is a copy but the
// items are shared, so changes made through them are visible on the note.
func (n *Note) Items() []*Item {
	out := make([]*Item, len(n.items))
	copy(out, n.items)
	return out
}

// NumberOfItems returns the number of items on the note.
func (n *Note) NumberOfItems() int {
	return len(n.items)
}

// CheckCompletionStatus reports whether every item is completed.
// A note without items is complete.
func (n *Note) CheckCompletionStatus() bool {
	for _, it := range n.items {
		if !it.Completed() {
			return false
		}
	}
	return true
}

// AddItem appends it to the note. It returns false only for a nil item.
func (n *Note) AddItem(it *Item) bool {
	if it == nil {
		return false
	}
	n.items = append(n.items, it)
	return true
}

// IsValidIndex reports whether i addresses an item on the note.
func (n *Note) IsValidIndex(i int) bool {
	return i >= 0 && i < len(n.items)
}

// FindItem returns the item at i, or nil when i is out of range.
func (n *Note) FindItem(i int) *Item {
	if !n.IsValidIndex(i) {
		return nil
	}
	return n.items[i]
}

// DeleteItem removes and returns the item at i, or returns nil when i is
// out of range.
func (n *Note) DeleteItem(i int) *Item {
	if !n.IsValidIndex(i) {
		return nil
	}
	it := n.items[i]
	n.items = append(n.items[:i], n.items[i+1:]...)
	return it
}

// UpdateItem sets the description and completion flag of the item at i.
// It returns true whenever i is valid, even if the description was rejected
// by Item.SetDescription.
func (n *Note) UpdateItem(i int, description string, completed bool) bool {
	it := n.FindItem(i)
	if it == nil {
		return false
	}
	it.SetDescription(description)
	it.SetCompleted(completed)
	return true
}

// ListItems renders the items one per line as "<index>: <item>", or
// "No items added" for an empty note.
func (n *Note) ListItems() string {
	if len(n.items) == 0 {
		return noItemsText
	}
	var b strings.Builder
	for i, it := range n.items {
		fmt.Fprintf(&b, "%d: %s\n", i, it)
	}
	return b.String()
}

// String renders the note header followed by its item listing. The result
// always ends in a newline so notes can be concatenated into reports.
func (n *Note) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, Priority=%d, Category=%s, Archived=%s\n",
		n.title, n.priority, n.category, yesNo(n.archived))
	b.WriteString(n.ListItems())
	if len(n.items) == 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

// Equal reports structural equality: title, priority, category, archived,
// and the item sequence in order.
func (n *Note) Equal(other *Note) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.title != other.title ||
		n.priority != other.priority ||
		n.category != other.category ||
		n.archived != other.archived ||
		len(n.items) != len(other.items) {
		return false
	}
	for i := range n.items {
		if !n.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the note. The copy owns new items.
func (n *Note) Clone() *Note {
	c := &Note{
		title:    n.title,
		priority: n.priority,
		category: n.category,
		archived: n.archived,
		items:    make([]*Item, len(n.items)),
	}
	for i, it := range n.items {
		c.items[i] = &Item{description: it.description, completed: it.completed}
	}
	return c
}

// ValidPriority reports whether p is in [MinPriority, MaxPriority].
func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
