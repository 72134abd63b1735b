package xmlstore

import (
	"encoding/xml"

	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// document is the on-disk form of the note collection.
type document struct {
	XMLName xml.Name      `xml:"notes"`
	Notes   []noteElement `xml:"note"`
}

type noteElement struct {
	Title    string        `xml:"title,attr"`
	Priority int           `xml:"priority,attr"`
	Category string        `xml:"category,attr"`
	Archived bool          `xml:"archived,attr"`
	Items    []itemElement `xml:"item"`
}

type itemElement struct {
	Completed   bool   `xml:"completed,attr"`
	Description string `xml:",chardata"`
}

// encodeNotes converts notes into their document form.
func encodeNotes(notes []*types.Note) document {
	doc := document{Notes: make([]noteElement, 0, len(notes))}
	for _, n := range notes {
		el := noteElement{
			Title:    n.Title(),
			Priority: n.Priority(),
			Category: n.Category().String(),
			Archived: n.Archived(),
		}
		for _, it := range n.Items() {
			el.Items = append(el.Items, itemElement{
				Completed:   it.Completed(),
				Description: it.Description(),
			})
		}
		doc.Notes = append(doc.Notes, el)
	}
	return doc
}

// decodeNotes rebuilds notes through the validating constructors, so a
// hand-edited document cannot produce a note that breaks field invariants.
func decodeNotes(doc document) []*types.Note {
	notes := make([]*types.Note, 0, len(doc.Notes))
	for _, el := range doc.Notes {
		n := types.NewNote(el.Title, el.Priority, el.Category)
		n.SetArchived(el.Archived)
		for _, it := range el.Items {
			n.AddItem(types.NewItem(it.Description, it.Completed))
		}
		notes = append(notes, n)
	}
	return notes
}
