package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/notekeeper/internal/noteapi"
	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

const menuText = `-------------------------------------------------------
|                    NOTE KEEPER APP                  |
|-----------------------------------------------------|
| NOTE MENU                                           |
|  1) Add a note                                      |
|  2) List all notes (all, active, archived)          |
|  3) Update a note                                   |
|  4) Delete a note                                   |
|  5) Archive a note                                  |
|-----------------------------------------------------|
| ITEM MENU                                           |
|  6) Add an item to a note                           |
|  7) Update item description on a note               |
|  8) Delete an item from a note                      |
|  9) Mark item as complete/todo                      |
|-----------------------------------------------------|
| REPORT MENU FOR NOTES                               |
| 10) All notes and their items (active & archived)   |
| 11) Archive notes whose items are all complete      |
| 12) All notes within a selected Category            |
| 13) All notes within a selected Priority            |
| 14) Search for all notes (by note title)            |
|-----------------------------------------------------|
| REPORT MENU FOR ITEMS                               |
| 15) All items that are todo (with note title)       |
| 16) Overall number of items todo/complete           |
| 17) Todo/complete items by specific Category        |
| 18) Search for all items (by item description)      |
|-----------------------------------------------------|
| SETTINGS MENU                                       |
| 20) Save                                            |
| 21) Load                                            |
|  0) Exit                                            |
-------------------------------------------------------`

// errInputClosed ends the menu when stdin runs out.
var errInputClosed = errors.New("input closed")

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive note keeper menu",
		Long: "Run the interactive menu. Notes are loaded when the menu starts and\n" +
			"are only written when Save (20) is chosen.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return sysError(err)
			}
			return a.runMenu(store, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runMenu drives the menu over an attached store and detaches it on return.
func (a *app) runMenu(store types.Store, in io.Reader, out io.Writer) (err error) {
	defer func() {
		if derr := store.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach store: %w", derr))
		}
	}()

	api := noteapi.New(store)
	if err := a.loadNotes(api); err != nil {
		return sysError(err)
	}
	m := &menu{
		api: api,
		in:  bufio.NewScanner(in),
		out: out,
	}
	return m.run()
}

// menu is the interactive console over one NoteAPI.
type menu struct {
	api *noteapi.NoteAPI
	in  *bufio.Scanner
	out io.Writer
}

func (m *menu) run() error {
	handlers := map[int]func() error{
		1:  m.addNote,
		2:  m.viewNotes,
		3:  m.updateNote,
		4:  m.deleteNote,
		5:  m.archiveNote,
		6:  m.addItem,
		7:  m.updateItem,
		8:  m.deleteItem,
		9:  m.markItem,
		10: m.activeAndArchived,
		11: m.archiveAllComplete,
		12: m.notesByCategory,
		13: m.notesByPriority,
		14: m.searchNotes,
		15: m.todoItems,
		16: m.itemTotals,
		17: m.itemStatusByCategory,
		18: m.searchItems,
		20: m.save,
		21: m.load,
	}

	for {
		m.println(menuText)
		option, err := m.number("Enter an option => ")
		if err != nil && !errors.Is(err, errInputClosed) {
			return sysError(fmt.Errorf("read input: %w", err))
		}
		if err != nil || option == 0 {
			m.println("Exiting... goodbye")
			return nil
		}
		handler, ok := handlers[option]
		if !ok {
			m.printf("Invalid option selected! [%d]\n", option)
			continue
		}
		if err := handler(); err != nil {
			if errors.Is(err, errInputClosed) {
				m.println("Exiting... goodbye")
				return nil
			}
			return err
		}
	}
}

func (m *menu) println(a ...any)               { fmt.Fprintln(m.out, a...) }
func (m *menu) printf(format string, a ...any) { fmt.Fprintf(m.out, format, a...) }
func (m *menu) report(text string)             { writeReport(m.out, text) }

// line prompts and returns the next input line.
func (m *menu) line(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return m.in.Text(), nil
}

// number prompts until the input is an integer.
func (m *menu) number(prompt string) (int, error) {
	for {
		s, err := m.line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil {
			return n, nil
		}
		m.printf("Enter a number please. [%s]\n", s)
	}
}

// yes prompts for Y/N; anything starting with y or Y is yes.
func (m *menu) yes(prompt string) (bool, error) {
	s, err := m.line(prompt)
	if err != nil {
		return false, err
	}
	s = strings.TrimSpace(s)
	return s != "" && (s[0] == 'y' || s[0] == 'Y'), nil
}

// category prompts for a category label and reports whether it is valid.
func (m *menu) category(prompt string) (string, bool, error) {
	s, err := m.line(prompt)
	if err != nil {
		return "", false, err
	}
	label := types.FormatCategory(s)
	if !types.IsValidCategory(label) {
		m.printf("Invalid category! [%s]\n", label)
		return label, false, nil
	}
	return label, true, nil
}

// pickNote lists notes and prompts for an index. When active is set only
// active notes are offered and archived ones are refused.
func (m *menu) pickNote(prompt string, active bool) (int, *types.Note, error) {
	if active {
		if m.api.NumberOfActiveNotes() == 0 {
			m.println("No active notes!")
			return 0, nil, nil
		}
		m.report(m.api.ListActiveNotes())
	} else {
		if m.api.NumberOfNotes() == 0 {
			m.println("No notes saved!")
			return 0, nil, nil
		}
		m.report(m.api.ListAllNotes())
	}

	i, err := m.number(prompt)
	if err != nil {
		return 0, nil, err
	}
	note := m.api.FindNote(i)
	if note == nil {
		m.printf("Invalid note index! [%d]\n", i)
		return i, nil, nil
	}
	if active && note.Archived() {
		m.printf("This note is archived! [%d]\n", i)
		return i, nil, nil
	}
	return i, note, nil
}

// pickItem lists the items of note and prompts for an index.
func (m *menu) pickItem(note *types.Note) (int, *types.Item, error) {
	if note.NumberOfItems() == 0 {
		m.println("This note has no items!")
		return 0, nil, nil
	}
	m.report(note.ListItems())
	j, err := m.number("Enter index of the item => ")
	if err != nil {
		return 0, nil, err
	}
	it := note.FindItem(j)
	if it == nil {
		m.printf("Invalid item index! [%d]\n", j)
	}
	return j, it, nil
}

func (m *menu) addNote() error {
	title, err := m.line("Enter note title => ")
	if err != nil {
		return err
	}
	priority, err := m.number("Enter note priority [1-5] => ")
	if err != nil {
		return err
	}
	category, ok, err := m.category("Enter note category [" + types.CategoryLabels() + "] => ")
	if err != nil || !ok {
		return err
	}
	m.api.Add(types.NewNote(title, priority, category))
	m.println("Note added successfully.")
	return nil
}

func (m *menu) viewNotes() error {
	if m.api.NumberOfNotes() == 0 {
		m.println("No notes saved!")
		return nil
	}
	option, err := m.number("1) All notes\n2) Active notes\n3) Archived notes\nEnter an option => ")
	if err != nil {
		return err
	}
	switch option {
	case 1:
		m.printf("Number of active and archived notes: %d\n", m.api.NumberOfNotes())
		m.report(m.api.ListAllNotes())
	case 2:
		m.printf("Number of active notes: %d\n", m.api.NumberOfActiveNotes())
		m.report(m.api.ListActiveNotes())
	case 3:
		m.printf("Number of archived notes: %d\n", m.api.NumberOfArchivedNotes())
		m.report(m.api.ListArchivedNotes())
	default:
		m.printf("Invalid option selected! [%d]\n", option)
	}
	return nil
}

func (m *menu) updateNote() error {
	i, note, err := m.pickNote("Enter the index of the note to update => ", false)
	if err != nil || note == nil {
		return err
	}
	title, err := m.line("Enter new title => ")
	if err != nil {
		return err
	}
	priority, err := m.number("Enter new priority [1-5] => ")
	if err != nil {
		return err
	}
	category, ok, err := m.category("Enter new category [" + types.CategoryLabels() + "] => ")
	if err != nil || !ok {
		return err
	}
	changes, _ := m.api.UpdateNoteChanges(i, title, priority, category)
	m.printf("Note updated successfully (%s).\n", describeChanges(changes))
	return nil
}

func (m *menu) deleteNote() error {
	i, note, err := m.pickNote("Enter the index of the note to delete => ", false)
	if err != nil || note == nil {
		return err
	}
	m.printf("Note deleted successfully: %s", m.api.DeleteNote(i))
	return nil
}

func (m *menu) archiveNote() error {
	i, note, err := m.pickNote("Enter the index of the note to archive => ", true)
	if err != nil || note == nil {
		return err
	}
	if !m.api.ArchiveNote(i) {
		m.println("Unable to archive note! Incomplete note items.")
		return nil
	}
	m.println("Note archived successfully.")
	return nil
}

func (m *menu) addItem() error {
	_, note, err := m.pickNote("Enter the index of the note to add an item to => ", true)
	if err != nil || note == nil {
		return err
	}
	desc, err := m.line("Enter item description => ")
	if err != nil {
		return err
	}
	note.AddItem(types.NewItem(desc, false))
	m.println("Item added successfully.")
	return nil
}

func (m *menu) updateItem() error {
	_, note, err := m.pickNote("Enter the index of the note => ", true)
	if err != nil || note == nil {
		return err
	}
	j, it, err := m.pickItem(note)
	if err != nil || it == nil {
		return err
	}
	desc, err := m.line("Enter new item description => ")
	if err != nil {
		return err
	}
	completed, err := m.yes("Is the item completed? [Y/N] => ")
	if err != nil {
		return err
	}
	note.UpdateItem(j, desc, completed)
	m.println("Item updated successfully.")
	return nil
}

func (m *menu) deleteItem() error {
	_, note, err := m.pickNote("Enter the index of the note => ", true)
	if err != nil || note == nil {
		return err
	}
	j, it, err := m.pickItem(note)
	if err != nil || it == nil {
		return err
	}
	m.printf("Item deleted successfully: %s\n", note.DeleteItem(j))
	return nil
}

func (m *menu) markItem() error {
	_, note, err := m.pickNote("Enter the index of the note => ", true)
	if err != nil || note == nil {
		return err
	}
	_, it, err := m.pickItem(note)
	if err != nil || it == nil {
		return err
	}
	completed, err := m.yes("Mark item as completed? [Y/N] => ")
	if err != nil {
		return err
	}
	it.SetCompleted(completed)
	if completed {
		m.println("Item successfully marked as completed.")
	} else {
		m.println("Item successfully marked as to-do.")
	}
	return nil
}

func (m *menu) activeAndArchived() error {
	writeOverview(m.out, m.api)
	return nil
}

func (m *menu) archiveAllComplete() error {
	m.report(m.api.ArchiveNotesWithAllItemsComplete())
	return nil
}

func (m *menu) notesByCategory() error {
	category, ok, err := m.category("Enter category [" + types.CategoryLabels() + "] => ")
	if err != nil || !ok {
		return err
	}
	m.report(m.api.ListNotesBySelectedCategory(category))
	return nil
}

func (m *menu) notesByPriority() error {
	p, err := m.number("Enter priority [1-5] => ")
	if err != nil {
		return err
	}
	if !types.ValidPriority(p) {
		m.printf("Invalid priority selected! [%d]\n", p)
		return nil
	}
	m.report(m.api.ListNotesBySelectedPriority(p))
	return nil
}

func (m *menu) searchNotes() error {
	q, err := m.line("Enter text to search note titles for => ")
	if err != nil {
		return err
	}
	m.report(m.api.SearchNotesByTitle(q))
	return nil
}

func (m *menu) todoItems() error {
	m.report(m.api.ListTodoItems())
	return nil
}

func (m *menu) itemTotals() error {
	if m.api.NumberOfNotes() == 0 {
		m.println("No notes saved!")
		return nil
	}
	m.printf("Number of completed items: %d\n", m.api.NumberOfCompleteItems())
	m.printf("Number of to-do items: %d\n", m.api.NumberOfTodoItems())
	return nil
}

func (m *menu) itemStatusByCategory() error {
	category, ok, err := m.category("Enter category [" + types.CategoryLabels() + "] => ")
	if err != nil || !ok {
		return err
	}
	m.report(m.api.ListItemStatusByCategory(category))
	return nil
}

func (m *menu) searchItems() error {
	q, err := m.line("Enter text to search item descriptions for => ")
	if err != nil {
		return err
	}
	m.report(m.api.SearchItemByDescription(q))
	return nil
}

func (m *menu) save() error {
	if err := m.api.Save(); err != nil {
		m.printf("Error saving notes! [%v]\n", err)
		return nil
	}
	m.println("Notes saved successfully.")
	return nil
}

func (m *menu) load() error {
	if err := m.api.Load(); err != nil {
		m.printf("Error loading notes! [%v]\n", err)
		return nil
	}
	m.println("Notes loaded successfully.")
	return nil
}
