package xmlstore

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

func attached(t *testing.T, dir string) *Store {
	t.Helper()
	s := New(nil)
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendXML, DataDir: dir}))
	t.Cleanup(func() { s.Detach() })
	return s
}

func sampleNotes() []*types.Note {
	run := types.NewNote("School Run", 5, "Home")
	run.AddItem(types.NewItem("Secondary School 3:30", true))
	run.AddItem(types.NewItem("Primary School 2:30", false))

	surf := types.NewNote("Surf", 4, "Hobby")
	surf.SetArchived(true)

	blank := types.NewNote("", 1, "")
	blank.AddItem(types.NewItem("  padded & <escaped>  ", false))

	return []*types.Note{run, surf, blank}
}

func assertNotesEqual(t *testing.T, want, got []*types.Note) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, want[i].Equal(got[i]), "note %d: want %q, got %q", i, want[i], got[i])
	}
}

func TestStore_AttachLifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(nil)

	require.NoError(t, s.Attach(types.Config{Backend: types.BackendXML, DataDir: dir}))
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, FileName), s.Path())

	assert.ErrorIs(t, s.Attach(types.Config{Backend: types.BackendXML, DataDir: dir}), types.ErrAlreadyAttached)

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach(), "detach is idempotent")

	_, err := s.Load()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, s.Save(nil), types.ErrStoreDetached)
}

func TestStore_AttachRejectsInvalidConfig(t *testing.T) {
	s := New(nil)
	assert.ErrorIs(t, s.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, s.Attach(types.Config{Backend: "json"}), types.ErrBackendUnknown)
}

func TestStore_RoundTrip(t *testing.T) {
	s := attached(t, t.TempDir())
	want := sampleNotes()

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)
	assertNotesEqual(t, want, got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := attached(t, t.TempDir())
	require.NoError(t, s.Save(sampleNotes()))

	only := []*types.Note{types.NewNote("Only", 2, "Work")}
	require.NoError(t, s.Save(only))

	got, err := s.Load()
	require.NoError(t, err)
	assertNotesEqual(t, only, got)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestStore_EmptyCollection(t *testing.T) {
	s := attached(t, t.TempDir())
	require.NoError(t, s.Save(nil))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_LoadMissingDocument(t *testing.T) {
	s := attached(t, t.TempDir())
	_, err := s.Load()
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestStore_LoadMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	s := attached(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("<notes><note"), 0o644))

	_, err := s.Load()
	assert.ErrorIs(t, err, types.ErrMalformedDocument)
}

func TestStore_LoadRevalidatesFields(t *testing.T) {
	dir := t.TempDir()
	s := attached(t, dir)
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<notes>
  <note title="A title that is far too long" priority="9" category="garden" archived="true">
    <item completed="true">ok</item>
  </note>
</notes>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(doc), 0o644))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A title that is far ", got[0].Title())
	assert.Equal(t, types.DefaultPriority, got[0].Priority())
	assert.Equal(t, types.CategoryNone, got[0].Category())
	assert.True(t, got[0].Archived())
	assert.Equal(t, 1, got[0].NumberOfItems())
}

// anyText mixes markup characters with arbitrary runes and raw bytes that
// may not be valid UTF-8.
func anyText() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`[A-Za-z0-9 .,:&<>'"\t\r\n]{0,60}`),
		rapid.StringN(0, 60, -1),
		rapid.Map(rapid.SliceOfN(rapid.Byte(), 0, 60), func(raw []byte) string { return string(raw) }),
	)
}

func TestStore_RoundTripControlAndInvalidText(t *testing.T) {
	s := attached(t, t.TempDir())
	n := types.NewNote("bell\x07title", 3, "Holiday")
	n.AddItem(types.NewItem("bad\xffutf8", false))
	n.AddItem(types.NewItem(" line\r\nbreak\t", true))

	require.NoError(t, s.Save([]*types.Note{n}))
	got, err := s.Load()
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "belltitle", got[0].Title())
	assert.Equal(t, "badutf8", got[0].FindItem(0).Description())
	assert.Equal(t, " line\r\nbreak\t", got[0].FindItem(1).Description())
	assert.True(t, n.Equal(got[0]))
}

func TestStore_RoundTripProperty(t *testing.T) {
	dir := t.TempDir()
	s := attached(t, dir)
	text := anyText()

	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(0, 5).Draw(rt, "notes")
		want := make([]*types.Note, 0, count)
		for i := 0; i < count; i++ {
			n := types.NewNote(text.Draw(rt, "title"), rapid.IntRange(0, 6).Draw(rt, "priority"),
				rapid.SampledFrom([]string{"", "home", "Work", "HOBBY", "Holiday", "college", "x"}).Draw(rt, "category"))
			n.SetArchived(rapid.Bool().Draw(rt, "archived"))
			items := rapid.IntRange(0, 4).Draw(rt, "items")
			for j := 0; j < items; j++ {
				n.AddItem(types.NewItem(text.Draw(rt, "description"), rapid.Bool().Draw(rt, "completed")))
			}
			want = append(want, n)
		}

		if err := s.Save(want); err != nil {
			rt.Fatalf("save: %v", err)
		}
		got, err := s.Load()
		if err != nil {
			rt.Fatalf("load: %v", err)
		}
		if len(got) != len(want) {
			rt.Fatalf("got %d notes, want %d", len(got), len(want))
		}
		for i := range want {
			if !want[i].Equal(got[i]) {
				rt.Fatalf("note %d: want %q, got %q", i, want[i], got[i])
			}
		}
	})
}
