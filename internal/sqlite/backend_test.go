// Tests for the SQLite notes backend.
package sqlite

import (
	"database/sql"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

func attachedBackend(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend(nil)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func sampleNotes() []*types.Note {
	book := types.NewNote("Book Holiday", 5, "Holiday")
	book.AddItem(types.NewItem("Book flights", true))
	book.AddItem(types.NewItem("Book hotel", true))
	book.SetArchived(true)

	exams := types.NewNote("Exam Boards", 5, "Work")
	exams.AddItem(types.NewItem("BSc Ord IT, Year 3", false))
	exams.AddItem(types.NewItem("BSc Hons in Applied Computing, Year 1", false))
	exams.AddItem(types.NewItem("BSc Hons in SSD, Year 2", false))

	empty := types.NewNote("Polish Furniture", 2, "")

	return []*types.Note{book, exams, empty}
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	b := NewBackend(nil)
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	require.NoError(t, b.Attach(config))
	assert.FileExists(t, filepath.Join(tmpDir, FileName))

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
	require.NoError(t, b.Detach())
}

func TestBackend_Detach(t *testing.T) {
	b := attachedBackend(t, t.TempDir())

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "second Detach should not error")

	_, err := b.Load()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Save(nil), types.ErrStoreDetached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend(nil)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: ""}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestBackend_LoadBeforeSave(t *testing.T) {
	b := attachedBackend(t, t.TempDir())
	_, err := b.Load()
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBackend_RoundTrip(t *testing.T) {
	b := attachedBackend(t, t.TempDir())
	want := sampleNotes()

	require.NoError(t, b.Save(want))
	got, err := b.Load()
	require.NoError(t, err)

	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, want[i].Equal(got[i]), "note %d: want %q, got %q", i, want[i], got[i])
	}
}

func TestBackend_RoundTripProperty(t *testing.T) {
	b := attachedBackend(t, t.TempDir())
	text := rapid.OneOf(
		rapid.StringMatching(`[A-Za-z0-9 .,:'"%_\t\n]{0,60}`),
		rapid.StringN(0, 60, -1),
		rapid.Map(rapid.SliceOfN(rapid.Byte(), 0, 60), func(raw []byte) string { return string(raw) }),
	)

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

		if err := b.Save(want); err != nil {
			rt.Fatalf("save: %v", err)
		}
		got, err := b.Load()
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

func TestBackend_SaveEmptyThenLoad(t *testing.T) {
	b := attachedBackend(t, t.TempDir())
	require.NoError(t, b.Save(nil))

	got, err := b.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBackend_SaveReplacesRows(t *testing.T) {
	dir := t.TempDir()
	b := attachedBackend(t, dir)
	require.NoError(t, b.Save(sampleNotes()))

	only := types.NewNote("Hoover House", 1, "Home")
	only.AddItem(types.NewItem("Hoover Upstairs", false))
	require.NoError(t, b.Save([]*types.Note{only}))

	got, err := b.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, only.Equal(got[0]))

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	require.NoError(t, err)
	defer db.Close()

	var notes, items int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&notes))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM items").Scan(&items))
	assert.Equal(t, 1, notes)
	assert.Equal(t, 1, items)
}

func TestBackend_PersistsAcrossAttach(t *testing.T) {
	dir := t.TempDir()
	want := sampleNotes()

	first := NewBackend(nil)
	require.NoError(t, first.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	require.NoError(t, first.Save(want))
	require.NoError(t, first.Detach())

	second := attachedBackend(t, dir)
	got, err := second.Load()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]))
	}
}

func TestBackend_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	attachedBackend(t, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGenerateUUID(t *testing.T) {
	a, b := generateUUID(), generateUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
