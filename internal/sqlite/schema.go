package sqlite

// Schema DDL. Positions keep the collection order; ids only link rows.
const (
	createNotes = `CREATE TABLE IF NOT EXISTS notes (
    note_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    priority INTEGER NOT NULL,
    category TEXT NOT NULL,
    archived INTEGER NOT NULL
);`

	createItems = `CREATE TABLE IF NOT EXISTS items (
    item_id TEXT PRIMARY KEY,
    note_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    description TEXT NOT NULL,
    completed INTEGER NOT NULL,
    FOREIGN KEY (note_id) REFERENCES notes(note_id) ON DELETE CASCADE
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxNotesPosition = `CREATE INDEX IF NOT EXISTS idx_notes_position ON notes(position);`
	idxItemsNote     = `CREATE INDEX IF NOT EXISTS idx_items_note ON items(note_id, position);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createNotes,
	createItems,
	createMeta,
	idxNotesPosition,
	idxItemsNote,
}

// metaSavedAt records the last successful Save. Its absence means the
// database has never been saved, which Load reports as fs.ErrNotExist.
const metaSavedAt = "saved_at"
