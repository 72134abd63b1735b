// Package xmlstore implements the XML file backend for notekeeper. The whole
// note collection lives in a single notes.xml document in the data directory.
package xmlstore

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/notekeeper/pkg/types"
)

// FileName is the document name inside the data directory.
const FileName = "notes.xml"

// Store implements types.Store on top of an XML document.
type Store struct {
	mu       sync.Mutex
	attached bool
	path     string
	log      *slog.Logger
}

var _ types.Store = (*Store)(nil)

// New creates a detached XML store. A nil logger discards log output.
func New(log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{log: log}
}

// Path returns the document path, or "" while detached.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Attach validates config and creates the data directory. The document
// itself is not created until the first Save.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	s.path = filepath.Join(dataDir, FileName)
	s.attached = true
	s.log.Debug("xml store attached", "path", s.path)
	return nil
}

// Detach releases the store. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attached = false
	s.path = ""
	return nil
}

// Load reads and decodes the document. A missing document yields an error
// wrapping fs.ErrNotExist; an undecodable one wraps types.ErrMalformedDocument.
func (s *Store) Load() ([]*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	var doc document
	if err := xml.NewDecoder(bufio.NewReader(f)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", s.path, types.ErrMalformedDocument, err)
	}

	notes := decodeNotes(doc)
	s.log.Debug("notes loaded", "path", s.path, "count", len(notes))
	return notes, nil
}

// Save encodes notes and atomically replaces the document.
func (s *Store) Save(notes []*types.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	if err := writeDocument(s.path, encodeNotes(notes)); err != nil {
		return err
	}
	s.log.Debug("notes saved", "path", s.path, "count", len(notes))
	return nil
}

// writeDocument writes doc to path using the temp-file, fsync, rename
// pattern so a failed save never leaves a truncated document behind.
func writeDocument(path string, doc document) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".notes-*.xml.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	if _, err := w.WriteString(xml.Header); err != nil {
		return fail("writing header", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fail("encoding notes", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fail("writing newline", err)
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
