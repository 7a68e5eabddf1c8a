package compass

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jeanpaul/compass/internal/schema"
)

// SchemaVersion is written to metadata.version.
const SchemaVersion = "2.1"

var validator = schema.NewValidator()

// Metadata is the summary block at the top of the document.
type Metadata struct {
	LastUpdated    Timestamp `json:"last_updated"`
	TotalPeople    int       `json:"total_people"`
	Version        string    `json:"version"`
	TotalEdits     int       `json:"total_edits"`
	SessionStarted Timestamp `json:"session_started"`
}

// Document is the full on-disk snapshot.
type Document struct {
	Metadata    Metadata `json:"metadata"`
	EditHistory []Entry  `json:"edit_history"`
	People      People   `json:"people"`
}

// People is a name -> point mapping that keeps document order.
type People []Point

type personRecord struct {
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Quadrant  Quadrant  `json:"quadrant,omitempty"`
	DateAdded Timestamp `json:"date_added"`
	LastMoved Timestamp `json:"last_moved"`
}

func (ps People) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(personRecord{
			X:         p.X,
			Y:         p.Y,
			Quadrant:  p.Quadrant,
			DateAdded: p.DateAdded,
			LastMoved: p.LastMoved,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the mapping in key order. Positions are clamped and the
// quadrant is always derived from the position. A repeated key keeps its first
// slot and the last value.
func (ps *People) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("people: expected object, got %v", tok)
	}

	index := make(map[string]int)
	var out People
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var rec personRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("people %q: %w", name, err)
		}
		pos := Position{X: rec.X, Y: rec.Y}.Clamp()
		p := Point{
			Name:      name,
			Position:  pos,
			Quadrant:  QuadrantOf(pos.X, pos.Y),
			DateAdded: rec.DateAdded,
			LastMoved: rec.LastMoved,
		}
		if i, seen := index[name]; seen {
			out[i] = p
			continue
		}
		index[name] = len(out)
		out = append(out, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ps = out
	return nil
}

// DecodeDocument parses either supported layout into a Document. Legacy files
// yield an empty history and zero metadata.
func DecodeDocument(data []byte) (*Document, schema.Shape, error) {
	shape, err := validator.Detect(data)
	if err != nil {
		return nil, shape, err
	}

	var doc Document
	switch shape {
	case schema.ShapeCurrent:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, shape, err
		}
	case schema.ShapeLegacy:
		if err := json.Unmarshal(data, &doc.People); err != nil {
			return nil, shape, err
		}
	}
	for i := range doc.EditHistory {
		if len(doc.EditHistory[i].Details) == 0 || string(doc.EditHistory[i].Details) == "null" {
			doc.EditHistory[i].Details = json.RawMessage(`{}`)
		}
	}
	return &doc, shape, nil
}

// Snapshot builds the document Save would write.
func (s *Store) Snapshot() *Document {
	history := s.log.Entries()
	return &Document{
		Metadata: Metadata{
			LastUpdated:    Timestamp{s.now()},
			TotalPeople:    len(s.order),
			Version:        SchemaVersion,
			TotalEdits:     len(history),
			SessionStarted: Timestamp{s.sessionStart},
		},
		EditHistory: history,
		People:      s.Points(),
	}
}

// Save writes the full snapshot, replacing the backing file in one rename.
func (s *Store) Save() error {
	if err := s.save(); err != nil {
		perr := &PersistenceError{Op: "save", Path: s.path, Err: err}
		s.logger.Error("error saving data", zap.String("path", s.path), zap.Error(err))
		return perr
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := s.ensureDir(dir); err != nil {
		return err
	}
	return WriteFileAtomic(s.path, data)
}

func (s *Store) ensureDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if s.hideDir {
		if err := HideDir(dir); err != nil {
			s.logger.Warn("could not hide data directory", zap.String("dir", dir), zap.Error(err))
		}
	}
	return nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it over path.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Load replaces the store contents with the backing file. A missing file is
// not an error. Any other failure leaves the store empty and is returned as
// a *PersistenceError after being logged.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("no saved data", zap.String("path", s.path))
		return nil
	}
	if err != nil {
		return s.loadFailed(err)
	}
	doc, shape, err := DecodeDocument(data)
	if err != nil {
		return s.loadFailed(err)
	}

	s.reset()
	s.unreadable = false
	skipped := s.adopt(doc.People)
	s.log.replace(doc.EditHistory)
	s.previous = doc.Metadata

	s.logger.Info("loaded saved data",
		zap.String("path", s.path),
		zap.Stringer("layout", shape),
		zap.Int("people", len(s.order)),
		zap.Int("history", s.log.Len()))
	if skipped > 0 {
		s.logger.Warn("skipped unnamed people", zap.Int("count", skipped))
	}
	return nil
}

func (s *Store) loadFailed(err error) error {
	s.reset()
	s.log.replace(nil)
	s.previous = Metadata{}
	s.unreadable = true
	s.logger.Warn("error loading data", zap.String("path", s.path), zap.Error(err))
	return &PersistenceError{Op: "load", Path: s.path, Err: err}
}

// adopt inserts decoded points, dropping any whose name is blank after
// trimming or collides with an existing one. It returns how many were dropped.
func (s *Store) adopt(people People) int {
	skipped := 0
	for _, p := range people {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			skipped++
			continue
		}
		if _, dup := s.people[p.Name]; dup {
			skipped++
			continue
		}
		s.insert(p)
	}
	return skipped
}

// Import replaces the current people with those in the file at path, which
// may use either layout. It returns the number of people imported.
func (s *Store) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &PersistenceError{Op: "import", Path: path, Err: err}
	}
	doc, _, err := DecodeDocument(data)
	if err != nil {
		return 0, &PersistenceError{Op: "import", Path: path, Err: err}
	}

	now := s.now()
	if len(s.order) > 0 {
		names := append([]string{}, s.order...)
		s.log.append(now, ActionAllCleared, ClearedDetails{PeopleCount: len(names), PeopleNames: names})
	}
	s.reset()
	for _, p := range doc.People {
		if p.DateAdded.IsZero() {
			p.DateAdded = Timestamp{now}
		}
		if p.LastMoved.IsZero() {
			p.LastMoved = Timestamp{now}
		}
		if s.adopt(People{p}) > 0 {
			continue
		}
		added := s.people[strings.TrimSpace(p.Name)]
		s.log.append(now, ActionPersonAdded, AddedDetails{
			Name:     added.Name,
			Position: added.Position,
			Quadrant: added.Quadrant,
			Method:   "import",
		})
	}
	s.logger.Info("imported people", zap.String("path", path), zap.Int("people", len(s.order)))
	s.persist()
	return len(s.order), nil
}
