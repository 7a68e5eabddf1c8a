package compass

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileName is the name of the backing document inside the data directory.
const FileName = "people_data.json"

// Store owns the placed points, the edit log and the session metadata, and
// keeps the backing file in step with every completed operation.
//
// A Store is driven from a single goroutine; it does no locking.
type Store struct {
	path   string
	people map[string]*Point
	order  []string
	log    EditLog

	sessionID    string
	sessionStart time.Time
	previous     Metadata

	// unreadable is set while the backing file failed to load and no
	// mutation has replaced it yet.
	unreadable bool

	hideDir bool
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHiddenDir marks the data directory hidden when Save first creates it.
func WithHiddenDir(hide bool) Option {
	return func(s *Store) { s.hideDir = hide }
}

// New returns an empty store backed by <dataDir>/people_data.json. Call Load to
// read existing data.
func New(dataDir string, opts ...Option) *Store {
	s := &Store{
		path:   filepath.Join(dataDir, FileName),
		people: make(map[string]*Point),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessionStart = s.now()
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) Len() int { return len(s.order) }

// Get returns a copy of the named point.
func (s *Store) Get(name string) (Point, bool) {
	p, ok := s.people[name]
	if !ok {
		return Point{}, false
	}
	return *p, true
}

// Points returns copies of all points in insertion order.
func (s *Store) Points() []Point {
	out := make([]Point, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.people[name])
	}
	return out
}

// History returns the retained edit log entries, oldest first.
func (s *Store) History() []Entry { return s.log.Entries() }

// SessionStarted reports when the current session began.
func (s *Store) SessionStarted() time.Time { return s.sessionStart }

// Add places a new point at the origin.
func (s *Store) Add(name string) (Point, error) {
	now := s.now()
	p, err := newPoint(name, Position{}, now)
	if err != nil {
		return Point{}, fmt.Errorf("add %q: %w", name, err)
	}
	if _, exists := s.people[p.Name]; exists {
		return Point{}, fmt.Errorf("add %q: %w", p.Name, ErrDuplicateName)
	}
	s.insert(p)
	s.log.append(now, ActionPersonAdded, AddedDetails{
		Name:     p.Name,
		Position: p.Position,
		Quadrant: p.Quadrant,
	})
	s.logger.Debug("person added", zap.String("name", p.Name))
	s.persist()
	return p, nil
}

// SetPosition moves a point without logging or persisting. It backs live
// drag previews; Move and EditCoordinates commit a finished gesture.
func (s *Store) SetPosition(name string, x, y float64) (Point, error) {
	p, ok := s.people[name]
	if !ok {
		return Point{}, fmt.Errorf("set position %q: %w", name, ErrNotFound)
	}
	p.place(Position{X: x, Y: y}, s.now())
	return *p, nil
}

// Move places a point and records the move.
func (s *Store) Move(name string, x, y float64) (Point, error) {
	from, ok := s.Get(name)
	if !ok {
		return Point{}, fmt.Errorf("move %q: %w", name, ErrNotFound)
	}
	return s.commitMove(from, Position{X: x, Y: y})
}

// commitMove places the point at to and logs the transition from the given
// starting point, which for a drag is the state before the gesture began.
func (s *Store) commitMove(from Point, to Position) (Point, error) {
	p, err := s.SetPosition(from.Name, to.X, to.Y)
	if err != nil {
		return Point{}, err
	}
	s.log.append(s.now(), ActionPersonMoved, MovedDetails{
		Name:        p.Name,
		OldPosition: from.Position,
		NewPosition: p.Position,
		OldQuadrant: from.Quadrant,
		NewQuadrant: p.Quadrant,
	})
	s.persist()
	return p, nil
}

// EditCoordinates applies manually entered coordinates.
func (s *Store) EditCoordinates(name, xs, ys string) (Point, error) {
	x, err := ParseCoord(xs)
	if err != nil {
		return Point{}, fmt.Errorf("edit %q: x: %w", name, err)
	}
	y, err := ParseCoord(ys)
	if err != nil {
		return Point{}, fmt.Errorf("edit %q: y: %w", name, err)
	}
	from, ok := s.Get(name)
	if !ok {
		return Point{}, fmt.Errorf("edit %q: %w", name, ErrNotFound)
	}
	p, err := s.SetPosition(name, x, y)
	if err != nil {
		return Point{}, err
	}
	s.log.append(s.now(), ActionCoordinatesEdited, MovedDetails{
		Name:        name,
		OldPosition: from.Position,
		NewPosition: p.Position,
		OldQuadrant: from.Quadrant,
		NewQuadrant: p.Quadrant,
		Method:      "manual_input",
	})
	s.persist()
	return p, nil
}

// ParseCoord reads a typed coordinate. Anything that is not a finite number
// fails with ErrInvalidInput.
func ParseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number: %w", s, ErrInvalidInput)
	}
	return v, nil
}

// Remove deletes a point, logging its last known state first.
func (s *Store) Remove(name string) error {
	p, ok := s.people[name]
	if !ok {
		return fmt.Errorf("remove %q: %w", name, ErrNotFound)
	}
	s.log.append(s.now(), ActionPersonRemoved, RemovedDetails{
		Name:      p.Name,
		Position:  p.Position,
		Quadrant:  p.Quadrant,
		DateAdded: p.DateAdded,
	})
	s.delete(name)
	s.persist()
	return nil
}

// Clear removes every point with a single log entry.
func (s *Store) Clear() {
	names := append([]string{}, s.order...)
	s.log.append(s.now(), ActionAllCleared, ClearedDetails{
		PeopleCount: len(names),
		PeopleNames: names,
	})
	s.reset()
	s.persist()
}

// FindNear returns the first point, in insertion order, within Sensitivity of
// (x, y) on both axes.
func (s *Store) FindNear(x, y float64) (string, bool) {
	for _, name := range s.order {
		p := s.people[name]
		if math.Abs(x-p.X) < Sensitivity && math.Abs(y-p.Y) < Sensitivity {
			return name, true
		}
	}
	return "", false
}

// SessionStart records the beginning of a session along with a summary of the
// previously saved one. It does not persist.
func (s *Store) SessionStart() {
	s.sessionStart = s.now()
	s.sessionID = uuid.NewString()
	s.log.append(s.sessionStart, ActionSessionStarted, SessionStartedDetails{
		SessionID:           s.sessionID,
		PreviousTotalPeople: s.previous.TotalPeople,
		PreviousLastUpdated: s.previous.LastUpdated,
	})
	s.logger.Info("session started", zap.String("session", s.sessionID))
}

// SessionEnd records the session duration and saves, unless the file failed
// to load and nothing has been changed since.
func (s *Store) SessionEnd() {
	now := s.now()
	dur := now.Sub(s.sessionStart)
	s.log.append(now, ActionSessionEnded, SessionEndedDetails{
		FinalPeopleCount:       len(s.order),
		SessionDurationSeconds: dur.Seconds(),
	})
	s.logger.Info("session ended",
		zap.String("session", s.sessionID),
		zap.Duration("duration", dur),
		zap.Int("people", len(s.order)))
	if s.unreadable {
		s.logger.Warn("leaving unreadable data file in place", zap.String("path", s.path))
		return
	}
	s.persist()
}

func (s *Store) insert(p Point) {
	if _, exists := s.people[p.Name]; !exists {
		s.order = append(s.order, p.Name)
	}
	s.people[p.Name] = &p
}

func (s *Store) delete(name string) {
	delete(s.people, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) reset() {
	s.people = make(map[string]*Point)
	s.order = nil
}

// restore puts a previously captured point back verbatim.
func (s *Store) restore(p Point) {
	if cur, ok := s.people[p.Name]; ok {
		*cur = p
	}
}

// persist saves after a mutation. Failures are already logged by Save and the
// in-memory state stays authoritative.
func (s *Store) persist() {
	s.unreadable = false
	_ = s.Save()
}
