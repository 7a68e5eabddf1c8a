package compass

import (
	"encoding/json"
	"time"
)

// MaxHistory caps the edit log; older entries are evicted first.
const MaxHistory = 100

// Action tags an edit log entry.
type Action string

const (
	ActionPersonAdded       Action = "person_added"
	ActionPersonMoved       Action = "person_moved"
	ActionCoordinatesEdited Action = "coordinates_edited"
	ActionPersonRemoved     Action = "person_removed"
	ActionAllCleared        Action = "all_people_cleared"
	ActionSessionStarted    Action = "session_started"
	ActionSessionEnded      Action = "session_ended"
)

// Entry is one record in the edit log. Details holds the action specific
// payload as raw JSON so entries written by older versions survive a reload.
type Entry struct {
	Timestamp Timestamp       `json:"timestamp"`
	Action    Action          `json:"action"`
	Details   json.RawMessage `json:"details"`
}

// Decode unmarshals the details payload into v (one of the *Details types).
func (e Entry) Decode(v any) error {
	if len(e.Details) == 0 {
		return nil
	}
	return json.Unmarshal(e.Details, v)
}

type AddedDetails struct {
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Quadrant Quadrant `json:"quadrant"`
	Method   string   `json:"method,omitempty"`
}

type MovedDetails struct {
	Name        string   `json:"name"`
	OldPosition Position `json:"old_position"`
	NewPosition Position `json:"new_position"`
	OldQuadrant Quadrant `json:"old_quadrant"`
	NewQuadrant Quadrant `json:"new_quadrant"`
	Method      string   `json:"method,omitempty"`
}

type RemovedDetails struct {
	Name      string    `json:"name"`
	Position  Position  `json:"position"`
	Quadrant  Quadrant  `json:"quadrant"`
	DateAdded Timestamp `json:"date_added"`
}

type ClearedDetails struct {
	PeopleCount int      `json:"people_count"`
	PeopleNames []string `json:"people_names"`
}

type SessionStartedDetails struct {
	SessionID           string    `json:"session_id"`
	PreviousTotalPeople int       `json:"previous_total_people"`
	PreviousLastUpdated Timestamp `json:"previous_last_updated"`
}

type SessionEndedDetails struct {
	FinalPeopleCount       int     `json:"final_people_count"`
	SessionDurationSeconds float64 `json:"session_duration_seconds"`
}

// EditLog is an append-only, bounded sequence of entries.
type EditLog struct {
	entries []Entry
}

func (l *EditLog) append(at time.Time, action Action, details any) {
	raw, err := json.Marshal(details)
	if err != nil || details == nil {
		raw = json.RawMessage(`{}`)
	}
	l.entries = append(l.entries, Entry{Timestamp: Timestamp{at}, Action: action, Details: raw})
	l.trim()
}

func (l *EditLog) trim() {
	if over := len(l.entries) - MaxHistory; over > 0 {
		kept := make([]Entry, MaxHistory)
		copy(kept, l.entries[over:])
		l.entries = kept
	}
}

func (l *EditLog) replace(entries []Entry) {
	l.entries = append([]Entry(nil), entries...)
	l.trim()
}

// Len reports the number of retained entries.
func (l *EditLog) Len() int { return len(l.entries) }

// Entries returns a copy of the retained entries, oldest first.
func (l *EditLog) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Last returns up to n most recent entries, oldest first.
func (l *EditLog) Last(n int) []Entry {
	if n <= 0 || n >= len(l.entries) {
		return l.Entries()
	}
	return append([]Entry(nil), l.entries[len(l.entries)-n:]...)
}
