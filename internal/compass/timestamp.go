package compass

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the on-disk timestamp format (millisecond precision, local time).
const TimeLayout = "2006-01-02 15:04:05.000"

// Unknown is written in place of a missing timestamp.
const Unknown = "Unknown"

var parseLayouts = []string{TimeLayout, time.DateTime, time.RFC3339Nano}

// Timestamp is a time that round-trips through the persisted document format.
// The zero value encodes as "Unknown".
type Timestamp struct {
	time.Time
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return Unknown
	}
	return t.Format(TimeLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Tolerate null and non-string values from hand-edited files.
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	*t = parsed
	return nil
}

// ParseTimestamp accepts any of the layouts the document has used.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" || s == Unknown {
		return Timestamp{}, nil
	}
	for _, layout := range parseLayouts {
		if v, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{v}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}
