package compass

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// tickClock returns a clock that advances one second per call.
func tickClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), WithClock(tickClock()))
}
