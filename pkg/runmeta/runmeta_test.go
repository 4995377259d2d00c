package runmeta

import (
	"testing"
	"time"
)

func TestSeconds_RoundsToTwoDecimals(t *testing.T) {
	m := &Metadata{Duration: 95_237 * time.Millisecond}

	if got := m.Seconds(); got != 95.24 {
		t.Errorf("Seconds = %v, want 95.24", got)
	}
}

func TestFormattedDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{95 * time.Second, "1m 35s"},
		{59 * time.Second, "0m 59s"},
		{2 * time.Minute, "2m 0s"},
		{0, "0m 0s"},
	}

	for _, tt := range tests {
		m := &Metadata{Duration: tt.duration}
		if got := m.FormattedDuration(); got != tt.want {
			t.Errorf("FormattedDuration(%v) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestNew_SetsStartTime(t *testing.T) {
	start := time.Now().Add(-time.Second)

	m := New(start)

	if !m.Timestamp.Equal(start) {
		t.Errorf("Timestamp = %v, want %v", m.Timestamp, start)
	}

	if m.Duration < time.Second {
		t.Errorf("Duration = %v, want at least 1s", m.Duration)
	}
}

func TestCalculateHash(t *testing.T) {
	a := CalculateHash([]byte("same content"))
	b := CalculateHash([]byte("same content"))
	c := CalculateHash([]byte("other content"))

	if a != b {
		t.Error("identical content should hash identically")
	}

	if a == c {
		t.Error("different content should hash differently")
	}

	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
