// Package runmeta provides run metadata and dataset integrity hashing.
package runmeta

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"
)

// Metadata describes one scrape run: when it started, how long it took,
// and a content hash of the assembled crop data.
type Metadata struct {
	Timestamp time.Time
	Duration  time.Duration
	Hash      string
}

// New creates run metadata for a run that started at the given time.
func New(start time.Time) *Metadata {
	return &Metadata{
		Timestamp: start,
		Duration:  time.Since(start),
	}
}

// Seconds returns the run duration in seconds, rounded to two decimals.
func (m *Metadata) Seconds() float64 {
	return math.Round(m.Duration.Seconds()*100) / 100
}

// FormattedDuration returns the duration as "Xm Ys".
func (m *Metadata) FormattedDuration() string {
	total := int(m.Duration.Seconds())

	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// CalculateHash computes the SHA-256 hash of serialized content.
// Two runs producing identical crop data hash identically, which lets the
// history store flag unchanged days.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}
