// Package testutils provides deterministic generators and test doubles for the
// LSL interpreter. Deterministic sources keep golden output stable while
// producing values in the same format as production.
package testutils

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDSource supplies identifiers and timestamps for newly created records.
type IDSource interface {
	NewID() string
	Now() time.Time
}

// NewIDSource returns a deterministic source in test mode and a random/wall
// clock source otherwise.
func NewIDSource(testMode bool) IDSource {
	if testMode {
		return NewDeterministicSource()
	}
	return systemSource{}
}

type systemSource struct{}

func (systemSource) NewID() string  { return uuid.New().String() }
func (systemSource) Now() time.Time { return time.Now() }

// DeterministicSource yields sequential UUID-shaped identifiers and
// incrementing timestamps. Counters are per instance, so two runs that each
// own a source see identical sequences.
type DeterministicSource struct {
	mu          sync.Mutex
	idCounter   uint64
	timeCounter int64
}

// NewDeterministicSource creates a source starting at 1 and 2025-01-01T00:00:01Z.
func NewDeterministicSource() *DeterministicSource {
	return &DeterministicSource{}
}

// NewID returns UUIDs like 00000001-0000-4000-8000-000000000001, keeping the
// version 4 layout.
func (s *DeterministicSource) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idCounter++
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", s.idCounter, s.idCounter)
}

// Now returns a time one second later than the previous call.
func (s *DeterministicSource) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeCounter++
	baseTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return baseTime.Add(time.Duration(s.timeCounter) * time.Second)
}
