package behavior

import (
	"sync"
	"time"

	"github.com/feedguard/feedguard/internal/model"
)

// Profile is a user's append-only observation history. It grows
// monotonically for the lifetime of the store; entries are never rewritten.
type Profile struct {
	Timestamps     []time.Time
	RiskIndices    []int
	CategoryCounts map[model.Category]int
	LateNightCount int
	DailyMinutes   []float64 // One bucket per calendar day with activity
	CurrentDay     string    // UTC date (2006-01-02) of the newest bucket
}

func newProfile() *Profile {
	return &Profile{
		CategoryCounts: make(map[model.Category]int),
	}
}

// clone returns a deep copy safe to read outside the store's lock
func (p *Profile) clone() *Profile {
	cp := &Profile{
		Timestamps:     append([]time.Time(nil), p.Timestamps...),
		RiskIndices:    append([]int(nil), p.RiskIndices...),
		CategoryCounts: make(map[model.Category]int, len(p.CategoryCounts)),
		LateNightCount: p.LateNightCount,
		DailyMinutes:   append([]float64(nil), p.DailyMinutes...),
		CurrentDay:     p.CurrentDay,
	}
	for k, v := range p.CategoryCounts {
		cp.CategoryCounts[k] = v
	}
	return cp
}

// Store abstracts profile persistence so the tracker is storage-agnostic.
// Implementations must serialize updates per user: one mutation completes
// fully before the next begins. Different users are independent.
type Store interface {
	// Update runs fn against the user's profile under that user's lock,
	// creating the profile on first use.
	Update(userID string, fn func(p *Profile))

	// Snapshot returns a consistent copy of the user's profile, or false
	// if the user is unknown.
	Snapshot(userID string) (*Profile, bool)

	// Delete removes all data for the user
	Delete(userID string)
}

// MemoryStore keeps profiles in a process-wide map with per-user locking
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*lockedProfile
}

type lockedProfile struct {
	mu      sync.Mutex
	profile *Profile
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*lockedProfile),
	}
}

// getOrCreate returns the entry for a user, creating it on first use
func (s *MemoryStore) getOrCreate(userID string) *lockedProfile {
	s.mu.RLock()
	entry, exists := s.profiles[userID]
	s.mu.RUnlock()

	if exists {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if entry, exists := s.profiles[userID]; exists {
		return entry
	}

	entry = &lockedProfile{profile: newProfile()}
	s.profiles[userID] = entry
	return entry
}

// Update applies fn under the user's lock
func (s *MemoryStore) Update(userID string, fn func(p *Profile)) {
	entry := s.getOrCreate(userID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.profile)
}

// Snapshot returns a deep copy of the user's profile
func (s *MemoryStore) Snapshot(userID string) (*Profile, bool) {
	s.mu.RLock()
	entry, exists := s.profiles[userID]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.profile.clone(), true
}

// Delete removes the user's profile entirely
func (s *MemoryStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
}
