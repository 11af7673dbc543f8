package server

import (
	"fmt"
	"sync"
	"time"
)

// Feedback types accepted from clients
const (
	FeedbackHelpful            = "helpful"
	FeedbackNotHelpful         = "not_helpful"
	FeedbackAlternativeClicked = "alternative_clicked"
)

// Feedback is one user reaction to an intervention or alternative
type Feedback struct {
	UserID         string    `json:"user_id"`
	RunID          string    `json:"run_id,omitempty"`
	Type           string    `json:"type"`
	AlternativeURL string    `json:"alternative_url,omitempty"`
	ReceivedAt     time.Time `json:"received_at"`
}

// ValidateFeedbackType rejects types outside the closed vocabulary
func ValidateFeedbackType(t string) error {
	switch t {
	case FeedbackHelpful, FeedbackNotHelpful, FeedbackAlternativeClicked:
		return nil
	default:
		return fmt.Errorf("unknown feedback type %q", t)
	}
}

// FeedbackStore keeps feedback in memory, indexed by user
type FeedbackStore struct {
	mu     sync.RWMutex
	byUser map[string][]Feedback
	byType map[string]int64
}

// NewFeedbackStore creates an empty store
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{
		byUser: make(map[string][]Feedback),
		byType: make(map[string]int64),
	}
}

// Add records one feedback entry
func (s *FeedbackStore) Add(fb Feedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[fb.UserID] = append(s.byUser[fb.UserID], fb)
	s.byType[fb.Type]++
}

// CountsForUser returns per-type feedback counts for one user
func (s *FeedbackStore) CountsForUser(userID string) map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, fb := range s.byUser[userID] {
		counts[fb.Type]++
	}
	return counts
}

// Counts returns global per-type feedback counts
func (s *FeedbackStore) Counts() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64, len(s.byType))
	for k, v := range s.byType {
		counts[k] = v
	}
	return counts
}

// DeleteUser removes all feedback for the user
func (s *FeedbackStore) DeleteUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fb := range s.byUser[userID] {
		s.byType[fb.Type]--
	}
	delete(s.byUser, userID)
}
