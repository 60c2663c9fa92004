package rtk

import "sync"

// SurveyInTracker holds the latest survey-in snapshot. Updates come only
// from the callback bridge; reads may come from status queries on another
// goroutine, so the snapshot gets its own mutex, independent of the
// position buffers.
type SurveyInTracker struct {
	mu     sync.Mutex
	status SurveyInStatus
}

// Update replaces the held snapshot wholesale.
func (t *SurveyInTracker) Update(s SurveyInStatus) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Current returns the latest snapshot, or the zero value if none has ever
// been received.
func (t *SurveyInTracker) Current() SurveyInStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}
