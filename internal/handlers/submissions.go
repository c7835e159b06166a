package handlers

import (
	"sync"
	"time"

	"github.com/ukydev/motor-quotation/internal/wizard"
)

// submissionLog remembers which wizard sessions have been submitted so a
// replayed token cannot create a second lead. Entries live as long as the
// session tokens that could replay them.
type submissionLog struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*submissionEntry
}

type submissionEntry struct {
	confirmed *wizard.Snapshot // nil while the submission is running
	expires   time.Time
}

func newSubmissionLog(ttl time.Duration) *submissionLog {
	return &submissionLog{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*submissionEntry),
	}
}

// lookup returns the confirmed snapshot of a submitted session. pending is
// true while a submission for the session is still running.
func (l *submissionLog) lookup(sessionID string) (confirmed *wizard.Snapshot, pending bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[sessionID]
	if !ok || !l.now().Before(e.expires) {
		return nil, false
	}
	if e.confirmed == nil {
		return nil, true
	}
	snap := *e.confirmed
	return &snap, false
}

// reserve marks a session as submitting. It reports false if the session
// was already reserved or submitted.
func (l *submissionLog) reserve(sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, e := range l.entries {
		if !now.Before(e.expires) {
			delete(l.entries, id)
		}
	}
	if _, ok := l.entries[sessionID]; ok {
		return false
	}
	l.entries[sessionID] = &submissionEntry{expires: now.Add(l.ttl)}
	return true
}

// confirm records the confirmed state of a reserved session.
func (l *submissionLog) confirm(sessionID string, snap wizard.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[sessionID]; ok {
		e.confirmed = &snap
	}
}

// release drops a reservation whose submission failed.
func (l *submissionLog) release(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.entries, sessionID)
}
