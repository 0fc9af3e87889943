package client

import (
	"sync"
	"time"
)

// maxPendingWrites bounds how many unacknowledged profile writes are kept
// per user. Older ones are dropped first.
const maxPendingWrites = 16

// writeLog remembers the updated_at stamps of profile rows this process
// wrote until the matching notification comes back.
type writeLog struct {
	mu     sync.Mutex
	byUser map[string][]int64
}

func newWriteLog() *writeLog {
	return &writeLog{byUser: make(map[string][]int64)}
}

// stamp is the notification representation of t: microseconds since epoch,
// the resolution Postgres stores timestamptz at.
func stamp(t time.Time) int64 {
	return t.UnixMicro()
}

func (w *writeLog) record(userID string, at int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	pending := append(w.byUser[userID], at)
	if len(pending) > maxPendingWrites {
		pending = pending[len(pending)-maxPendingWrites:]
	}
	w.byUser[userID] = pending
}

func (w *writeLog) forget(userID string, at int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.removeLocked(userID, func(v int64) bool { return v == at })
}

// consume reports whether at matches a recorded write for userID and drops
// it. One microsecond of slack absorbs float rounding in the trigger.
func (w *writeLog) consume(userID string, at int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removeLocked(userID, func(v int64) bool {
		d := v - at
		return d >= -1 && d <= 1
	})
}

func (w *writeLog) removeLocked(userID string, match func(int64) bool) bool {
	pending := w.byUser[userID]
	for i, v := range pending {
		if !match(v) {
			continue
		}
		pending = append(pending[:i], pending[i+1:]...)
		if len(pending) == 0 {
			delete(w.byUser, userID)
		} else {
			w.byUser[userID] = pending
		}
		return true
	}
	return false
}
