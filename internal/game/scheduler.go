package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// timerScheduler backs the controller with real timers. Pending timers are
// tracked per session so StartGame can cancel everything the old session
// still had queued.
type timerScheduler struct {
	mu      sync.Mutex
	pending map[uuid.UUID][]*time.Timer
}

func newTimerScheduler() *timerScheduler {
	return &timerScheduler{pending: make(map[uuid.UUID][]*time.Timer)}
}

func (s *timerScheduler) After(session uuid.UUID, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		fn()
		s.mu.Lock()
		timers := s.pending[session]
		for i, pending := range timers {
			if pending == t {
				s.pending[session] = append(timers[:i], timers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	})
	s.pending[session] = append(s.pending[session], t)
}

func (s *timerScheduler) Cancel(session uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.pending[session] {
		t.Stop()
	}
	delete(s.pending, session)
}
