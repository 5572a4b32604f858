package service

import "sync"

// roomLocker hands out one mutex per room so booking creation for a room is
// serialized in-process. Locks are created on first use and never discarded;
// the room set is small and long-lived.
type roomLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newRoomLocker() *roomLocker {
	return &roomLocker{locks: map[int64]*sync.Mutex{}}
}

// Lock acquires the mutex for roomID and returns its release func.
func (l *roomLocker) Lock(roomID int64) func() {
	l.mu.Lock()

	lock, ok := l.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[roomID] = lock
	}

	l.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}
