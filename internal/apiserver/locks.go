package apiserver

import "sync"

// userLocks hands out one mutex per user ID so each player's
// read-modify-write cycle against storage is serialized. Different users get
// independent mutexes and never contend.
//
// Locks are never evicted; the map grows with the distinct-user count, which
// is bounded by the player table.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for the given user ID, creating it on first use.
//
// Postcondition: Repeated calls with the same ID return the same mutex.
func (u *userLocks) get(userID string) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	return l
}
