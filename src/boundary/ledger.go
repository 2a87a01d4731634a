package boundary

import "sync"

// Ledger counts handles that have been given to a caller and not yet handed
// back. The zero value is ready to use.
type Ledger[K comparable] struct {
	mu   sync.Mutex
	live map[K]struct{}
}

// Track records k as issued.
func (l *Ledger[K]) Track(k K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.live == nil {
		l.live = make(map[K]struct{})
	}
	l.live[k] = struct{}{}
}

// Untrack removes k and reports whether it was outstanding. A false result
// means k was never issued or was already returned.
func (l *Ledger[K]) Untrack(k K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.live[k]; !ok {
		return false
	}
	delete(l.live, k)
	return true
}

// Outstanding returns the number of issued handles not yet returned.
func (l *Ledger[K]) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}
