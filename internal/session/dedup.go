package session

import "sync"

// Dedup remembers recently seen event identifiers so retried chat
// deliveries are handled once. When the cap is reached the older half is
// dropped, trading exactness for a hard memory bound.
type Dedup struct {
	mu   sync.Mutex
	seen map[string]struct{}
	ids  []string
	cap  int
}

func NewDedup(capacity int) *Dedup {
	if capacity <= 0 {
		capacity = 1000
	}

	return &Dedup{
		seen: make(map[string]struct{}, capacity),
		cap:  capacity,
	}
}

// Seen records id and reports whether it was already present. Empty
// identifiers are never deduplicated.
func (d *Dedup) Seen(id string) bool {
	if id == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if len(d.ids) >= d.cap {
		drop := d.ids[:len(d.ids)/2]
		for _, old := range drop {
			delete(d.seen, old)
		}

		d.ids = append([]string{}, d.ids[len(d.ids)/2:]...)
	}

	d.seen[id] = struct{}{}
	d.ids = append(d.ids, id)

	return false
}
