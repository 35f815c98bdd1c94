package store

import (
	"fmt"
	"sync"
	"time"
)

// idMinter issues record identifiers derived from the creation instant's
// millisecond timestamp. When the clock has not advanced past the last
// issued id (rapid creation within one millisecond, or clock skew after a
// restart) the minter bumps monotonically instead of reissuing the value,
// so ids stay unique without changing their timestamp character.
type idMinter struct {
	mu   sync.Mutex
	last int64
}

func (m *idMinter) Next() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UnixMilli()
	if now <= m.last {
		now = m.last + 1
	}
	m.last = now
	return now
}

// NextBookingID returns a booking identifier of the form "booking-<millis>".
func (m *idMinter) NextBookingID() string {
	return fmt.Sprintf("booking-%d", m.Next())
}

// prime advances the minter past an id observed in loaded data, so records
// created after a restart cannot collide with persisted ones.
func (m *idMinter) prime(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id > m.last {
		m.last = id
	}
}
