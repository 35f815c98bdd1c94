package store

import (
	"strings"
	"testing"
	"time"
)

func TestIDMinterMonotonic(t *testing.T) {
	m := &idMinter{}
	last := int64(0)
	for i := 0; i < 1000; i++ {
		id := m.Next()
		if id <= last {
			t.Fatalf("id %d not strictly greater than %d", id, last)
		}
		last = id
	}
}

func TestIDMinterTimestampCharacter(t *testing.T) {
	m := &idMinter{}
	before := time.Now().UnixMilli()
	id := m.Next()
	after := time.Now().UnixMilli()
	if id < before || id > after+1 {
		t.Errorf("id %d not derived from current millis [%d, %d]", id, before, after)
	}
}

func TestIDMinterPrime(t *testing.T) {
	m := &idMinter{}
	future := time.Now().UnixMilli() + 1_000_000
	m.prime(future)
	if id := m.Next(); id <= future {
		t.Errorf("id %d did not advance past primed value %d", id, future)
	}
	// priming backwards must not regress
	m.prime(1)
	if id := m.Next(); id <= future {
		t.Errorf("prime regressed the minter: %d", id)
	}
}

func TestBookingIDForm(t *testing.T) {
	m := &idMinter{}
	id := m.NextBookingID()
	if !strings.HasPrefix(id, "booking-") {
		t.Fatalf("unexpected booking id %q", id)
	}
	if m.NextBookingID() == id {
		t.Error("booking ids not unique")
	}
}
