package stats

import (
	"testing"
	"time"

	"github.com/yallarent/yallarent/internal/domain"
)

func TestOutstandingBalance(t *testing.T) {
	cases := []struct {
		total, paid, want float64
	}{
		{1000, 300, 700},
		{300, 300, 0},
		{1200, 100, 1100},
		{100, 250, -150}, // overpaid, not clamped
	}
	for _, tc := range cases {
		c := domain.Customer{TotalAmount: tc.total, PaidAmount: tc.paid}
		if got := OutstandingBalance(c); got != tc.want {
			t.Errorf("OutstandingBalance(%v, %v) = %v, want %v", tc.total, tc.paid, got, tc.want)
		}
	}
}

func TestNotifyEligible(t *testing.T) {
	cases := []struct {
		total, paid float64
		want        bool
	}{
		{300, 300, false},   // balance 0
		{1200, 100, true},   // balance 1100
		{1000, 500, false},  // balance exactly 500 is excluded
		{1001, 500, true},   // balance 501
	}
	for _, tc := range cases {
		c := domain.Customer{TotalAmount: tc.total, PaidAmount: tc.paid}
		if got := NotifyEligible(c); got != tc.want {
			t.Errorf("NotifyEligible(balance %v) = %v, want %v", tc.total-tc.paid, got, tc.want)
		}
	}
}

func TestIsLate(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	yesterday := "2026-08-28"
	tomorrow := "2026-08-30"

	cases := []struct {
		name       string
		returnDate string
		total      float64
		paid       float64
		want       bool
	}{
		{"overdue with balance", yesterday, 100, 50, true},
		{"future return with balance", tomorrow, 100, 50, false},
		{"overdue fully paid", yesterday, 100, 100, false},
		{"unparseable date", "not-a-date", 100, 0, false},
	}
	for _, tc := range cases {
		c := domain.Customer{ReturnDate: tc.returnDate, TotalAmount: tc.total, PaidAmount: tc.paid}
		if got := IsLate(c, now); got != tc.want {
			t.Errorf("%s: IsLate = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTotalEarnings(t *testing.T) {
	customers := []domain.Customer{
		{PaidAmount: 300},
		{PaidAmount: 700},
		{PaidAmount: 0},
	}
	if got := TotalEarnings(customers); got != 1000 {
		t.Errorf("TotalEarnings = %v, want 1000", got)
	}
	if got := TotalEarnings(nil); got != 0 {
		t.Errorf("TotalEarnings(nil) = %v, want 0", got)
	}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cars := []domain.Car{{ID: 1}, {ID: 2}}
	customers := []domain.Customer{
		{ReturnDate: "2026-08-01", TotalAmount: 500, PaidAmount: 100}, // late
		{ReturnDate: "2026-12-01", TotalAmount: 500, PaidAmount: 200},
	}
	bookings := []domain.Booking{{ID: "booking-1"}}

	d := BuildDashboard(cars, customers, bookings, now)
	if d.TotalCars != 2 || d.TotalCustomers != 2 || d.TotalBookings != 1 {
		t.Errorf("unexpected counts: %+v", d)
	}
	if d.LateCustomers != 1 {
		t.Errorf("LateCustomers = %d, want 1", d.LateCustomers)
	}
	if d.TotalEarnings != 300 {
		t.Errorf("TotalEarnings = %v, want 300", d.TotalEarnings)
	}
}

func TestNotifyList(t *testing.T) {
	customers := []domain.Customer{
		{ID: 1, TotalAmount: 1200, PaidAmount: 100},
		{ID: 2, TotalAmount: 300, PaidAmount: 300},
	}
	list := NotifyList(customers)
	if len(list) != 1 || list[0].ID != 1 {
		t.Errorf("unexpected notify list: %+v", list)
	}
}
