// Package stats holds the derived customer aggregates shown across the
// admin views. Everything here is a pure function over the current customer
// snapshot; results are recomputed on every read and never cached.
package stats

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/yallarent/yallarent/internal/domain"
)

// NotifyThreshold is the outstanding balance above which a customer appears
// on the payment-reminder list. Currency-unit-agnostic; strictly greater
// than, so a balance of exactly 500 is not eligible.
const NotifyThreshold = 500

// OutstandingBalance is totalAmount minus paidAmount. Not clamped: an
// overpaying customer yields a negative balance.
func OutstandingBalance(c domain.Customer) float64 {
	return c.TotalAmount - c.PaidAmount
}

// IsLate reports whether the customer's return date is strictly before now
// and an outstanding balance remains. An unparseable return date is never
// late.
func IsLate(c domain.Customer, now time.Time) bool {
	ret, err := dateparse.ParseAny(c.ReturnDate)
	if err != nil {
		return false
	}
	return ret.Before(now) && OutstandingBalance(c) > 0
}

// NotifyEligible reports whether the customer's outstanding balance exceeds
// the reminder threshold.
func NotifyEligible(c domain.Customer) bool {
	return OutstandingBalance(c) > NotifyThreshold
}

// TotalEarnings sums paidAmount over all customers.
func TotalEarnings(customers []domain.Customer) float64 {
	var total float64
	for _, c := range customers {
		total += c.PaidAmount
	}
	return total
}

// LateCustomers filters the snapshot down to late customers.
func LateCustomers(customers []domain.Customer, now time.Time) []domain.Customer {
	out := make([]domain.Customer, 0)
	for _, c := range customers {
		if IsLate(c, now) {
			out = append(out, c)
		}
	}
	return out
}

// NotifyList filters the snapshot down to reminder-eligible customers.
func NotifyList(customers []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, 0)
	for _, c := range customers {
		if NotifyEligible(c) {
			out = append(out, c)
		}
	}
	return out
}

// Dashboard is the stat block on the admin landing page.
type Dashboard struct {
	TotalCars      int     `json:"total_cars"`
	TotalCustomers int     `json:"total_customers"`
	TotalBookings  int     `json:"total_bookings"`
	LateCustomers  int     `json:"late_customers"`
	TotalEarnings  float64 `json:"total_earnings"`
}

// BuildDashboard computes the dashboard counters from current snapshots.
func BuildDashboard(cars []domain.Car, customers []domain.Customer, bookings []domain.Booking, now time.Time) Dashboard {
	return Dashboard{
		TotalCars:      len(cars),
		TotalCustomers: len(customers),
		TotalBookings:  len(bookings),
		LateCustomers:  len(LateCustomers(customers, now)),
		TotalEarnings:  TotalEarnings(customers),
	}
}
