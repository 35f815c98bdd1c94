package domain

// Booking statuses. Only "new" is ever produced by the booking form;
// confirmed/completed exist as transition targets for back-office workflows.
const (
	BookingStatusNew       = "new"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
)

// Booking is a reservation request submitted from the public booking form.
// CarName is a point-in-time copy of the car's bilingual name taken when the
// booking is created; it is deliberately not refreshed on later car edits.
type Booking struct {
	ID              string        `json:"id"`
	CarID           int64         `json:"carId"`
	CarName         LocalizedText `json:"carName"`
	FullName        string        `json:"fullName"`
	PhoneNumber     string        `json:"phoneNumber"`
	Email           string        `json:"email,omitempty"`
	IDNumber        string        `json:"idNumber,omitempty"`
	PickupLocation  string        `json:"pickupLocation"`
	PickupTime      string        `json:"pickupTime"`
	DropoffLocation string        `json:"dropoffLocation"`
	DropoffTime     string        `json:"dropoffTime"`
	CurrentLocation string        `json:"currentLocation"`
	Notes           string        `json:"notes,omitempty"`
	Status          string        `json:"status"`
	CreatedAt       string        `json:"createdAt"`
}

// BookingDraft is the customer-supplied part of a booking, before the store
// assigns id, status, carName and createdAt.
type BookingDraft struct {
	CarID           int64  `json:"carId" validate:"required"`
	FullName        string `json:"fullName" validate:"required,min=2,max=200"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,min=5,max=30"`
	Email           string `json:"email" validate:"omitempty,email"`
	IDNumber        string `json:"idNumber" validate:"omitempty,max=50"`
	PickupLocation  string `json:"pickupLocation" validate:"required"`
	PickupTime      string `json:"pickupTime" validate:"required"`
	DropoffLocation string `json:"dropoffLocation" validate:"required"`
	DropoffTime     string `json:"dropoffTime" validate:"required"`
	CurrentLocation string `json:"currentLocation" validate:"required"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}
