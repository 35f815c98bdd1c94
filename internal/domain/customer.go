package domain

// Customer is a rental contract record managed from the admin back office.
// RentalDate/ReturnDate are stored exactly as entered (date strings); the
// remaining balance is always derived, never stored.
type Customer struct {
	ID          int64   `json:"id" form:"id"`
	Name        string  `json:"name" form:"name"`
	Phone       string  `json:"phone" form:"phone"`
	CarID       int64   `json:"carId" form:"carId"`
	RentalDate  string  `json:"rentalDate" form:"rentalDate"`
	ReturnDate  string  `json:"returnDate" form:"returnDate"`
	TotalAmount float64 `json:"totalAmount" form:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount" form:"paidAmount"`
}
