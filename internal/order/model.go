package order

import (
	"time"

	"github.com/tracketo/storefront/internal/cart"
)

// Status of an order. The set matches the storefront's fulfilment steps; any
// known status may follow any other (transitions are admin-driven and
// deliberately unrestricted).
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirm    Status = "CONFIRM"
	StatusProcessing Status = "PROCESSING"
	StatusPickup     Status = "PICKUP"
	StatusOnTheWay   Status = "ON_THE_WAY"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirm, StatusProcessing, StatusPickup,
		StatusOnTheWay, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// GuestUserID marks orders placed without an authenticated session.
const GuestUserID = "guest"

// CustomerDetails is the shipping contact captured at checkout.
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is a purchase record. Items are copies of the cart at checkout time
// and the total is frozen at creation; only the status changes afterwards.
// VendorID is the vendor of the first item — multi-vendor carts are not
// split into per-vendor orders.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	VendorID        string          `json:"vendorId"`
	Items           []cart.Item     `json:"items"`
	Total           float64         `json:"total"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
}
