package domain

import "time"

// OrderStatusPending is the status assigned to orders whose draft does
// not specify one.
const OrderStatusPending = "pending"

// Order is an immutable record appended to the order ledger. ID is the
// creation timestamp in milliseconds.
type Order struct {
	ID            int64      `json:"id"`
	Items         []CartLine `json:"items"`
	TotalAmount   int64      `json:"totalAmount"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}
