package models

import "time"

// TransactionRecord represents a single payment-ledger entry. Records are
// owned by the external ledger and read-only here. Amount is kept as the raw
// decimal text the ledger stores; parsing happens during normalization so a
// bad value can be counted instead of failing the whole snapshot.
type TransactionRecord struct {
	CustomerID    string    `json:"customer_id"`
	Amount        string    `json:"amount"`
	Paid          bool      `json:"paid"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	CustomerEmail string    `json:"customer_email"`
	CustomerName  string    `json:"customer_name"`
	PlanName      string    `json:"plan_name"`
}

// SubscriptionRecord represents the current subscription state for a customer
type SubscriptionRecord struct {
	UserID string `json:"user_id"`
	Plan   string `json:"plan"`
	Status string `json:"status"`
}
