package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/revenue-service/internal/models"
)

// ErrLedgerUnavailable means the ledger snapshot could not be read. The
// engine never computes against a partial snapshot.
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// Repository provides read access to the payment ledger
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FetchTransactions returns the full historical ledger, ascending by creation time
func (r *Repository) FetchTransactions(ctx context.Context) ([]models.TransactionRecord, error) {
	query := `
		SELECT customer_id, amount, paid, status, created_at,
		       customer_email, customer_name, plan_name
		FROM billing.transactions
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query transactions: %v", ErrLedgerUnavailable, err)
	}
	defer rows.Close()

	var txs []models.TransactionRecord
	for rows.Next() {
		var t models.TransactionRecord
		var customerID, amount, status, email, name, plan sql.NullString
		if err := rows.Scan(&customerID, &amount, &t.Paid, &status, &t.CreatedAt, &email, &name, &plan); err != nil {
			return nil, fmt.Errorf("%w: failed to scan transaction: %v", ErrLedgerUnavailable, err)
		}
		t.CustomerID = customerID.String
		t.Amount = amount.String
		t.Status = status.String
		t.CustomerEmail = email.String
		t.CustomerName = name.String
		t.PlanName = plan.String
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read transactions: %v", ErrLedgerUnavailable, err)
	}
	return txs, nil
}

// FetchSubscriptions returns the current subscription state for all customers
func (r *Repository) FetchSubscriptions(ctx context.Context) ([]models.SubscriptionRecord, error) {
	query := `
		SELECT user_id, plan, status
		FROM billing.subscriptions`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query subscriptions: %v", ErrLedgerUnavailable, err)
	}
	defer rows.Close()

	var subs []models.SubscriptionRecord
	for rows.Next() {
		var s models.SubscriptionRecord
		var plan, status sql.NullString
		if err := rows.Scan(&s.UserID, &plan, &status); err != nil {
			return nil, fmt.Errorf("%w: failed to scan subscription: %v", ErrLedgerUnavailable, err)
		}
		s.Plan = plan.String
		s.Status = status.String
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read subscriptions: %v", ErrLedgerUnavailable, err)
	}
	return subs, nil
}
