package analytics

import (
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/revenue-service/internal/models"
)

// LedgerEntry is a cleaned ledger record: attributed to a customer, amount parsed
type LedgerEntry struct {
	CustomerID string
	Amount     float64
	Paid       bool
	Status     string
	CreatedAt  time.Time
}

// CustomerAggregate holds everything derived per customer from the ledger
type CustomerAggregate struct {
	CustomerID         string
	Email              string
	Name               string
	Plan               string
	SubscriptionStatus string
	LastPayment        time.Time // most recent settled or attempted transaction
	TotalPaid          float64
	PaymentCount       int
	FailedCount        int

	planSetAt time.Time
}

// NormalizedLedger is the uniform in-memory representation the analytics
// passes run against. Customers keeps ledger-encounter order, which the risk
// ranking relies on for stable ties.
type NormalizedLedger struct {
	Entries   []LedgerEntry
	Customers []*CustomerAggregate
	Malformed int
}

// Statuses that mean a transaction is still in flight rather than failed.
var pendingStatuses = map[string]bool{
	"open":  true,
	"draft": true,
}

// NormalizeLedger reshapes the raw transaction and subscription records into
// per-customer aggregates plus a cleaned entry list. Records without a
// customer are dropped and counted; an unparsable amount contributes 0 but
// the record still counts toward payment and failure tallies.
func NormalizeLedger(txs []models.TransactionRecord, subs []models.SubscriptionRecord) *NormalizedLedger {
	ledger := &NormalizedLedger{}
	byID := make(map[string]*CustomerAggregate)

	for _, t := range txs {
		if t.CustomerID == "" {
			ledger.Malformed++
			continue
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(t.Amount), 64)
		if err != nil {
			amount = 0
			ledger.Malformed++
		}

		ledger.Entries = append(ledger.Entries, LedgerEntry{
			CustomerID: t.CustomerID,
			Amount:     amount,
			Paid:       t.Paid,
			Status:     t.Status,
			CreatedAt:  t.CreatedAt,
		})

		agg, ok := byID[t.CustomerID]
		if !ok {
			agg = &CustomerAggregate{CustomerID: t.CustomerID}
			byID[t.CustomerID] = agg
			ledger.Customers = append(ledger.Customers, agg)
		}

		if t.CustomerEmail != "" {
			agg.Email = t.CustomerEmail
		}
		if t.CustomerName != "" {
			agg.Name = t.CustomerName
		}
		// Most recent plan wins; identical timestamps resolve to the
		// later ledger position.
		if t.PlanName != "" && !t.CreatedAt.Before(agg.planSetAt) {
			agg.Plan = t.PlanName
			agg.planSetAt = t.CreatedAt
		}
		if t.CreatedAt.After(agg.LastPayment) {
			agg.LastPayment = t.CreatedAt
		}

		if t.Paid {
			agg.TotalPaid += amount
			agg.PaymentCount++
		} else if !pendingStatuses[t.Status] {
			agg.FailedCount++
		}
	}

	for _, sub := range subs {
		agg, ok := byID[sub.UserID]
		if !ok {
			continue
		}
		agg.SubscriptionStatus = sub.Status
		if agg.Plan == "" {
			agg.Plan = sub.Plan
		}
	}

	return ledger
}
