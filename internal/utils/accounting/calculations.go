package accounting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/steadybooks/backoffice/internal/core/domain"
)

// SignedAmount applies the correct sign to a record amount based on the
// account's polarity. A record increases the balance when its direction
// matches the account type's increase action, otherwise it decreases it.
// This is used in both services and repositories to keep the sign convention
// in one place.
func SignedAmount(rec domain.TransactionRecord, increaseActionIsDebit bool) decimal.Decimal {
	if rec.IsDebit == increaseActionIsDebit {
		return rec.Amount
	}
	return rec.Amount.Neg()
}

// ValidateTransactionBalance checks that a set of records forms a committable
// transaction: at least two records, every amount positive, and the debit sum
// exactly equal to the credit sum at 2 decimal places.
func ValidateTransactionBalance(records []domain.TransactionRecord) error {
	if len(records) < 2 {
		return fmt.Errorf("transaction must have at least two records")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, rec := range records {
		if rec.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("record amount must be positive for account %s", rec.GLAccountID)
		}
		if rec.IsDebit {
			debits = debits.Add(rec.Amount.Round(2))
		} else {
			credits = credits.Add(rec.Amount.Round(2))
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("unbalanced transaction: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}

// FinancialCutoff returns the most recent lock-day boundary strictly before
// the reference time. Financial entities may only be dated after this cutoff.
// The lock day is clamped to the length of the month (a lock day of 31
// resolves to Feb 28/29 in February).
func FinancialCutoff(ref time.Time, lockDayOfMonth int) time.Time {
	year, month, day := ref.Date()
	if day <= lockDayOfMonth {
		// Most recent lock day falls in the previous month.
		month--
		if month < time.January {
			month = time.December
			year--
		}
	}
	clamped := lockDayOfMonth
	if last := daysInMonth(year, month); clamped > last {
		clamped = last
	}
	return time.Date(year, month, clamped, 0, 0, 0, 0, ref.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EntityTotals aggregates the lines of a financial entity: net amounts grouped
// per distinct GL account, the total tax, and the gross total. Grouping here
// is what guarantees each account receives exactly one transaction record per
// approval instead of one per line item.
type EntityTotals struct {
	NetByAccount map[string]decimal.Decimal
	TaxTotal     decimal.Decimal
	GrossTotal   decimal.Decimal
}

// ComputeEntityTotals sums item subtotals and taxes using the supplied tax
// rate catalog. It fails if an item references an unknown tax rate.
func ComputeEntityTotals(items []domain.Item, taxRates map[string]domain.TaxRate) (EntityTotals, error) {
	totals := EntityTotals{
		NetByAccount: make(map[string]decimal.Decimal, len(items)),
		TaxTotal:     decimal.Zero,
		GrossTotal:   decimal.Zero,
	}

	for _, item := range items {
		rate, ok := taxRates[item.TaxRateID]
		if !ok {
			return EntityTotals{}, fmt.Errorf("tax rate %s not found for item %s", item.TaxRateID, item.ItemID)
		}
		net := item.Subtotal()
		tax := item.Tax(rate.Rate)

		totals.NetByAccount[item.GLAccountID] = totals.NetByAccount[item.GLAccountID].Add(net)
		totals.TaxTotal = totals.TaxTotal.Add(tax)
		totals.GrossTotal = totals.GrossTotal.Add(net).Add(tax)
	}
	return totals, nil
}
