package accounting

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/shopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultAgingBoundaries yields the 0-30, 31-60, 61-90 and 90+ windows.
var DefaultAgingBoundaries = []int{30, 60, 90}

// ParseBoundaries parses a comma separated list such as "30,60,90".
func ParseBoundaries(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("aging boundaries cannot be empty")
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid aging boundary %q: %w", p, err)
		}
		out = append(out, n)
	}
	if err := ValidateBoundaries(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateBoundaries requires at least one positive, strictly increasing boundary.
func ValidateBoundaries(boundaries []int) error {
	if len(boundaries) == 0 {
		return fmt.Errorf("at least one aging boundary is required")
	}
	prev := 0
	for i, b := range boundaries {
		if b <= prev {
			if i == 0 {
				return fmt.Errorf("aging boundaries must be positive, got %d", b)
			}
			return fmt.Errorf("aging boundaries must be strictly increasing, got %d after %d", b, prev)
		}
		prev = b
	}
	return nil
}

// AgingBuckets returns the empty bucket layout for the given boundaries:
// [0,b0], [b0+1,b1], ..., (bn, inf).
func AgingBuckets(boundaries []int) []domain.AgingBucket {
	buckets := make([]domain.AgingBucket, 0, len(boundaries)+1)
	from := 0
	for _, b := range boundaries {
		buckets = append(buckets, domain.AgingBucket{
			Label:   fmt.Sprintf("days_%d_%d", from, b),
			FromDay: from,
			ToDay:   b,
			Amount:  decimal.Zero,
		})
		from = b + 1
	}
	last := boundaries[len(boundaries)-1]
	buckets = append(buckets, domain.AgingBucket{
		Label:   fmt.Sprintf("days_over_%d", last),
		FromDay: last + 1,
		ToDay:   -1,
		Amount:  decimal.Zero,
	})
	return buckets
}

// AgeInDays counts whole calendar days (UTC) from txDate to now. Future dates age 0.
func AgeInDays(txDate, now time.Time) int {
	from := truncateDay(txDate)
	to := truncateDay(now)
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// BucketIndex returns the index of the bucket an age falls into.
func BucketIndex(ageDays int, boundaries []int) int {
	for i, b := range boundaries {
		if ageDays <= b {
			return i
		}
	}
	return len(boundaries)
}

// BuildAgingReport buckets the debit entries of every customer whose balance is
// positive. Rows are ordered by current balance, largest first.
func BuildAgingReport(balances []domain.CustomerBalance, debits []domain.LedgerTransaction, boundaries []int, now time.Time) []domain.AgingRow {
	byLedger := make(map[string][]domain.LedgerTransaction)
	for _, e := range debits {
		if e.TransactionType != domain.Debit {
			continue
		}
		byLedger[e.LedgerID] = append(byLedger[e.LedgerID], e)
	}

	rows := make([]domain.AgingRow, 0, len(balances))
	for _, b := range balances {
		if !b.CurrentBalance.IsPositive() {
			continue
		}
		buckets := AgingBuckets(boundaries)
		for _, e := range byLedger[b.LedgerID] {
			idx := BucketIndex(AgeInDays(e.TransactionDate, now), boundaries)
			buckets[idx].Amount = buckets[idx].Amount.Add(e.Amount)
		}
		rows = append(rows, domain.AgingRow{
			CustomerID:     b.CustomerID,
			CustomerName:   b.CustomerName,
			CurrentBalance: b.CurrentBalance,
			Buckets:        buckets,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].CurrentBalance.Cmp(rows[j].CurrentBalance); c != 0 {
			return c > 0
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows
}

// PositiveLedgerIDs returns the ledgers that can appear in an aging report.
func PositiveLedgerIDs(balances []domain.CustomerBalance) []string {
	ids := make([]string, 0, len(balances))
	for _, b := range balances {
		if b.CurrentBalance.IsPositive() {
			ids = append(ids, b.LedgerID)
		}
	}
	return ids
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
