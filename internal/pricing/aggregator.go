package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResolvedLine is the aggregation view of a cart line: the resolved store and
// unit price snapshot plus the requested quantity. Lines with no winning offer
// have Resolved=false and are excluded from per-store totals (never treated as
// zero-cost fulfillment).
type ResolvedLine struct {
	Quantity  int
	StoreID   uuid.UUID
	StoreName string
	UnitPrice decimal.Decimal
	Resolved  bool
}

// BestStoreResult names the single store that fulfills the cart most cheaply.
type BestStoreResult struct {
	StoreID    uuid.UUID       `json:"id"`
	StoreName  string          `json:"username"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemsCount int             `json:"items_count"`
}

type storeTally struct {
	name  string
	total decimal.Decimal
	count int
}

// BestStoreForCart groups resolved lines by store, totals each store's
// lines, and picks the winner on (total ascending, line count descending):
// at equal cost the store able to fulfill more of the distinct lines wins.
// A tie on both keys keeps the store encountered first in line order. Returns
// nil when the cart is empty or no line resolved; the caller surfaces that as
// not-found rather than an error.
func BestStoreForCart(lines []ResolvedLine) *BestStoreResult {
	tallies := map[uuid.UUID]*storeTally{}
	order := make([]uuid.UUID, 0, len(lines))

	for _, line := range lines {
		if !line.Resolved {
			continue
		}
		tally, ok := tallies[line.StoreID]
		if !ok {
			tally = &storeTally{name: line.StoreName, total: decimal.Zero}
			tallies[line.StoreID] = tally
			order = append(order, line.StoreID)
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		tally.total = tally.total.Add(lineTotal)
		tally.count++
	}

	if len(order) == 0 {
		return nil
	}

	bestID := order[0]
	best := tallies[bestID]
	for _, id := range order[1:] {
		candidate := tallies[id]
		if candidate.total.LessThan(best.total) ||
			(candidate.total.Equal(best.total) && candidate.count > best.count) {
			bestID = id
			best = candidate
		}
	}

	return &BestStoreResult{
		StoreID:    bestID,
		StoreName:  best.name,
		TotalPrice: best.total,
		ItemsCount: best.count,
	}
}

// CartTotal sums effectivePrice*quantity over all resolved lines. Unresolved
// lines contribute zero and are counted separately so the caller can warn the
// client that some items currently have no offer.
func CartTotal(lines []ResolvedLine) (decimal.Decimal, int) {
	total := decimal.Zero
	unresolved := 0
	for _, line := range lines {
		if !line.Resolved {
			unresolved++
			continue
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, unresolved
}
