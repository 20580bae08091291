package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func intPtr(v int) *int {
	return &v
}

func offer(store uuid.UUID, price string) models.StoreOffer {
	return models.StoreOffer{
		ID:      uuid.New(),
		StoreID: store,
		Price:   dec(price),
	}
}

func bulkOffer(store uuid.UUID, price, bulkPrice string, bulkMin int) models.StoreOffer {
	o := offer(store, price)
	o.BulkPrice = decPtr(bulkPrice)
	o.BulkMinQuantity = intPtr(bulkMin)
	return o
}

func TestEffectiveUnitPriceBulkThreshold(t *testing.T) {
	o := bulkOffer(uuid.New(), "10.00", "8.00", 5)

	if got := EffectiveUnitPrice(o, 4); !got.Equal(dec("10.00")) {
		t.Fatalf("below threshold: expected 10.00 got %s", got)
	}
	if got := EffectiveUnitPrice(o, 5); !got.Equal(dec("8.00")) {
		t.Fatalf("at threshold: expected 8.00 got %s", got)
	}
	if got := EffectiveUnitPrice(o, 50); !got.Equal(dec("8.00")) {
		t.Fatalf("above threshold: expected 8.00 got %s", got)
	}
}

func TestEffectiveUnitPriceIgnoresOrphanBulkFields(t *testing.T) {
	noMin := offer(uuid.New(), "10.00")
	noMin.BulkPrice = decPtr("8.00")
	if got := EffectiveUnitPrice(noMin, 100); !got.Equal(dec("10.00")) {
		t.Fatalf("bulk price without threshold must not apply, got %s", got)
	}

	noPrice := offer(uuid.New(), "10.00")
	noPrice.BulkMinQuantity = intPtr(2)
	if got := EffectiveUnitPrice(noPrice, 100); !got.Equal(dec("10.00")) {
		t.Fatalf("threshold without bulk price must fall back to base, got %s", got)
	}
}

func TestSelectBestOfferEmptySet(t *testing.T) {
	best, price := SelectBestOffer(3, nil)
	if best != nil || price != nil {
		t.Fatalf("expected (nil, nil) for empty offer set, got (%v, %v)", best, price)
	}
}

func TestSelectBestOfferPicksMinimum(t *testing.T) {
	offers := []models.StoreOffer{
		offer(uuid.New(), "12.00"),
		offer(uuid.New(), "10.00"),
		offer(uuid.New(), "11.50"),
	}

	best, price := SelectBestOffer(1, offers)
	if best == nil || price == nil {
		t.Fatal("expected a winner")
	}
	if best.ID != offers[1].ID {
		t.Fatalf("expected cheapest offer to win, got store %s", best.StoreID)
	}
	if !price.Equal(dec("10.00")) {
		t.Fatalf("expected effective price 10.00 got %s", price)
	}

	for _, o := range offers {
		if EffectiveUnitPrice(o, 1).LessThan(*price) {
			t.Fatalf("offer %s undercuts the declared winner", o.ID)
		}
	}
}

func TestSelectBestOfferFirstEncounteredTieBreak(t *testing.T) {
	store1 := uuid.New()
	store2 := uuid.New()
	store3 := uuid.New()
	offers := []models.StoreOffer{
		offer(store1, "12.00"),
		offer(store2, "10.00"),
		offer(store3, "10.00"),
	}

	best, _ := SelectBestOffer(2, offers)
	if best == nil || best.StoreID != store2 {
		t.Fatalf("expected first-encountered store2 to win the tie, got %v", best)
	}
}

func TestSelectBestOfferBulkChangesWinner(t *testing.T) {
	cornerShop := uuid.New()
	wholesaler := uuid.New()
	offers := []models.StoreOffer{
		offer(cornerShop, "9.00"),
		bulkOffer(wholesaler, "10.00", "8.00", 5),
	}

	best, price := SelectBestOffer(4, offers)
	if best.StoreID != cornerShop || !price.Equal(dec("9.00")) {
		t.Fatalf("below bulk threshold expected corner shop at 9.00, got %s at %s", best.StoreID, price)
	}

	best, price = SelectBestOffer(5, offers)
	if best.StoreID != wholesaler || !price.Equal(dec("8.00")) {
		t.Fatalf("at bulk threshold expected wholesaler at 8.00, got %s at %s", best.StoreID, price)
	}
}

func TestResolveLineSnapshotsWinner(t *testing.T) {
	winner := bulkOffer(uuid.New(), "10.00", "8.00", 5)
	offers := []models.StoreOffer{offer(uuid.New(), "11.00"), winner}

	res := ResolveLine(6, offers)
	if !res.Resolved() {
		t.Fatal("expected a resolution")
	}
	if *res.OfferID != winner.ID || *res.StoreID != winner.StoreID {
		t.Fatalf("expected winner snapshot, got offer %s", res.OfferID)
	}
	if !res.UnitPrice.Equal(dec("8.00")) {
		t.Fatalf("expected bulk price snapshot 8.00 got %s", res.UnitPrice)
	}

	empty := ResolveLine(6, nil)
	if empty.Resolved() {
		t.Fatal("expected unresolved result for empty offer set")
	}
}

func TestListAvailableStoresSortedAndConsistentWithSelection(t *testing.T) {
	offers := []models.StoreOffer{
		{
			ID:      uuid.New(),
			StoreID: uuid.New(),
			Price:   dec("12.00"),
			Store:   &models.User{Username: "mercado-central"},
		},
		bulkOffer(uuid.New(), "11.00", "9.50", 3),
		offer(uuid.New(), "10.00"),
	}

	quotes := ListAvailableStores(3, offers)
	if len(quotes) != len(offers) {
		t.Fatalf("expected %d quotes got %d", len(offers), len(quotes))
	}
	for i := 1; i < len(quotes); i++ {
		if quotes[i].FinalPrice.LessThan(quotes[i-1].FinalPrice) {
			t.Fatalf("quotes not sorted ascending at index %d", i)
		}
	}

	best, price := SelectBestOffer(3, offers)
	if quotes[0].StoreID != best.StoreID {
		t.Fatalf("head of quote list (%s) must match SelectBestOffer (%s)", quotes[0].StoreID, best.StoreID)
	}
	if !quotes[0].FinalPrice.Equal(*price) {
		t.Fatalf("head quote price %s must match selection price %s", quotes[0].FinalPrice, price)
	}
}

func TestListAvailableStoresStableOnEqualPrices(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	offers := []models.StoreOffer{
		offer(first, "10.00"),
		offer(second, "10.00"),
	}

	quotes := ListAvailableStores(1, offers)
	if quotes[0].StoreID != first || quotes[1].StoreID != second {
		t.Fatal("equal-priced quotes must keep insertion order")
	}

	best, _ := SelectBestOffer(1, offers)
	if quotes[0].StoreID != best.StoreID {
		t.Fatal("tie-break must agree between quotes and selection")
	}
}

func TestListAvailableStoresCarriesLoyaltyPrice(t *testing.T) {
	o := offer(uuid.New(), "10.00")
	o.LoyaltyPrice = decPtr("7.00")

	quotes := ListAvailableStores(10, []models.StoreOffer{o})
	if quotes[0].LoyaltyPrice == nil || !quotes[0].LoyaltyPrice.Equal(dec("7.00")) {
		t.Fatal("loyalty price must be surfaced in the quote")
	}
	if !quotes[0].FinalPrice.Equal(dec("10.00")) {
		t.Fatal("loyalty price must not affect the effective price")
	}
}
