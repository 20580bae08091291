package pricing

import (
	"testing"

	"github.com/google/uuid"
)

func resolved(store uuid.UUID, name string, unitPrice string, qty int) ResolvedLine {
	return ResolvedLine{
		Quantity:  qty,
		StoreID:   store,
		StoreName: name,
		UnitPrice: dec(unitPrice),
		Resolved:  true,
	}
}

func TestBestStoreForCartEmpty(t *testing.T) {
	if got := BestStoreForCart(nil); got != nil {
		t.Fatalf("expected nil for empty cart, got %+v", got)
	}
}

func TestBestStoreForCartAllUnresolved(t *testing.T) {
	lines := []ResolvedLine{
		{Quantity: 2},
		{Quantity: 1},
	}
	if got := BestStoreForCart(lines); got != nil {
		t.Fatalf("expected nil when no line resolved, got %+v", got)
	}
}

func TestBestStoreForCartPicksCheapestTotal(t *testing.T) {
	cheap := uuid.New()
	pricey := uuid.New()
	lines := []ResolvedLine{
		resolved(cheap, "padaria-sul", "5.00", 2),  // 10.00
		resolved(pricey, "empório-norte", "8.00", 2), // 16.00
	}

	got := BestStoreForCart(lines)
	if got == nil || got.StoreID != cheap {
		t.Fatalf("expected cheapest store to win, got %+v", got)
	}
	if !got.TotalPrice.Equal(dec("10.00")) || got.ItemsCount != 1 {
		t.Fatalf("unexpected tally %+v", got)
	}
	if got.StoreName != "padaria-sul" {
		t.Fatalf("expected store name carried through, got %q", got.StoreName)
	}
}

func TestBestStoreForCartTieBreaksOnItemCount(t *testing.T) {
	// Both stores total R$50.00; store B fulfills 3 of 3 lines, store A only 2.
	storeA := uuid.New()
	storeB := uuid.New()
	lines := []ResolvedLine{
		resolved(storeA, "store-a", "30.00", 1),
		resolved(storeA, "store-a", "20.00", 1),
		resolved(storeB, "store-b", "10.00", 2),
		resolved(storeB, "store-b", "10.00", 1),
		resolved(storeB, "store-b", "20.00", 1),
	}

	got := BestStoreForCart(lines)
	if got == nil || got.StoreID != storeB {
		t.Fatalf("expected store B (more lines at equal total), got %+v", got)
	}
	if got.ItemsCount != 3 {
		t.Fatalf("expected 3 fulfilled lines, got %d", got.ItemsCount)
	}
	if !got.TotalPrice.Equal(dec("50.00")) {
		t.Fatalf("expected total 50.00, got %s", got.TotalPrice)
	}
}

func TestBestStoreForCartFullTieKeepsFirstEncountered(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	lines := []ResolvedLine{
		resolved(first, "first", "10.00", 1),
		resolved(second, "second", "10.00", 1),
	}

	got := BestStoreForCart(lines)
	if got == nil || got.StoreID != first {
		t.Fatalf("expected first-encountered store on full tie, got %+v", got)
	}
}

func TestBestStoreForCartSkipsUnresolvedLines(t *testing.T) {
	store := uuid.New()
	lines := []ResolvedLine{
		resolved(store, "armazém", "4.50", 2),
		{Quantity: 3}, // no active offer for this item
	}

	got := BestStoreForCart(lines)
	if got == nil || got.StoreID != store {
		t.Fatalf("expected resolved store to win, got %+v", got)
	}
	if got.ItemsCount != 1 {
		t.Fatalf("unresolved line must not count, got %d", got.ItemsCount)
	}
	if !got.TotalPrice.Equal(dec("9.00")) {
		t.Fatalf("expected 9.00, got %s", got.TotalPrice)
	}
}

func TestCartTotalFlagsUnresolvedLines(t *testing.T) {
	store := uuid.New()
	lines := []ResolvedLine{
		resolved(store, "armazém", "3.00", 3), // 9.00
		resolved(store, "armazém", "2.50", 2), // 5.00
		{Quantity: 4},
	}

	total, unresolved := CartTotal(lines)
	if !total.Equal(dec("14.00")) {
		t.Fatalf("expected total 14.00, got %s", total)
	}
	if unresolved != 1 {
		t.Fatalf("expected 1 unresolved line flagged, got %d", unresolved)
	}
}

func TestCartTotalEmpty(t *testing.T) {
	total, unresolved := CartTotal(nil)
	if !total.IsZero() || unresolved != 0 {
		t.Fatalf("expected zero total for empty cart, got %s/%d", total, unresolved)
	}
}
