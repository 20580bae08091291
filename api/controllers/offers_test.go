package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/geoshop/geoshop-backend/internal/offers"
)

func newRouteParamRequest(method, target, key, value string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type fakeOffersService struct {
	offers.Service

	updated *offers.UpdateOfferInput
}

func (f *fakeOffersService) UpdateOffer(_ context.Context, _, _ uuid.UUID, input offers.UpdateOfferInput) (*offers.OfferDTO, error) {
	f.updated = &input
	return &offers.OfferDTO{}, nil
}

func updateOfferVia(t *testing.T, svc *fakeOffersService, body string) {
	t.Helper()

	handler := StoreOfferUpdate(svc, nil)
	req := newRouteParamRequest(http.MethodPatch, "/offers/"+uuid.NewString(), "offerId", uuid.NewString(), strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.updated == nil {
		t.Fatal("expected service to receive update input")
	}
}

func TestStoreOfferUpdateNullClearsBulkPricing(t *testing.T) {
	svc := &fakeOffersService{}
	updateOfferVia(t, svc, `{"bulk_price":null,"loyalty_price":null}`)

	if !svc.updated.ClearBulk || !svc.updated.ClearLoyalty {
		t.Fatalf("expected nulls to clear bulk and loyalty pricing, got %+v", svc.updated)
	}
	if svc.updated.BulkPrice != nil || svc.updated.LoyaltyPrice != nil {
		t.Fatalf("expected no replacement prices, got %+v", svc.updated)
	}
}

func TestStoreOfferUpdateAbsentFieldsLeavePricingAlone(t *testing.T) {
	svc := &fakeOffersService{}
	updateOfferVia(t, svc, `{"price":"10.50"}`)

	if svc.updated.ClearBulk || svc.updated.ClearLoyalty {
		t.Fatalf("expected absent fields to leave pricing alone, got %+v", svc.updated)
	}
	if svc.updated.Price == nil || svc.updated.Price.String() != "10.5" {
		t.Fatalf("unexpected price %v", svc.updated.Price)
	}
}

func TestStoreOfferUpdateReplacesBulkPrice(t *testing.T) {
	svc := &fakeOffersService{}
	updateOfferVia(t, svc, `{"bulk_price":"8.90","bulk_min_quantity":6}`)

	if svc.updated.ClearBulk {
		t.Fatalf("expected replacement, not clear: %+v", svc.updated)
	}
	if svc.updated.BulkPrice == nil || svc.updated.BulkPrice.String() != "8.9" {
		t.Fatalf("unexpected bulk price %v", svc.updated.BulkPrice)
	}
	if svc.updated.BulkMinQuantity == nil || *svc.updated.BulkMinQuantity != 6 {
		t.Fatalf("unexpected bulk min quantity %v", svc.updated.BulkMinQuantity)
	}
}
