package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/geoshop/geoshop-backend/pkg/db/models"
	"github.com/geoshop/geoshop-backend/pkg/enums"
	pkgerrors "github.com/geoshop/geoshop-backend/pkg/errors"
)

type fakeItemRepo struct {
	items   map[uuid.UUID]*models.CatalogItem
	created []*models.CatalogItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]*models.CatalogItem{}}
}

func (f *fakeItemRepo) CreateItem(_ context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items[item.ID] = item
	f.created = append(f.created, item)
	return item, nil
}

func (f *fakeItemRepo) UpdateItem(_ context.Context, item *models.CatalogItem) (*models.CatalogItem, error) {
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeItemRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) ListItems(_ context.Context, _ ListFilters) ([]models.CatalogItem, error) {
	out := make([]models.CatalogItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func validCreateInput() CreateItemInput {
	return CreateItemInput{
		Name:        "Arroz Branco 5kg",
		PackageType: enums.PackageTypePacote,
		WeightUnit:  enums.WeightUnitKilogram,
		Quantity:    decimal.NewFromInt(5),
	}
}

func TestCreateItemValidation(t *testing.T) {
	repo := newFakeItemRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("emptyName", func(t *testing.T) {
		input := validCreateInput()
		input.Name = "   "
		_, err := svc.CreateItem(ctx, adminID, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("badPackageType", func(t *testing.T) {
		input := validCreateInput()
		input.PackageType = enums.PackageType("barrel")
		_, err := svc.CreateItem(ctx, adminID, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("zeroQuantity", func(t *testing.T) {
		input := validCreateInput()
		input.Quantity = decimal.Zero
		_, err := svc.CreateItem(ctx, adminID, input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		dto, err := svc.CreateItem(ctx, adminID, validCreateInput())
		if err != nil {
			t.Fatalf("create item: %v", err)
		}
		if dto.Name != "Arroz Branco 5kg" {
			t.Fatalf("unexpected name %q", dto.Name)
		}
		if len(repo.created) != 1 || repo.created[0].AdminID != adminID {
			t.Fatal("expected item persisted with admin id")
		}
	})
}

func TestUpdateItemPartial(t *testing.T) {
	repo := newFakeItemRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, uuid.New(), validCreateInput())
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	newName := "  Arroz Integral 5kg "
	updated, err := svc.UpdateItem(ctx, created.ID, UpdateItemInput{Name: &newName})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Name != "Arroz Integral 5kg" {
		t.Fatalf("expected trimmed name, got %q", updated.Name)
	}
	if updated.PackageType != enums.PackageTypePacote {
		t.Fatal("untouched fields must survive the update")
	}
}

func TestGetItemNotFound(t *testing.T) {
	svc, _ := NewService(newFakeItemRepo())
	_, err := svc.GetItem(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	svc, _ := NewService(newFakeItemRepo())
	err := svc.DeleteItem(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
