package photos

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/ssh-randy/photosynthesis/internal/catalog"
	"github.com/ssh-randy/photosynthesis/pkg/db/models"
	"github.com/ssh-randy/photosynthesis/pkg/enums"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
)

type stubRepository struct {
	records map[uint]*models.Photo

	nextID      uint
	createErr   error
	findErr     error
	listErr     error
	updateErr   error
	deleteErr   error
	scanErr     error
	updateCalls int
	scanCalls   int
}

func newStubRepository(records ...*models.Photo) *stubRepository {
	repo := &stubRepository{records: map[uint]*models.Photo{}, nextID: 1}
	for _, record := range records {
		repo.records[record.ID] = record
		if record.ID >= repo.nextID {
			repo.nextID = record.ID + 1
		}
	}
	return repo
}

func (s *stubRepository) Create(_ context.Context, photo *models.Photo) (*models.Photo, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	photo.ID = s.nextID
	s.nextID++
	s.records[photo.ID] = photo
	return photo, nil
}

func (s *stubRepository) FindByID(_ context.Context, id uint) (*models.Photo, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	record, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *stubRepository) ListByShop(_ context.Context, shopDomain string) ([]models.Photo, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var rows []models.Photo
	for _, record := range s.records {
		if record.ShopDomain == shopDomain {
			rows = append(rows, *record)
		}
	}
	return rows, nil
}

func (s *stubRepository) Update(_ context.Context, id uint, fields UpdateFields) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	record, ok := s.records[id]
	if !ok {
		return nil
	}
	record.Title = fields.Title
	record.ProductID = fields.ProductID
	record.VariantID = fields.VariantID
	record.Handle = fields.Handle
	record.Destination = fields.Destination
	return nil
}

func (s *stubRepository) Delete(_ context.Context, id uint) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.records, id)
	return nil
}

func (s *stubRepository) IncrementScans(_ context.Context, id uint) error {
	s.scanCalls++
	if s.scanErr != nil {
		return s.scanErr
	}
	if record, ok := s.records[id]; ok {
		record.Scans++
	}
	return nil
}

type stubAssembler struct {
	err   error
	calls int
}

func (s *stubAssembler) Assemble(_ context.Context, _ string, records []models.Photo) ([]View, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	views := make([]View, 0, len(records))
	for _, record := range records {
		views = append(views, viewFromRecord(record, catalog.Product{ID: record.ProductID, Title: "Stub product"}))
	}
	return views, nil
}

func validInput() Input {
	return Input{
		Title:       "Summer poster",
		ProductID:   "gid://shopify/Product/1",
		VariantID:   "gid://shopify/ProductVariant/11",
		Handle:      "summer-poster",
		Destination: enums.DestinationProduct,
	}
}

func newTestService(t *testing.T, repo *stubRepository, assembler *stubAssembler) Service {
	t.Helper()
	svc, err := NewService(repo, assembler)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateAssignsIDAndAssembles(t *testing.T) {
	repo := newStubRepository()
	assembler := &stubAssembler{}
	svc := newTestService(t, repo, assembler)

	view, err := svc.Create(context.Background(), "shop-a.myshopify.com", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if view.ShopDomain != "shop-a.myshopify.com" {
		t.Fatalf("unexpected shop domain %q", view.ShopDomain)
	}
	if view.Scans != 0 {
		t.Fatalf("expected zero scans, got %d", view.Scans)
	}
	if assembler.calls != 1 {
		t.Fatalf("expected one assemble call, got %d", assembler.calls)
	}
}

func TestServiceCreateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t, newStubRepository(), &stubAssembler{})

	input := validInput()
	input.Destination = enums.Destination("cart")
	_, err := svc.Create(context.Background(), "shop-a.myshopify.com", input)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateRejectsMissingFields(t *testing.T) {
	svc := newTestService(t, newStubRepository(), &stubAssembler{})

	_, err := svc.Create(context.Background(), "shop-a.myshopify.com", Input{Destination: enums.DestinationProduct})

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	for _, field := range []string{"title", "productId", "variantId", "handle"} {
		if _, present := details[field]; !present {
			t.Fatalf("expected detail for %q, got %v", field, details)
		}
	}
}

func TestServiceGetReturnsOwnedPhoto(t *testing.T) {
	repo := newStubRepository(&models.Photo{
		ID:          7,
		ShopDomain:  "shop-a.myshopify.com",
		Title:       "Summer poster",
		ProductID:   "gid://shopify/Product/1",
		VariantID:   "gid://shopify/ProductVariant/11",
		Handle:      "summer-poster",
		Destination: enums.DestinationProduct,
		Scans:       3,
	})
	svc := newTestService(t, repo, &stubAssembler{})

	view, err := svc.Get(context.Background(), "shop-a.myshopify.com", 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.ID != 7 || view.Scans != 3 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestServiceGetHidesForeignPhoto(t *testing.T) {
	repo := newStubRepository(&models.Photo{ID: 7, ShopDomain: "shop-a.myshopify.com"})
	svc := newTestService(t, repo, &stubAssembler{})

	_, missErr := svc.Get(context.Background(), "shop-a.myshopify.com", 99)
	_, foreignErr := svc.Get(context.Background(), "shop-b.myshopify.com", 7)

	for name, err := range map[string]error{"miss": missErr, "foreign": foreignErr} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("%s: expected not found, got %v", name, err)
		}
	}
	// Same message both ways, so existence can't be probed across shops.
	if pkgerrors.As(missErr).Message() != pkgerrors.As(foreignErr).Message() {
		t.Fatal("expected identical messages for miss and foreign lookup")
	}
}

func TestServiceListReturnsEmptySliceNotNil(t *testing.T) {
	svc := newTestService(t, newStubRepository(), &stubAssembler{})

	views, err := svc.List(context.Background(), "shop-a.myshopify.com")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if views == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(views) != 0 {
		t.Fatalf("expected no views, got %d", len(views))
	}
}

func TestServiceListScopedToShop(t *testing.T) {
	repo := newStubRepository(
		&models.Photo{ID: 1, ShopDomain: "shop-a.myshopify.com"},
		&models.Photo{ID: 2, ShopDomain: "shop-b.myshopify.com"},
		&models.Photo{ID: 3, ShopDomain: "shop-a.myshopify.com"},
	)
	svc := newTestService(t, repo, &stubAssembler{})

	views, err := svc.List(context.Background(), "shop-a.myshopify.com")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	for _, view := range views {
		if view.ShopDomain != "shop-a.myshopify.com" {
			t.Fatalf("foreign record leaked: %+v", view)
		}
	}
}

func TestServiceUpdateReplacesFields(t *testing.T) {
	repo := newStubRepository(&models.Photo{
		ID:          7,
		ShopDomain:  "shop-a.myshopify.com",
		Title:       "Old title",
		ProductID:   "gid://shopify/Product/1",
		VariantID:   "gid://shopify/ProductVariant/11",
		Handle:      "old-handle",
		Destination: enums.DestinationProduct,
		Scans:       5,
	})
	svc := newTestService(t, repo, &stubAssembler{})

	input := validInput()
	input.Title = "New title"
	input.Destination = enums.DestinationCheckout
	view, err := svc.Update(context.Background(), "shop-a.myshopify.com", 7, input)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.Title != "New title" || view.Destination != enums.DestinationCheckout {
		t.Fatalf("update not applied: %+v", view)
	}
	if view.Scans != 5 {
		t.Fatalf("scans must survive updates untouched, got %d", view.Scans)
	}
}

func TestServiceUpdateForeignPhotoIsNotFoundAndWritesNothing(t *testing.T) {
	repo := newStubRepository(&models.Photo{ID: 7, ShopDomain: "shop-a.myshopify.com"})
	svc := newTestService(t, repo, &stubAssembler{})

	_, err := svc.Update(context.Background(), "shop-b.myshopify.com", 7, validInput())

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("expected no write, got %d update calls", repo.updateCalls)
	}
}

func TestServiceDeleteRemovesOwnedPhoto(t *testing.T) {
	repo := newStubRepository(&models.Photo{ID: 7, ShopDomain: "shop-a.myshopify.com"})
	svc := newTestService(t, repo, &stubAssembler{})

	if err := svc.Delete(context.Background(), "shop-a.myshopify.com", 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.records[7]; ok {
		t.Fatal("record still present after delete")
	}
}

func TestServiceDeleteForeignPhotoIsNotFound(t *testing.T) {
	repo := newStubRepository(&models.Photo{ID: 7, ShopDomain: "shop-a.myshopify.com"})
	svc := newTestService(t, repo, &stubAssembler{})

	err := svc.Delete(context.Background(), "shop-b.myshopify.com", 7)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, ok := repo.records[7]; !ok {
		t.Fatal("foreign delete must not remove the record")
	}
}

func TestServiceRegisterScanBumpsCounterAndReturnsURL(t *testing.T) {
	repo := newStubRepository(&models.Photo{
		ID:          7,
		ShopDomain:  "shop-a.myshopify.com",
		VariantID:   "gid://shopify/ProductVariant/11",
		Handle:      "summer-poster",
		Destination: enums.DestinationProduct,
	})
	svc := newTestService(t, repo, &stubAssembler{})

	url, err := svc.RegisterScan(context.Background(), 7)
	if err != nil {
		t.Fatalf("RegisterScan: %v", err)
	}
	if url != "https://shop-a.myshopify.com/products/summer-poster" {
		t.Fatalf("unexpected url %q", url)
	}
	if repo.records[7].Scans != 1 {
		t.Fatalf("expected scans=1, got %d", repo.records[7].Scans)
	}
}

func TestServiceRegisterScanMissingPhoto(t *testing.T) {
	svc := newTestService(t, newStubRepository(), &stubAssembler{})

	_, err := svc.RegisterScan(context.Background(), 99)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServicePropagatesAssemblerFailure(t *testing.T) {
	repo := newStubRepository(&models.Photo{ID: 7, ShopDomain: "shop-a.myshopify.com"})
	assembler := &stubAssembler{err: pkgerrors.New(pkgerrors.CodeUpstream, "nodes query")}
	svc := newTestService(t, repo, assembler)

	_, err := svc.Get(context.Background(), "shop-a.myshopify.com", 7)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestServicePropagatesStorageFailure(t *testing.T) {
	repo := newStubRepository()
	repo.findErr = fmt.Errorf("disk on fire")
	svc := newTestService(t, repo, &stubAssembler{})

	_, err := svc.Get(context.Background(), "shop-a.myshopify.com", 7)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStorage {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestServiceRequiresShopIdentity(t *testing.T) {
	svc := newTestService(t, newStubRepository(), &stubAssembler{})

	_, err := svc.List(context.Background(), "")

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
