package photos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ssh-randy/photosynthesis/pkg/db/models"
	"github.com/ssh-randy/photosynthesis/pkg/enums"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
)

type photosRepository interface {
	Create(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	FindByID(ctx context.Context, id uint) (*models.Photo, error)
	ListByShop(ctx context.Context, shopDomain string) ([]models.Photo, error)
	Update(ctx context.Context, id uint, fields UpdateFields) error
	Delete(ctx context.Context, id uint) error
	IncrementScans(ctx context.Context, id uint) error
}

type viewAssembler interface {
	Assemble(ctx context.Context, shopDomain string, records []models.Photo) ([]View, error)
}

// Input is the full mutable field set supplied on create and update.
type Input struct {
	Title       string
	ProductID   string
	VariantID   string
	Handle      string
	Destination enums.Destination
}

// Service exposes the photo lifecycle: shop-scoped CRUD plus the public scan
// path. Every read returns assembled views, never raw records.
type Service interface {
	Create(ctx context.Context, shopDomain string, input Input) (*View, error)
	Get(ctx context.Context, shopDomain string, id uint) (*View, error)
	List(ctx context.Context, shopDomain string) ([]View, error)
	Update(ctx context.Context, shopDomain string, id uint, input Input) (*View, error)
	Delete(ctx context.Context, shopDomain string, id uint) error
	RegisterScan(ctx context.Context, id uint) (string, error)
}

type service struct {
	repo      photosRepository
	assembler viewAssembler
}

// NewService builds the photo service from its repository and assembler.
func NewService(repo photosRepository, assembler viewAssembler) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("photos repository required")
	}
	if assembler == nil {
		return nil, fmt.Errorf("view assembler required")
	}
	return &service{repo: repo, assembler: assembler}, nil
}

func (s *service) Create(ctx context.Context, shopDomain string, input Input) (*View, error) {
	if strings.TrimSpace(shopDomain) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop identity missing")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.Photo{
		ShopDomain:  shopDomain,
		Title:       strings.TrimSpace(input.Title),
		ProductID:   input.ProductID,
		VariantID:   input.VariantID,
		Handle:      input.Handle,
		Destination: input.Destination,
	})
	if err != nil {
		return nil, err
	}

	// Re-read so the response reflects persisted state (assigned id,
	// createdAt) rather than the request payload.
	record, err := s.repo.FindByID(ctx, created.ID)
	if err != nil {
		return nil, classifyLookupErr(err)
	}
	return s.assembleOne(ctx, shopDomain, record)
}

func (s *service) Get(ctx context.Context, shopDomain string, id uint) (*View, error) {
	record, err := s.getOwned(ctx, shopDomain, id)
	if err != nil {
		return nil, err
	}
	return s.assembleOne(ctx, shopDomain, record)
}

func (s *service) List(ctx context.Context, shopDomain string) ([]View, error) {
	if strings.TrimSpace(shopDomain) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop identity missing")
	}

	records, err := s.repo.ListByShop(ctx, shopDomain)
	if err != nil {
		return nil, err
	}

	views, err := s.assembler.Assemble(ctx, shopDomain, records)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []View{}
	}
	return views, nil
}

func (s *service) Update(ctx context.Context, shopDomain string, id uint, input Input) (*View, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Ownership guard before the write. There is no transaction between this
	// check and the update, so a concurrent delete can still slip between the
	// two; the write then lands on a missing row and reports success.
	if _, err := s.getOwned(ctx, shopDomain, id); err != nil {
		return nil, err
	}

	err := s.repo.Update(ctx, id, UpdateFields{
		Title:       strings.TrimSpace(input.Title),
		ProductID:   input.ProductID,
		VariantID:   input.VariantID,
		Handle:      input.Handle,
		Destination: input.Destination,
	})
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, classifyLookupErr(err)
	}
	return s.assembleOne(ctx, shopDomain, record)
}

func (s *service) Delete(ctx context.Context, shopDomain string, id uint) error {
	if _, err := s.getOwned(ctx, shopDomain, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RegisterScan is the public scan path: it bumps the counter and returns the
// destination URL to redirect the buyer to. No shop scoping; the code itself
// is the capability.
func (s *service) RegisterScan(ctx context.Context, id uint) (string, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", classifyLookupErr(err)
	}

	if err := s.repo.IncrementScans(ctx, id); err != nil {
		return "", err
	}
	return DestinationURL(record), nil
}

// getOwned looks up the record and verifies shop ownership. Absence and
// ownership mismatch are deliberately indistinguishable to the caller, so a
// foreign shop cannot probe for record existence.
func (s *service) getOwned(ctx context.Context, shopDomain string, id uint) (*models.Photo, error) {
	if strings.TrimSpace(shopDomain) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop identity missing")
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, classifyLookupErr(err)
	}
	if record.ShopDomain != shopDomain {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
	}
	return record, nil
}

func (s *service) assembleOne(ctx context.Context, shopDomain string, record *models.Photo) (*View, error) {
	views, err := s.assembler.Assemble(ctx, shopDomain, []models.Photo{*record})
	if err != nil {
		return nil, err
	}
	if len(views) != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "assembler returned unexpected view count")
	}
	return &views[0], nil
}

func classifyLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "photo not found")
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "lookup photo")
}

func validateInput(input Input) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "is required"
	}
	if strings.TrimSpace(input.ProductID) == "" {
		details["productId"] = "is required"
	}
	if strings.TrimSpace(input.VariantID) == "" {
		details["variantId"] = "is required"
	}
	if strings.TrimSpace(input.Handle) == "" {
		details["handle"] = "is required"
	}
	if !input.Destination.IsValid() {
		details["destination"] = "must be product or checkout"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
