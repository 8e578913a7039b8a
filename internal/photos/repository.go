package photos

import (
	"context"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/ssh-randy/photosynthesis/pkg/db/models"
	"github.com/ssh-randy/photosynthesis/pkg/enums"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
)

// Repository persists photo records. The schema is created lazily on first
// use: every operation waits on a one-time initialization gate, so concurrent
// cold-start callers share a single ensure-schema pass instead of racing to
// create the table twice.
type Repository struct {
	db       *gorm.DB
	initOnce sync.Once
	initErr  error
}

// NewRepository constructs a photo repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ready(ctx context.Context) error {
	r.initOnce.Do(func() {
		if err := r.db.WithContext(ctx).AutoMigrate(&models.Photo{}); err != nil {
			r.initErr = pkgerrors.Wrap(pkgerrors.CodeStorage, err, "ensure photos schema")
		}
	})
	return r.initErr
}

// UpdateFields carries the full mutable field set; updates are whole-record
// replacements, not partial patches.
type UpdateFields struct {
	Title       string
	ProductID   string
	VariantID   string
	Handle      string
	Destination enums.Destination
}

// Create inserts a new row with scans forced to zero and returns it with the
// assigned id. Missing or empty required fields surface as a storage error,
// mirroring the schema's non-null constraints.
func (r *Repository) Create(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	if err := checkRequired(photo); err != nil {
		return nil, err
	}

	photo.Scans = 0
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "insert photo")
	}
	return photo, nil
}

// FindByID returns the unique record for id. A normal miss is reported as
// gorm.ErrRecordNotFound for the caller to classify.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Photo, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}

	var photo models.Photo
	if err := r.db.WithContext(ctx).First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// ListByShop returns all records owned by the shop. Ordering by creation time
// is for response determinism only, not a contract.
func (r *Repository) ListByShop(ctx context.Context, shopDomain string) ([]models.Photo, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}

	var rows []models.Photo
	err := r.db.WithContext(ctx).
		Where("shop_domain = ?", shopDomain).
		Order("created_at").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list photos")
	}
	return rows, nil
}

// Update overwrites the mutable fields for id. A missing id is a no-op that
// still reports success; callers are expected to pre-authorize with a lookup.
func (r *Repository) Update(ctx context.Context, id uint, fields UpdateFields) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       fields.Title,
			"product_id":  fields.ProductID,
			"variant_id":  fields.VariantID,
			"handle":      fields.Handle,
			"destination": fields.Destination,
		}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update photo")
	}
	return nil
}

// Delete removes the row permanently, succeeding even when it is already gone.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&models.Photo{}, id).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete photo")
	}
	return nil
}

// IncrementScans bumps the scan counter in place. This is the only write path
// for scans; the CRUD surface never touches it.
func (r *Repository) IncrementScans(ctx context.Context, id uint) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&models.Photo{}).
		Where("id = ?", id).
		UpdateColumn("scans", gorm.Expr("scans + 1")).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "increment scans")
	}
	return nil
}

func checkRequired(photo *models.Photo) error {
	missing := []string{}
	for field, value := range map[string]string{
		"title":       photo.Title,
		"product_id":  photo.ProductID,
		"variant_id":  photo.VariantID,
		"handle":      photo.Handle,
		"destination": string(photo.Destination),
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeStorage, "not null constraint violated").
			WithDetails(map[string]any{"columns": missing})
	}
	return nil
}
