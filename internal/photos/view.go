package photos

import (
	"time"

	"github.com/ssh-randy/photosynthesis/internal/catalog"
	"github.com/ssh-randy/photosynthesis/pkg/db/models"
	"github.com/ssh-randy/photosynthesis/pkg/enums"
)

// View is the response shape returned to the embedded frontend. It is a
// distinct type from the stored record: the raw product id is replaced by the
// resolved product object, so the two can never appear together in a response.
// Field names stay camelCase for the frontend's sake.
type View struct {
	ID          uint              `json:"id"`
	ShopDomain  string            `json:"shopDomain"`
	Title       string            `json:"title"`
	VariantID   string            `json:"variantId"`
	Handle      string            `json:"handle"`
	Destination enums.Destination `json:"destination"`
	Scans       int               `json:"scans"`
	CreatedAt   time.Time         `json:"createdAt"`
	Product     catalog.Product   `json:"product"`
}

func viewFromRecord(record models.Photo, product catalog.Product) View {
	return View{
		ID:          record.ID,
		ShopDomain:  record.ShopDomain,
		Title:       record.Title,
		VariantID:   record.VariantID,
		Handle:      record.Handle,
		Destination: record.Destination,
		Scans:       record.Scans,
		CreatedAt:   record.CreatedAt,
		Product:     product,
	}
}
