package models

import (
	"time"

	"github.com/ssh-randy/photosynthesis/pkg/enums"
)

// Photo binds a merchant's product to a scannable code. ProductID and
// VariantID are soft references into the Shopify Admin API; Handle is a
// denormalized copy of the product handle so destination links can be built
// without a round trip.
type Photo struct {
	ID          uint              `gorm:"column:id;primaryKey;autoIncrement"`
	ShopDomain  string            `gorm:"column:shop_domain;size:511;not null;index"`
	Title       string            `gorm:"column:title;size:511;not null"`
	ProductID   string            `gorm:"column:product_id;size:255;not null"`
	VariantID   string            `gorm:"column:variant_id;size:255;not null"`
	Handle      string            `gorm:"column:handle;size:255;not null"`
	Destination enums.Destination `gorm:"column:destination;size:255;not null"`
	Scans       int               `gorm:"column:scans;not null;default:0"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table to the original app's schema name.
func (Photo) TableName() string {
	return "photos"
}
