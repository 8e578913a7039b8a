package photos

import (
	"fmt"
	"strings"

	"github.com/ssh-randy/photosynthesis/pkg/db/models"
	"github.com/ssh-randy/photosynthesis/pkg/enums"
)

const defaultPurchaseQuantity = 1

// DestinationURL builds the storefront URL a scanned code redirects to:
// the product page, or a cart permalink that lands on checkout with the
// selected variant already in the cart.
func DestinationURL(record *models.Photo) string {
	if record.Destination == enums.DestinationCheckout {
		return fmt.Sprintf("https://%s/cart/%s:%d", record.ShopDomain, legacyID(record.VariantID), defaultPurchaseQuantity)
	}
	return fmt.Sprintf("https://%s/products/%s", record.ShopDomain, record.Handle)
}

// legacyID extracts the numeric tail from a gid (cart permalinks predate
// global ids and still use the numeric form).
func legacyID(gid string) string {
	if idx := strings.LastIndex(gid, "/"); idx >= 0 {
		return gid[idx+1:]
	}
	return gid
}
