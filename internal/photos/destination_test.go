package photos

import (
	"testing"

	"github.com/ssh-randy/photosynthesis/pkg/db/models"
	"github.com/ssh-randy/photosynthesis/pkg/enums"
)

func TestDestinationURL(t *testing.T) {
	tests := []struct {
		name   string
		record models.Photo
		want   string
	}{
		{
			name: "product page",
			record: models.Photo{
				ShopDomain:  "shop-a.myshopify.com",
				Handle:      "summer-poster",
				Destination: enums.DestinationProduct,
			},
			want: "https://shop-a.myshopify.com/products/summer-poster",
		},
		{
			name: "checkout cart permalink uses legacy variant id",
			record: models.Photo{
				ShopDomain:  "shop-a.myshopify.com",
				VariantID:   "gid://shopify/ProductVariant/11",
				Handle:      "summer-poster",
				Destination: enums.DestinationCheckout,
			},
			want: "https://shop-a.myshopify.com/cart/11:1",
		},
		{
			name: "checkout with bare numeric variant id",
			record: models.Photo{
				ShopDomain:  "shop-a.myshopify.com",
				VariantID:   "11",
				Destination: enums.DestinationCheckout,
			},
			want: "https://shop-a.myshopify.com/cart/11:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DestinationURL(&tt.record); got != tt.want {
				t.Fatalf("DestinationURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
