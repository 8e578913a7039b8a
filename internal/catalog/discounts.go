package catalog

import (
	"context"

	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
)

const discountsQuery = `
  query discounts($first: Int!) {
    codeDiscountNodes(first: $first) {
      edges {
        node {
          id
          codeDiscount {
            ... on DiscountCodeBasic {
              codes(first: 1) {
                edges {
                  node {
                    code
                  }
                }
              }
            }
            ... on DiscountCodeBxgy {
              codes(first: 1) {
                edges {
                  node {
                    code
                  }
                }
              }
            }
            ... on DiscountCodeFreeShipping {
              codes(first: 1) {
                edges {
                  node {
                    code
                  }
                }
              }
            }
          }
        }
      }
    }
  }
`

// Discount is a code discount node paired with its first redeem code, enough
// for the frontend's discount picker.
type Discount struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// ListDiscounts returns the shop's first N code discounts from the Admin API.
func (r *ShopifyResolver) ListDiscounts(ctx context.Context, shopDomain string, first int) ([]Discount, error) {
	if first <= 0 {
		first = 10
	}

	var out struct {
		CodeDiscountNodes struct {
			Edges []struct {
				Node struct {
					ID           string `json:"id"`
					CodeDiscount struct {
						Codes struct {
							Edges []struct {
								Node struct {
									Code string `json:"code"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"codes"`
					} `json:"codeDiscount"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"codeDiscountNodes"`
	}

	err := r.client.Query(ctx, shopDomain, discountsQuery, map[string]any{"first": first}, &out)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "discounts query")
	}

	discounts := make([]Discount, 0, len(out.CodeDiscountNodes.Edges))
	for _, edge := range out.CodeDiscountNodes.Edges {
		discount := Discount{ID: edge.Node.ID}
		if codes := edge.Node.CodeDiscount.Codes.Edges; len(codes) > 0 {
			discount.Code = codes[0].Node.Code
		}
		discounts = append(discounts, discount)
	}
	return discounts, nil
}
