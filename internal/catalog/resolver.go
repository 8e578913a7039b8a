package catalog

import (
	"context"

	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
)

// The database stores product and variant ids only. This query fetches the
// fields the frontend needs for those ids at read time, so product data can't
// become stale.
const nodesQuery = `
  query nodes($ids: [ID!]!) {
    nodes(ids: $ids) {
      ... on Product {
        id
        handle
        title
        images(first: 1) {
          edges {
            node {
              url
            }
          }
        }
      }
      ... on ProductVariant {
        id
      }
      ... on DiscountCodeNode {
        id
      }
    }
  }
`

const deletedProductTitle = "Deleted product"

// Product is the live Admin API view of a product. The images field keeps the
// GraphQL connection shape the embedded frontend already consumes.
type Product struct {
	ID     string           `json:"id,omitempty"`
	Title  string           `json:"title"`
	Handle string           `json:"handle,omitempty"`
	Images *ImageConnection `json:"images,omitempty"`
}

type ImageConnection struct {
	Edges []ImageEdge `json:"edges"`
}

type ImageEdge struct {
	Node Image `json:"node"`
}

type Image struct {
	URL string `json:"url"`
}

// DeletedProduct is the sentinel substituted when an id no longer resolves.
func DeletedProduct() Product {
	return Product{Title: deletedProductTitle}
}

// AdminClient is the GraphQL transport surface the resolver needs.
type AdminClient interface {
	Query(ctx context.Context, shopDomain, query string, variables map[string]any, out any) error
}

// Resolver maps external entity ids to live Admin API data.
type Resolver interface {
	ResolveNodes(ctx context.Context, shopDomain string, ids []string) (map[string]Product, error)
}

// ShopifyResolver resolves ids against the shop's Admin GraphQL API.
type ShopifyResolver struct {
	client AdminClient
}

func NewResolver(client AdminClient) *ShopifyResolver {
	return &ShopifyResolver{client: client}
}

// ResolveNodes performs one batched nodes() query for the deduplicated id set
// and returns whatever subset resolved, keyed by id. Ids that no longer exist
// are simply absent from the result; only transport or auth failures error.
// Batching all ids into a single call avoids N+1 round trips when assembling
// a list response.
func (r *ShopifyResolver) ResolveNodes(ctx context.Context, shopDomain string, ids []string) (map[string]Product, error) {
	deduped := dedupe(ids)
	if len(deduped) == 0 {
		return map[string]Product{}, nil
	}

	var out struct {
		Nodes []*Product `json:"nodes"`
	}
	err := r.client.Query(ctx, shopDomain, nodesQuery, map[string]any{"ids": deduped}, &out)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "nodes query")
	}

	resolved := make(map[string]Product, len(out.Nodes))
	for _, node := range out.Nodes {
		if node == nil || node.ID == "" {
			continue
		}
		resolved[node.ID] = *node
	}
	return resolved, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
