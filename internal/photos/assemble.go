package photos

import (
	"context"

	"github.com/ssh-randy/photosynthesis/internal/catalog"
	"github.com/ssh-randy/photosynthesis/pkg/db/models"
)

// Assembler joins stored records with live product data. One resolver call
// covers the whole batch.
type Assembler struct {
	resolver catalog.Resolver
}

func NewAssembler(resolver catalog.Resolver) *Assembler {
	return &Assembler{resolver: resolver}
}

// Assemble collects the union of product and variant ids across the records,
// resolves them in a single batched call, and produces one view per record.
// A record whose product id fails to resolve (deleted upstream, or never set)
// gets the deleted-product sentinel instead; every other field passes through
// unchanged. Assembly is a pure transform of its inputs, so repeated calls
// against unchanged resolver state yield identical views.
func (a *Assembler) Assemble(ctx context.Context, shopDomain string, records []models.Photo) ([]View, error) {
	ids := make([]string, 0, len(records)*2)
	for _, record := range records {
		ids = append(ids, record.ProductID, record.VariantID)
	}

	resolved, err := a.resolver.ResolveNodes(ctx, shopDomain, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(records))
	for _, record := range records {
		product, ok := resolved[record.ProductID]
		if !ok || record.ProductID == "" {
			product = catalog.DeletedProduct()
		}
		views = append(views, viewFromRecord(record, product))
	}
	return views, nil
}
