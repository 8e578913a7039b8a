package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/ssh-randy/photosynthesis/api/middleware"
	"github.com/ssh-randy/photosynthesis/api/responses"
	"github.com/ssh-randy/photosynthesis/internal/catalog"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
	"github.com/ssh-randy/photosynthesis/pkg/logger"
)

const maxDiscountPageSize = 50

// DiscountLister is the catalog surface the discounts endpoint consumes.
type DiscountLister interface {
	ListDiscounts(ctx context.Context, shopDomain string, first int) ([]catalog.Discount, error)
}

// DiscountList proxies the shop's code discounts from the Admin API so the
// embedded frontend can offer them in its picker.
func DiscountList(lister DiscountLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lister == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discount lister unavailable"))
			return
		}

		shopDomain := middleware.ShopDomainFromContext(r.Context())
		if shopDomain == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		first := 0
		if raw := strings.TrimSpace(r.URL.Query().Get("first")); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 || parsed > maxDiscountPageSize {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid first parameter"))
				return
			}
			first = parsed
		}

		discounts, err := lister.ListDiscounts(r.Context(), shopDomain, first)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, discounts)
	}
}
