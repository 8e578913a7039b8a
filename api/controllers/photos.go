package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ssh-randy/photosynthesis/api/middleware"
	"github.com/ssh-randy/photosynthesis/api/responses"
	"github.com/ssh-randy/photosynthesis/api/validators"
	"github.com/ssh-randy/photosynthesis/internal/photos"
	"github.com/ssh-randy/photosynthesis/pkg/enums"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
	"github.com/ssh-randy/photosynthesis/pkg/logger"
)

type photoRequest struct {
	Title       string `json:"title" validate:"required"`
	ProductID   string `json:"productId" validate:"required"`
	VariantID   string `json:"variantId" validate:"required"`
	Handle      string `json:"handle" validate:"required"`
	Destination string `json:"destination" validate:"omitempty,oneof=product checkout"`
}

func (r photoRequest) toInput() (photos.Input, error) {
	// An omitted destination defaults to the product page.
	raw := strings.TrimSpace(r.Destination)
	if raw == "" {
		raw = string(enums.DestinationProduct)
	}
	destination, err := enums.ParseDestination(raw)
	if err != nil {
		return photos.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid destination")
	}

	return photos.Input{
		Title:       strings.TrimSpace(r.Title),
		ProductID:   strings.TrimSpace(r.ProductID),
		VariantID:   strings.TrimSpace(r.VariantID),
		Handle:      strings.TrimSpace(r.Handle),
		Destination: destination,
	}, nil
}

func photoIDFromURL(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "photoId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid photo id")
	}
	return uint(id), nil
}

// PhotoCreate handles creating a shop-scoped photo code.
func PhotoCreate(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		shopDomain := middleware.ShopDomainFromContext(r.Context())
		if shopDomain == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		var payload photoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), shopDomain, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// PhotoList returns every photo the shop owns, each joined with live product
// data.
func PhotoList(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		shopDomain := middleware.ShopDomainFromContext(r.Context())
		if shopDomain == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		views, err := svc.List(r.Context(), shopDomain)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

// PhotoDetail fetches a single owned photo.
func PhotoDetail(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		shopDomain := middleware.ShopDomainFromContext(r.Context())
		if shopDomain == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		id, err := photoIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), shopDomain, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// PhotoUpdate replaces the mutable fields of an owned photo.
func PhotoUpdate(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		shopDomain := middleware.ShopDomainFromContext(r.Context())
		if shopDomain == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		id, err := photoIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload photoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), shopDomain, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// PhotoDelete removes an owned photo permanently.
func PhotoDelete(svc photos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		shopDomain := middleware.ShopDomainFromContext(r.Context())
		if shopDomain == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "shop context missing"))
			return
		}

		id, err := photoIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), shopDomain, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
