package controllers

import (
	"net/http"
	"strings"

	"github.com/ssh-randy/photosynthesis/api/responses"
	"github.com/ssh-randy/photosynthesis/internal/photos"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
	"github.com/ssh-randy/photosynthesis/pkg/logger"
	"github.com/ssh-randy/photosynthesis/pkg/metrics"
)

// PhotoScan is the public entry point the printed QR code resolves to. It
// bumps the scan counter and redirects the buyer's browser to the configured
// destination.
func PhotoScan(svc photos.Service, api *metrics.APIMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "photo service unavailable"))
			return
		}

		id, err := photoIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPhotoID(ctx, id)
		}

		url, err := svc.RegisterScan(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if api != nil {
			api.IncScan(destinationLabel(url))
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "redirect", url), "scan.redirect")
		}

		http.Redirect(w, r, url, http.StatusFound)
	}
}

func destinationLabel(url string) string {
	// The two destination shapes are /products/{handle} and /cart/{id}:{qty}.
	if strings.Contains(url, "/cart/") {
		return "checkout"
	}
	return "product"
}
