package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssh-randy/photosynthesis/api/controllers"
	"github.com/ssh-randy/photosynthesis/api/middleware"
	"github.com/ssh-randy/photosynthesis/internal/photos"
	"github.com/ssh-randy/photosynthesis/pkg/config"
	"github.com/ssh-randy/photosynthesis/pkg/db"
	"github.com/ssh-randy/photosynthesis/pkg/logger"
	"github.com/ssh-randy/photosynthesis/pkg/metrics"
	"github.com/ssh-randy/photosynthesis/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	apiMetrics *metrics.APIMetrics,
	gatherer prometheus.Gatherer,
	photoService photos.Service,
	discountLister controllers.DiscountLister,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(apiMetrics),
	)

	var redisP redis.Pinger
	scanLimit := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		redisP = redisClient
		policy := middleware.NewScanRateLimitPolicy(cfg.ScanRateLimit.Window, cfg.ScanRateLimit.IPLimit)
		scanLimit = middleware.ScanRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// The scan path is what printed QR codes resolve to, so it stays public.
	r.With(scanLimit).Get("/photos/{photoId}/scan", controllers.PhotoScan(photoService, apiMetrics, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ShopSession(cfg.Shopify, logg))

		r.Route("/photos", func(r chi.Router) {
			r.Get("/", controllers.PhotoList(photoService, logg))
			r.Post("/", controllers.PhotoCreate(photoService, logg))
			r.Get("/{photoId}", controllers.PhotoDetail(photoService, logg))
			r.Patch("/{photoId}", controllers.PhotoUpdate(photoService, logg))
			r.Delete("/{photoId}", controllers.PhotoDelete(photoService, logg))
		})

		r.Get("/discounts", controllers.DiscountList(discountLister, logg))
	})

	return r
}
