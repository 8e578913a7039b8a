package middleware

import (
	"net/http"
	"strings"

	"github.com/ssh-randy/photosynthesis/api/responses"
	"github.com/ssh-randy/photosynthesis/pkg/config"
	pkgerrors "github.com/ssh-randy/photosynthesis/pkg/errors"
	"github.com/ssh-randy/photosynthesis/pkg/logger"
	"github.com/ssh-randy/photosynthesis/pkg/shopify"
)

// ShopSession validates the App Bridge session token on the Authorization
// header and seeds the request context with the shop identity. The shop domain
// only ever comes from the verified token, never from the payload or query.
func ShopSession(cfg config.ShopifyConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := shopify.VerifySessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session token"))
				return
			}

			shopDomain := claims.ShopDomain()
			ctx := WithShopDomain(r.Context(), shopDomain)
			if logg != nil {
				ctx = logg.WithShopDomain(ctx, shopDomain)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
