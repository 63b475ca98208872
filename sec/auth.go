package sec

import (
	"context"
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veenu-wootz/qualityinspectionreport-vmerge/responses"
)

// BearerAuthWrapper rejects requests without a valid HS256 bearer token.
// It satisfies routing.HandlerWrapper.
type BearerAuthWrapper struct {
	Secret []byte
	Issuer string // optional
}

func (aw *BearerAuthWrapper) Wrap(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ExtractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			responses.WriteSimpleErrorJSON(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := ParseHMACSignedToken(token, aw.Secret, aw.Issuer)
		if err != nil {
			log.Printf("[WARN] %s %s rejected token: %v", r.Method, r.URL.Path, err)
			responses.WriteSimpleErrorJSON(w, http.StatusUnauthorized, "invalid bearer token")
			return
		}
		inner.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// Ctx Access Helpers

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *jwt.RegisteredClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.RegisteredClaims)
	return claims, ok && claims != nil
}

// SubjectFromContext is the authenticated subject, or "" for anonymous requests
func SubjectFromContext(ctx context.Context) string {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return claims.Subject
	}
	return ""
}
