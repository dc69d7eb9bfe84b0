package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
)

// Authenticator resolves the calling account from a bearer token. The token
// subject is the host-ledger principal; the protocol trusts the gateway's
// issuer to have authenticated it.
type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{signingKey: []byte(signingKey)}
}

type contextKeyAccount struct{}

// ContextWithAccount attaches an authenticated account to the context. Tests
// use it to simulate what RequireAccount does for real requests.
func ContextWithAccount(ctx context.Context, account id.AccountID) context.Context {
	return context.WithValue(ctx, contextKeyAccount{}, account)
}

// AccountFromContext returns the authenticated caller, if any.
func AccountFromContext(ctx context.Context) (id.AccountID, bool) {
	account, ok := ctx.Value(contextKeyAccount{}).(id.AccountID)
	return account, ok
}

// ValidateToken parses an HMAC-signed token and returns the subject account.
func (a *Authenticator) ValidateToken(tokenString string) (id.AccountID, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return a.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token has no subject")
	}
	account, err := id.ParseAccountID(subject)
	if err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token subject is not a valid account")
	}
	return account, nil
}

// RequireAccount authenticates the request and stores the caller account in
// the request context.
func (a *Authenticator) RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		account, err := a.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithAccount(r.Context(), account)))
	})
}
