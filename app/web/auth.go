package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/umputun/jobsrc/app/sources"
)

type userCtxKey struct{}

// dummyHash is compared against for unknown users, so they take as long to reject as a wrong password
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("jobsrc-no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[WARN] failed to make dummy password hash: %v", err)
	}
	return hash
})

// identify resolves the caller from bearer token or basic auth and puts it into request context.
// Requests without valid credentials pass through anonymous, the manager decides what needs a user.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.resolveUser(r)
		if err != nil {
			log.Printf("[DEBUG] anonymous request %s %s, %v", r.Method, r.URL.Path, err)
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey{}, user)))
	})
}

// resolveUser checks "Authorization: Bearer" first and falls back to basic auth
func (s *Server) resolveUser(r *http.Request) (sources.User, error) {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		id, err := s.userFromToken(strings.TrimSpace(token))
		if err != nil {
			return sources.User{}, err
		}
		return sources.User{ID: id}, nil
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return sources.User{}, errors.New("no credentials")
	}
	hash, found := s.users[username]
	if !found {
		_ = s.comparePassword(dummyHash(), []byte(password))
		return sources.User{}, fmt.Errorf("unknown user %q", username)
	}
	if err := s.comparePassword([]byte(hash), []byte(password)); err != nil {
		return sources.User{}, fmt.Errorf("invalid password for %q", username)
	}
	return sources.User{ID: username}, nil
}

// userFromToken verifies hmac signed jwt and returns its "sub" claim
func (s *Server) userFromToken(tokenString string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", errors.New("bearer auth disabled")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("sub claim not found or not a string")
	}
	return sub, nil
}

// userFromContext returns the caller set by identify, empty user if anonymous
func userFromContext(ctx context.Context) sources.User {
	user, _ := ctx.Value(userCtxKey{}).(sources.User)
	return user
}
