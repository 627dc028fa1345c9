// internal/stubapi/server.go
package stubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"mediastore/internal/api"
)

// Error codes the stub answers with. The consoles only ever branch on
// api.CodeOK; the rest are for humans reading the message.
const (
	codeBadRequest   = "ER0400"
	codeUnauthorized = "ER0401"
	codeForbidden    = "ER0403"
	codeNotFound     = "ER0404"
	codeConflict     = "ER0409"
)

type contextKey int

const claimsKey contextKey = iota

// Server is the in-memory mock of the media store backend. It exists so the
// consoles (and the client tests) can run the whole storefront flow without
// the real backend: same paths, same envelope, same token scheme.
type Server struct {
	store  *Store
	tokens *tokenIssuer
	// login attempts are throttled so a runaway script cannot hammer the
	// credential check, mirroring the real backend's behavior.
	loginLimiter *rate.Limiter
}

// NewServer creates a stub backend around the given store.
func NewServer(store *Store, jwtSecret string) *Server {
	return &Server{
		store:        store,
		tokens:       newTokenIssuer(jwtSecret, 12*time.Hour),
		loginLimiter: rate.NewLimiter(rate.Every(time.Second), 10),
	}
}

// Handler builds the chi router with the full REST surface the clients
// consume.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Anonymous endpoints.
	r.Post("/api/v1/auth/register", s.handleRegister)
	r.Post("/api/v1/auth/login", s.handleLogin)
	r.Get("/products/search", s.handleSearchProducts)
	r.Get("/products/{id}", s.handleGetProduct)
	r.Get("/api/products/random", s.handleRandomProducts)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Put("/users/change-password", s.handleChangePassword)

		r.Get("/cart", s.handleGetCart)
		r.Post("/cart/items", s.handleAddCartItem)
		r.Put("/cart/items/{productId}", s.handleUpdateCartItem)
		r.Delete("/cart/items/{productId}", s.handleRemoveCartItem)

		r.Post("/api/v1/orders", s.handlePlaceOrder)
		r.Get("/orders/my-orders", s.handleMyOrders)
		r.Post("/orders/{id}/confirm", s.handleConfirmOrder)

		r.Post("/api/v1/payments", s.handleCreatePayment)
		r.Post("/api/v1/payments/vietqr/callback", s.handleVietQRCallback)
		r.Post("/payment/paypal/create", s.handleCreatePayPal)

		// Admin-only.
		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Post("/api/products", s.handleCreateProduct)
			r.Put("/api/products/{id}", s.handleUpdateProduct)
			r.Delete("/products/{id}", s.handleDeactivateProduct)
			r.Get("/api/products/{id}/history", s.handleProductHistory)

			r.Get("/orders/pending", s.handlePendingOrders)
			r.Put("/orders/{id}/approve", s.handleApproveOrder)
			r.Put("/orders/{id}/reject", s.handleRejectOrder)

			r.Get("/users", s.handleListUsers)
			r.Put("/users/{id}/block", s.handleBlockUser)
			r.Put("/users/{id}/unblock", s.handleUnblockUser)
		})
	})

	return r
}

// authenticate validates the bearer token and attaches its claims to the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) < 8 || header[:7] != "Bearer " {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing or malformed authorization header")
			return
		}
		claims, err := s.tokens.Validate(header[7:])
		if err != nil {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates admin endpoints on the ADMIN role carried in the token.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		for _, role := range claims.Roles {
			if role == "ADMIN" {
				next.ServeHTTP(w, r)
				return
			}
		}
		writeError(w, http.StatusForbidden, codeForbidden, "admin role required")
	})
}

func claimsFrom(r *http.Request) *tokenClaims {
	claims, _ := r.Context().Value(claimsKey).(*tokenClaims)
	return claims
}

// --- envelope helpers ---

func writeOK(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, api.CodeOK, "success", data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeEnvelope(w, status, code, message, nil)
}

func writeEnvelope(w http.ResponseWriter, status int, code, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
		Data      any    `json:"data,omitempty"`
	}{ErrorCode: code, Message: message, Data: data}

	json.NewEncoder(w).Encode(body)
}

// pageOf slices items into the backend's pagination wrapper.
func pageOf[T any](items []T, page, size int) api.Page[T] {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	start := page * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}

	totalPages := (len(items) + size - 1) / size
	return api.Page[T]{
		Content:       items[start:end],
		TotalElements: len(items),
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
		Empty:         start == end,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func pathInt(r *http.Request, key string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, key))
}
