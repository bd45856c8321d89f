// Package httpapi exposes the storefront REST API. Each resource handler is
// independently constructible so deployments can mount them as standalone
// functions; Router mounts everything for server mode.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	app "github.com/udvasito/storefront/internal/app"
	"github.com/udvasito/storefront/internal/app/auth"
	"github.com/udvasito/storefront/internal/app/domain/cart"
	"github.com/udvasito/storefront/internal/app/domain/catalog"
	"github.com/udvasito/storefront/internal/app/domain/order"
	"github.com/udvasito/storefront/internal/app/metrics"
	"github.com/udvasito/storefront/internal/app/services/uploads"
	"github.com/udvasito/storefront/internal/logging"
)

// maxUploadBytes caps the multipart body accepted by the upload endpoint.
const maxUploadBytes = 10 << 20

// Handler bundles the HTTP endpoints for the application services.
type Handler struct {
	app   *app.Application
	log   *logging.Logger
	audit *auditLog
}

// New builds a Handler over the application.
func New(application *app.Application, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.NewDefault("httpapi")
	}
	return &Handler{
		app:   application,
		log:   log,
		audit: newAuditLog(0, nil),
	}
}

// EnableAuditFile mirrors the admin audit log to a JSONL file.
func (h *Handler) EnableAuditFile(path string) error {
	sink, err := newFileAuditSink(path)
	if err != nil {
		return err
	}
	h.audit = newAuditLog(0, sink)
	return nil
}

// Router mounts every endpoint. Requests that panic are answered with a 500
// and logged; the process keeps serving.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(h.recoverPanics)

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/books", h.Books())
	api.Handle("/books/{id}", h.Books())
	api.Handle("/portfolio", h.Portfolio())
	api.Handle("/portfolio/{id}", h.Portfolio())
	api.Handle("/upload", h.Upload())
	api.Handle("/checkout", h.Checkout())
	api.HandleFunc("/admin/login", h.adminLogin).Methods(http.MethodPost)
	api.HandleFunc("/admin/audit", h.adminAudit).Methods(http.MethodGet)

	return r
}

// Books serves the book collection: GET lists, POST creates, PATCH and
// DELETE address one book by id (path variable or ?id= query).
func (h *Handler) Books() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			books, err := h.app.Catalog.ListBooks(r.Context())
			if err != nil {
				h.serverError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, books)

		case http.MethodPost:
			if !h.requireAdmin(w, r) {
				return
			}
			var input catalog.BookInput
			if err := decodeJSON(r.Body, &input); err != nil {
				writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			book, err := h.app.Catalog.CreateBook(r.Context(), input)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			h.recordAudit(r, "books", http.StatusOK)
			writeJSON(w, http.StatusOK, book)

		case http.MethodPatch:
			if !h.requireAdmin(w, r) {
				return
			}
			id, ok := requestID(w, r)
			if !ok {
				return
			}
			var patch catalog.BookPatch
			if err := decodeJSON(r.Body, &patch); err != nil {
				writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			book, err := h.app.Catalog.PatchBook(r.Context(), id, patch)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					writeMessage(w, http.StatusNotFound, "Book not found")
					return
				}
				h.serverError(w, r, err)
				return
			}
			h.recordAudit(r, "books", http.StatusOK)
			writeJSON(w, http.StatusOK, book)

		case http.MethodDelete:
			if !h.requireAdmin(w, r) {
				return
			}
			id, ok := requestID(w, r)
			if !ok {
				return
			}
			if err := h.app.Catalog.DeleteBook(r.Context(), id); err != nil {
				h.serverError(w, r, err)
				return
			}
			h.recordAudit(r, "books", http.StatusNoContent)
			w.WriteHeader(http.StatusNoContent)

		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete)
		}
	})
}

// Portfolio serves the portfolio collection: GET lists, POST creates, DELETE
// removes one item by id.
func (h *Handler) Portfolio() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := h.app.Catalog.ListPortfolio(r.Context())
			if err != nil {
				h.serverError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, items)

		case http.MethodPost:
			if !h.requireAdmin(w, r) {
				return
			}
			var input catalog.PortfolioInput
			if err := decodeJSON(r.Body, &input); err != nil {
				writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			item, err := h.app.Catalog.CreatePortfolioItem(r.Context(), input)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			h.recordAudit(r, "portfolio", http.StatusOK)
			writeJSON(w, http.StatusOK, item)

		case http.MethodDelete:
			if !h.requireAdmin(w, r) {
				return
			}
			id, ok := requestID(w, r)
			if !ok {
				return
			}
			if err := h.app.Catalog.DeletePortfolioItem(r.Context(), id); err != nil {
				h.serverError(w, r, err)
				return
			}
			h.recordAudit(r, "portfolio", http.StatusNoContent)
			w.WriteHeader(http.StatusNoContent)

		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodDelete)
		}
	})
}

// Upload accepts one multipart image under the "file" field and returns the
// public URL of the stored object.
func (h *Handler) Upload() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		if h.app.Uploads == nil {
			writeMessage(w, http.StatusNotImplemented, "Image uploads are not configured")
			return
		}
		if !h.requireAdmin(w, r) {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "No file uploaded")
			return
		}

		contentType := header.Header.Get("Content-Type")
		url, err := h.app.Uploads.Upload(r.Context(), data, contentType)
		if err != nil {
			if errors.Is(err, uploads.ErrEmptyFile) {
				writeMessage(w, http.StatusBadRequest, "No file uploaded")
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Upload failed",
				"error":   err.Error(),
			})
			return
		}

		h.recordAudit(r, "upload", http.StatusOK)
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	})
}

// Checkout submits an order: cart items plus the customer form. The email
// notification is best effort; the order is confirmed either way.
func (h *Handler) Checkout() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}

		var payload struct {
			Items    []cart.Item        `json:"items"`
			Customer order.CheckoutForm `json:"customer"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		c := &cart.Cart{Items: payload.Items}
		conf, err := h.app.Checkout.Submit(r.Context(), c, payload.Customer)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, conf)
	})
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	token, err := h.app.Auth.Login(payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "Invalid password")
			return
		}
		writeMessage(w, http.StatusNotImplemented, "Admin access is not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":     token,
		"expiresIn": int(auth.SessionTTL.Seconds()),
	})
}

func (h *Handler) adminAudit(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}
	writeJSON(w, http.StatusOK, h.audit.listLimit(limit))
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireAdmin enforces the bearer token on mutating routes. With no admin
// password configured the catalog is open, which keeps local setups and the
// test suite free of token plumbing.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !h.app.Auth.Enabled() {
		return true
	}
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	claims, err := h.app.Auth.Verify(strings.TrimSpace(token))
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	*r = *r.WithContext(context.WithValue(r.Context(), logging.UserKey, claims.Subject))
	return true
}

func (h *Handler) recordAudit(r *http.Request, resource string, status int) {
	user, _ := r.Context().Value(logging.UserKey).(string)
	h.audit.add(auditEntry{
		Time:       timeNow(),
		Method:     r.Method,
		Path:       r.URL.Path,
		Resource:   resource,
		User:       user,
		Status:     status,
		RemoteAddr: r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithContext(r.Context()).WithError(err).Error("request failed")
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

func (h *Handler) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.log.WithContext(r.Context()).WithField("panic", rec).Error("handler panic")
				writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestID extracts the integer resource id from the path variable or the
// ?id= query parameter. On failure it answers 400 and reports false.
func requestID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw, ok := mux.Vars(r)["id"]
	if !ok {
		raw = r.URL.Query().Get("id")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeMessage(w, http.StatusMethodNotAllowed, "Method "+r.Method+" Not Allowed")
}

func decodeJSON(body io.ReadCloser, dst any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError renders validation failures with their field list and every
// other error with its message.
func writeError(w http.ResponseWriter, status int, err error) {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, status, map[string]any{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
		return
	}
	writeMessage(w, status, err.Error())
}
