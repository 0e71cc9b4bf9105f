package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jcamposr/storefront-gateway/internal/checkoutlog"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/domain/entity"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/notify"
	"github.com/jcamposr/storefront-gateway/internal/storefront/core/ports"
	"github.com/jcamposr/storefront-gateway/internal/storefront/infra/httpx/middlewares"
)

// Handler serves the storefront surface: catalog proxying, cart mutations,
// notifications, and the checkout flow.
type Handler struct {
	catalog     ports.CatalogService
	orders      ports.OrderService
	checkoutLog checkoutlog.Repository // nil-safe: logging skipped if nil
}

// NewHandler wires the handler with its collaborators. checkoutLog may be
// nil; checkout attempts are then not persisted.
func NewHandler(catalog ports.CatalogService, orders ports.OrderService, checkoutLog checkoutlog.Repository) *Handler {
	return &Handler{
		catalog:     catalog,
		orders:      orders,
		checkoutLog: checkoutLog,
	}
}

// ListCategories proxies the category list. A backend failure degrades to
// an empty list rather than an error page.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "fetching categories failed", "error", err)
		categories = nil
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Price:       c.Price.InexactFloat64(),
			ImageURL:    c.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: out})
}

// ListProducts proxies the product list, optionally filtered by the
// "category" query parameter. Degrades to an empty array on failure.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := h.catalog.ListProducts(r.Context(), category)
	if err != nil {
		slog.ErrorContext(r.Context(), "fetching products failed", "category", category, "error", err)
		products = nil
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price.InexactFloat64(),
			ImageURL:    p.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCart returns the session's cart in insertion order plus its total.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}

	var res CartResponse
	sess.Do(func(cart *entity.Cart, _ *notify.Queue) {
		res = mapCartToResponse(cart)
	})
	writeJSON(w, http.StatusOK, res)
}

// AddItem puts a product in the cart and posts a confirmation notice
// naming it.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	var res CartResponse
	sess.Do(func(cart *entity.Cart, notices *notify.Queue) {
		cart.Add(entity.Product{
			ID:    req.ProductID,
			Name:  req.Name,
			Price: req.Price,
		})
		notices.Post(notify.LevelInfo, fmt.Sprintf("%s added to cart!", req.Name))
		res = mapCartToResponse(cart)
	})
	writeJSON(w, http.StatusOK, res)
}

// UpdateItemQuantity overwrites the quantity of a cart line. A quantity of
// zero or below removes the line.
func (h *Handler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}

	productID := chi.URLParam(r, "productID")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var res CartResponse
	sess.Do(func(cart *entity.Cart, _ *notify.Queue) {
		cart.SetQuantity(productID, req.Quantity)
		res = mapCartToResponse(cart)
	})
	writeJSON(w, http.StatusOK, res)
}

// RemoveItem deletes a cart line. Removing an unknown product is a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}

	productID := chi.URLParam(r, "productID")

	var res CartResponse
	sess.Do(func(cart *entity.Cart, _ *notify.Queue) {
		cart.Remove(productID)
		res = mapCartToResponse(cart)
	})
	writeJSON(w, http.StatusOK, res)
}

// DrainNotifications hands all pending notices to the view layer.
func (h *Handler) DrainNotifications(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}

	var drained []notify.Notice
	sess.Do(func(_ *entity.Cart, notices *notify.Queue) {
		drained = notices.Drain()
	})

	out := make([]NoticeResponse, 0, len(drained))
	for _, n := range drained {
		out = append(out, NoticeResponse{
			Level:     string(n.Level),
			Message:   n.Message,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, NoticesResponse{Notices: out})
}

// Checkout validates the cart and email, submits the order payload, and
// surfaces the backend's answer. Validation failures never reach the
// backend; a request failure is reported once, with no retry.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, "no_session", "")
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var (
		payload entity.OrderPayload
		empty   bool
	)
	sess.Do(func(cart *entity.Cart, notices *notify.Queue) {
		empty = cart.IsEmpty()
		switch {
		case empty:
			notices.Post(notify.LevelAlert, "Your cart is empty!")
		case req.CustomerEmail == "":
			notices.Post(notify.LevelAlert, "Please enter your email address")
		default:
			payload = cart.OrderPayload(req.CustomerEmail)
		}
	})

	if empty {
		writeError(w, http.StatusUnprocessableEntity, "empty_cart", "cart has no items")
		return
	}
	if req.CustomerEmail == "" {
		writeError(w, http.StatusUnprocessableEntity, "email_required", "customer_email is required")
		return
	}

	attemptID := uuid.NewString()
	h.logCheckout(r.Context(), attemptID, sess.ID, checkoutlog.StatusStarted, payloadJSON(payload), nil)

	slog.InfoContext(r.Context(), "submitting order",
		"attempt_id", attemptID,
		"items", len(payload.Items),
	)

	result, err := h.orders.CreateOrder(r.Context(), payload)
	if err != nil {
		slog.ErrorContext(r.Context(), "checkout failed", "attempt_id", attemptID, "error", err)
		h.logCheckout(r.Context(), attemptID, sess.ID, checkoutlog.StatusFailed, "", []string{err.Error()})

		sess.Do(func(_ *entity.Cart, notices *notify.Queue) {
			notices.Post(notify.LevelAlert, "Error processing checkout. Please try again.")
		})
		writeError(w, http.StatusBadGateway, "checkout_failed", err.Error())
		return
	}

	h.logCheckout(r.Context(), attemptID, sess.ID, checkoutlog.StatusAccepted, "", nil)

	// The cart is intentionally left as-is: the visitor still owns its
	// contents until payment actually completes.
	sess.Do(func(_ *entity.Cart, notices *notify.Queue) {
		if result.Status == entity.StatusReadyForPayPal {
			for _, step := range result.NextSteps {
				notices.Post(notify.LevelInfo, step)
			}
		} else {
			notices.Post(notify.LevelInfo, "Order created successfully!")
		}
	})

	writeJSON(w, http.StatusOK, CheckoutResponse{
		Status:    result.Status,
		OrderID:   result.OrderID,
		Message:   result.Message,
		Total:     result.TotalAmount.StringFixed(2),
		NextSteps: result.NextSteps,
	})
}

// logCheckout appends to the audit log when one is configured. A log
// failure must never break the customer flow, so it is only logged.
func (h *Handler) logCheckout(ctx context.Context, attemptID, sessionID string, status checkoutlog.Status, payload string, errs []string) {
	if h.checkoutLog == nil {
		return
	}
	entry := checkoutlog.NewEntry(ctx, attemptID, sessionID, status, payload, errs)
	if err := h.checkoutLog.Save(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "saving checkout log failed", "attempt_id", attemptID, "error", err)
	}
}

func mapCartToResponse(cart *entity.Cart) CartResponse {
	items := cart.Items()
	out := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}
	return CartResponse{
		Items: out,
		Total: cart.TotalPrice(),
	}
}

func payloadJSON(payload entity.OrderPayload) string {
	type item struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	body := struct {
		Items         []item `json:"items"`
		CustomerEmail string `json:"customer_email"`
	}{
		Items:         make([]item, 0, len(payload.Items)),
		CustomerEmail: payload.CustomerEmail,
	}
	for _, it := range payload.Items {
		body.Items = append(body.Items, item{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	b, err := json.Marshal(body)
	if err != nil {
		return ""
	}
	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
