package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skillbox-qa/intershop/internal/models"
	"github.com/skillbox-qa/intershop/internal/repository"
	"github.com/skillbox-qa/intershop/internal/services"
)

// OrderData feeds order_received.html
type OrderData struct {
	Order *models.Order
}

// ConfirmationHandler serves the order received page
type ConfirmationHandler struct {
	shop   *Shop
	orders services.OrderService
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(shop *Shop, orders services.OrderService) *ConfirmationHandler {
	return &ConfirmationHandler{shop: shop, orders: orders}
}

// ServeHTTP handles GET /checkout/order-received/{number}/?key=
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		h.shop.notFound(w, r, "Заказ не найден.")
		return
	}

	order, err := h.orders.GetOrderByNumber(r.Context(), number)
	if errors.Is(err, repository.ErrOrderNotFound) {
		h.shop.notFound(w, r, "Заказ не найден.")
		return
	}
	if err != nil {
		h.shop.serverError(w, err, "failed to load order")
		return
	}

	// The order key stands in for a login on this page.
	if r.URL.Query().Get("key") != order.OrderKey {
		h.shop.Logger.WithField("order", number).Warn("order received page opened with a wrong key")
		h.shop.notFound(w, r, "Заказ не найден.")
		return
	}

	h.shop.render(w, r, http.StatusOK, "order_received", "Заказ получен", "woocommerce-order-received", OrderData{Order: order})
}
