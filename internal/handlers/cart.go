package handlers

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"github.com/skillbox-qa/intershop/internal/models"
)

// CartData feeds cart.html
type CartData struct {
	Items  []models.CartItem
	Totals TotalsView
}

// CartHandler serves the cart page
type CartHandler struct {
	shop *Shop
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(shop *Shop) *CartHandler {
	return &CartHandler{shop: shop}
}

// ServeHTTP handles GET /cart/
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cart := SessionFrom(r.Context()).Snapshot().Cart
	data := CartData{
		Items:  cart.Items,
		Totals: TotalsView{Totals: cart.Totals(), Return: "/cart/"},
	}
	h.shop.render(w, r, http.StatusOK, "cart", "Корзина", "woocommerce-cart", data)
}

// CartAddHandler puts a product into the session cart
type CartAddHandler struct {
	shop *Shop
}

// NewCartAddHandler creates a new CartAddHandler
func NewCartAddHandler(shop *Shop) *CartAddHandler {
	return &CartAddHandler{shop: shop}
}

// ServeHTTP handles GET and POST /cart/add. Catalog buttons link here
// directly; the product page form posts.
func (h *CartAddHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	id, err := strconv.Atoi(r.Form.Get("product_id"))
	if err != nil {
		http.Error(w, "Missing product id", http.StatusBadRequest)
		return
	}
	p, err := h.shop.Catalog.ProductByID(id)
	if err != nil {
		h.shop.notFound(w, r, "Товар не найден.")
		return
	}

	qty := 1
	if raw := r.Form.Get("quantity"); raw != "" {
		if qty, err = strconv.Atoi(raw); err != nil {
			qty = 0
		}
	}

	sess := SessionFrom(r.Context())
	sess.Update(func(st *State) { err = st.Cart.Add(p, qty) })

	name := html.EscapeString(p.Name)
	switch {
	case err == nil:
		h.shop.Logger.WithField("product", p.Slug).WithField("quantity", qty).Info("added to cart")
		sess.AddNotice(NoticeMessage, fmt.Sprintf("Вы отложили “%s” в свою корзину.", name))
	case errors.Is(err, models.ErrOutOfStock):
		sess.AddNotice(NoticeError, fmt.Sprintf("Вы не можете добавить “%s” в корзину, потому что товара нет в наличии.", name))
	case errors.Is(err, models.ErrInsufficientStock):
		sess.AddNotice(NoticeError, fmt.Sprintf("Вы не можете добавить такое количество “%s” в корзину: в наличии %d шт.", name, p.Stock))
	case errors.Is(err, models.ErrInvalidQuantity):
		sess.AddNotice(NoticeError, "Укажите количество товара.")
	default:
		h.shop.serverError(w, err, "failed to add to cart")
		return
	}

	http.Redirect(w, r, safeReturn(r.Form.Get("return"), "/cart/"), http.StatusSeeOther)
}

// CartRemoveHandler drops a product line from the session cart
type CartRemoveHandler struct {
	shop *Shop
}

// NewCartRemoveHandler creates a new CartRemoveHandler
func NewCartRemoveHandler(shop *Shop) *CartRemoveHandler {
	return &CartRemoveHandler{shop: shop}
}

// ServeHTTP handles GET /cart/remove?product_id=
func (h *CartRemoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("product_id"))
	if err != nil {
		http.Error(w, "Missing product id", http.StatusBadRequest)
		return
	}

	sess := SessionFrom(r.Context())
	var removed bool
	sess.Update(func(st *State) { removed = st.Cart.Remove(id) })

	if removed {
		name := "Товар"
		if p, err := h.shop.Catalog.ProductByID(id); err == nil {
			name = html.EscapeString(p.Name)
		}
		sess.AddNotice(NoticeMessage, fmt.Sprintf("“%s” удален.", name))
	}
	http.Redirect(w, r, "/cart/", http.StatusSeeOther)
}
