package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/models"
	"github.com/skillbox-qa/intershop/internal/services"
)

// FieldView is one input of the billing form
type FieldView struct {
	Name     string
	Label    string
	Required bool
	Type     string
	Value    string
}

// MethodView is one payment method radio
type MethodView struct {
	models.PaymentMethod
	Checked bool
}

// CheckoutData feeds checkout.html
type CheckoutData struct {
	Fields  []FieldView
	Items   []models.CartItem
	Totals  TotalsView
	Methods []MethodView
}

var optionalBillingFields = map[string]bool{
	"billing_state":    true,
	"billing_postcode": true,
}

func billingFieldViews(b models.Billing) []FieldView {
	values := b.Values()
	names := models.BillingFields()
	out := make([]FieldView, 0, len(names))
	for _, name := range names {
		typ := "text"
		switch name {
		case "billing_email":
			typ = "email"
		case "billing_phone":
			typ = "tel"
		}
		out = append(out, FieldView{
			Name:     name,
			Label:    models.Label(name),
			Required: !optionalBillingFields[name],
			Type:     typ,
			Value:    values[name],
		})
	}
	return out
}

func methodViews(selected string) []MethodView {
	methods := models.PaymentMethods()
	out := make([]MethodView, 0, len(methods))
	for i, m := range methods {
		checked := m.ID == selected || (selected == "" && i == 0)
		out = append(out, MethodView{PaymentMethod: m, Checked: checked})
	}
	return out
}

// CheckoutHandler serves the checkout page and places orders
type CheckoutHandler struct {
	shop     *Shop
	checkout services.CheckoutService
	accounts services.AccountService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(shop *Shop, checkout services.CheckoutService, accounts services.AccountService) *CheckoutHandler {
	return &CheckoutHandler{shop: shop, checkout: checkout, accounts: accounts}
}

// ServeHTTP handles GET and POST /checkout/
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	st := sess.Snapshot()

	if st.Cart.IsEmpty() {
		sess.AddNotice(NoticeInfo, "Оформление заказа недоступно, так как ваша корзина пуста.")
		http.Redirect(w, r, "/cart/", http.StatusSeeOther)
		return
	}

	if r.Method != http.MethodPost {
		h.renderForm(w, r, st.Cart, h.prefill(r.Context(), st), "", http.StatusOK)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	billing := models.BillingFromForm(r.PostForm.Get)
	methodID := r.PostForm.Get("payment_method")

	order, err := h.checkout.PlaceOrder(r.Context(), services.PlaceOrderRequest{
		CustomerID:    st.CustomerID,
		Cart:          st.Cart,
		Billing:       billing,
		PaymentMethod: methodID,
	})

	var verrs models.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		lines := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			lines = append(lines, fe.HTML())
		}
		sess.AddNotice(NoticeError, lines...)
		h.renderForm(w, r, st.Cart, billing, methodID, http.StatusOK)
		return
	case errors.Is(err, models.ErrInvalidPaymentMethod):
		sess.AddNotice(NoticeError, "Пожалуйста, выберите способ оплаты.")
		h.renderForm(w, r, st.Cart, billing, methodID, http.StatusOK)
		return
	case errors.Is(err, models.ErrInsufficientStock), errors.Is(err, models.ErrProductNotFound):
		sess.AddNotice(NoticeError, html.EscapeString(fmt.Sprintf("Недостаточно товара на складе: %v", err)))
		h.renderForm(w, r, st.Cart, billing, methodID, http.StatusOK)
		return
	case errors.Is(err, services.ErrEmptyCart):
		http.Redirect(w, r, "/cart/", http.StatusSeeOther)
		return
	default:
		h.shop.serverError(w, err, "failed to place order")
		return
	}

	sess.Update(func(st *State) {
		st.Cart = models.Cart{}
		st.Billing = billing
	})
	h.shop.Logger.WithFields(logrus.Fields{
		"order":  order.Number,
		"method": order.PaymentMethod,
	}).Info("checkout completed")

	target := fmt.Sprintf("/checkout/order-received/%d/?key=%s", order.Number, url.QueryEscape(order.OrderKey))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// prefill returns the billing block to show: the last one used in this
// session, else the logged-in customer's saved address
func (h *CheckoutHandler) prefill(ctx context.Context, st State) models.Billing {
	if !st.Billing.IsZero() || st.CustomerID == "" {
		return st.Billing
	}
	customer, err := h.accounts.GetCustomer(ctx, st.CustomerID)
	if err != nil {
		h.shop.Logger.WithError(err).Warn("failed to load customer billing")
		return st.Billing
	}
	return customer.Billing
}

func (h *CheckoutHandler) renderForm(w http.ResponseWriter, r *http.Request, cart models.Cart, billing models.Billing, method string, status int) {
	data := CheckoutData{
		Fields:  billingFieldViews(billing),
		Items:   cart.Items,
		Totals:  TotalsView{Totals: cart.Totals(), Return: "/checkout/"},
		Methods: methodViews(method),
	}
	h.shop.render(w, r, status, "checkout", "Оформление заказа", "woocommerce-checkout", data)
}

// CouponHandler applies a coupon to the session cart
type CouponHandler struct {
	shop     *Shop
	checkout services.CheckoutService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(shop *Shop, checkout services.CheckoutService) *CouponHandler {
	return &CouponHandler{shop: shop, checkout: checkout}
}

// ServeHTTP handles POST /checkout/coupon
func (h *CouponHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	code := r.PostForm.Get("coupon_code")

	sess := SessionFrom(r.Context())
	var err error
	sess.Update(func(st *State) { err = h.checkout.ApplyCoupon(&st.Cart, code) })

	shown := html.EscapeString(models.NormalizeCouponCode(code))
	switch {
	case err == nil:
		sess.AddNotice(NoticeMessage, "Купон успешно добавлен.")
	case errors.Is(err, models.ErrEmptyCouponCode):
		sess.AddNotice(NoticeError, "Пожалуйста, введите код купона.")
	case errors.Is(err, models.ErrUnknownCoupon):
		sess.AddNotice(NoticeError, fmt.Sprintf("Купон “%s” не существует!", shown))
	case errors.Is(err, models.ErrCouponAlreadyApplied):
		sess.AddNotice(NoticeError, "Купон уже применен!")
	case errors.Is(err, services.ErrEmptyCart):
		sess.AddNotice(NoticeError, "Ваша корзина пуста.")
	default:
		h.shop.serverError(w, err, "failed to apply coupon")
		return
	}

	http.Redirect(w, r, safeReturn(r.PostForm.Get("return"), "/checkout/"), http.StatusSeeOther)
}

// CouponRemoveHandler detaches a coupon from the session cart
type CouponRemoveHandler struct {
	shop     *Shop
	checkout services.CheckoutService
}

// NewCouponRemoveHandler creates a new CouponRemoveHandler
func NewCouponRemoveHandler(shop *Shop, checkout services.CheckoutService) *CouponRemoveHandler {
	return &CouponRemoveHandler{shop: shop, checkout: checkout}
}

// ServeHTTP handles GET /checkout/coupon/remove?coupon=&return=
func (h *CouponRemoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sess := SessionFrom(r.Context())
	var err error
	sess.Update(func(st *State) { err = h.checkout.RemoveCoupon(&st.Cart, q.Get("coupon")) })

	switch {
	case err == nil:
		sess.AddNotice(NoticeMessage, "Купон удален.")
	case errors.Is(err, models.ErrCouponNotApplied):
		sess.AddNotice(NoticeError, "Этот купон не применен к корзине.")
	default:
		h.shop.serverError(w, err, "failed to remove coupon")
		return
	}

	http.Redirect(w, r, safeReturn(q.Get("return"), "/checkout/"), http.StatusSeeOther)
}
