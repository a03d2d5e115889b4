package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/skillbox-qa/intershop/internal/models"
	"github.com/skillbox-qa/intershop/internal/repository"
	"github.com/skillbox-qa/intershop/internal/services"
)

// Account sections rendered by account.html
const (
	sectionDashboard = "dashboard"
	sectionOrders    = "orders"
	sectionViewOrder = "view-order"
)

// LoginData feeds account_login.html
type LoginData struct {
	Username string
}

// AccountData feeds account.html
type AccountData struct {
	Heading  string
	Section  string
	Username string
	Orders   []*models.Order
	Order    *models.Order
}

// AccountHandler serves the login form and the account dashboard
type AccountHandler struct {
	shop     *Shop
	accounts services.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(shop *Shop, accounts services.AccountService) *AccountHandler {
	return &AccountHandler{shop: shop, accounts: accounts}
}

// ServeHTTP handles GET and POST /my-account/
func (h *AccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if r.Method == http.MethodPost {
		h.login(w, r, sess)
		return
	}

	st := sess.Snapshot()
	if st.CustomerID == "" {
		h.shop.render(w, r, http.StatusOK, "account_login", "Мой аккаунт", "woocommerce-account", LoginData{})
		return
	}
	data := AccountData{Heading: "Мой аккаунт", Section: sectionDashboard, Username: st.Username}
	h.shop.render(w, r, http.StatusOK, "account", "Мой аккаунт", "woocommerce-account", data)
}

func (h *AccountHandler) login(w http.ResponseWriter, r *http.Request, sess *Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	if username == "" {
		sess.AddNotice(NoticeError, "<strong>Ошибка</strong>: Требуется имя пользователя.")
		h.shop.render(w, r, http.StatusOK, "account_login", "Мой аккаунт", "woocommerce-account", LoginData{})
		return
	}

	customer, err := h.accounts.Authenticate(r.Context(), username, password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		h.shop.Logger.WithField("username", username).Warn("login failed")
		sess.AddNotice(NoticeError, "<strong>Ошибка</strong>: Неверное имя пользователя или пароль.")
		h.shop.render(w, r, http.StatusOK, "account_login", "Мой аккаунт", "woocommerce-account", LoginData{Username: username})
		return
	}
	if err != nil {
		h.shop.serverError(w, err, "failed to authenticate")
		return
	}

	sess.Update(func(st *State) {
		st.CustomerID = customer.ID
		st.Username = customer.Username
	})
	h.shop.Logger.WithField("username", customer.Username).Info("customer logged in")
	http.Redirect(w, r, "/my-account/", http.StatusSeeOther)
}

// OrdersHandler lists the logged-in customer's orders
type OrdersHandler struct {
	shop   *Shop
	orders services.OrderService
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(shop *Shop, orders services.OrderService) *OrdersHandler {
	return &OrdersHandler{shop: shop, orders: orders}
}

// ServeHTTP handles GET /my-account/orders/
func (h *OrdersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st := SessionFrom(r.Context()).Snapshot()
	if st.CustomerID == "" {
		http.Redirect(w, r, "/my-account/", http.StatusSeeOther)
		return
	}

	orders, err := h.orders.ListCustomerOrders(r.Context(), st.CustomerID)
	if err != nil {
		h.shop.serverError(w, err, "failed to list orders")
		return
	}

	data := AccountData{Heading: "Заказы", Section: sectionOrders, Username: st.Username, Orders: orders}
	h.shop.render(w, r, http.StatusOK, "account", "Мой аккаунт", "woocommerce-account", data)
}

// ViewOrderHandler shows one order of the logged-in customer
type ViewOrderHandler struct {
	shop   *Shop
	orders services.OrderService
}

// NewViewOrderHandler creates a new ViewOrderHandler
func NewViewOrderHandler(shop *Shop, orders services.OrderService) *ViewOrderHandler {
	return &ViewOrderHandler{shop: shop, orders: orders}
}

// ServeHTTP handles GET /my-account/view-order/{number}/
func (h *ViewOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st := SessionFrom(r.Context()).Snapshot()
	if st.CustomerID == "" {
		http.Redirect(w, r, "/my-account/", http.StatusSeeOther)
		return
	}

	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		h.shop.notFound(w, r, "Заказ не найден.")
		return
	}
	order, err := h.orders.GetOrderByNumber(r.Context(), number)
	if errors.Is(err, repository.ErrOrderNotFound) || (err == nil && order.CustomerID != st.CustomerID) {
		h.shop.notFound(w, r, "Заказ не найден.")
		return
	}
	if err != nil {
		h.shop.serverError(w, err, "failed to load order")
		return
	}

	data := AccountData{Heading: "Заказ №" + strconv.FormatInt(order.Number, 10), Section: sectionViewOrder, Username: st.Username, Order: order}
	h.shop.render(w, r, http.StatusOK, "account", "Мой аккаунт", "woocommerce-account", data)
}

// LogoutHandler forgets the logged-in customer
type LogoutHandler struct {
	shop *Shop
}

// NewLogoutHandler creates a new LogoutHandler
func NewLogoutHandler(shop *Shop) *LogoutHandler {
	return &LogoutHandler{shop: shop}
}

// ServeHTTP handles GET /my-account/logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	sess.Update(func(st *State) {
		st.CustomerID = ""
		st.Username = ""
		st.Billing = models.Billing{}
	})
	http.Redirect(w, r, "/my-account/", http.StatusSeeOther)
}
