package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/skillbox-qa/intershop/internal/models"
)

func TestAccountHandler_Login(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantError string
	}{
		{name: "wrong password", username: models.DefaultCustomerUsername, password: "nope", wantError: "Неверное имя пользователя или пароль."},
		{name: "unknown user", username: "ghost", password: "nope", wantError: "Неверное имя пользователя или пароль."},
		{name: "empty username", username: "", password: "nope", wantError: "Требуется имя пользователя."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop := newTestShop(t)

			doc, resp := shop.post(t, "/my-account/", url.Values{"username": {tt.username}, "password": {tt.password}})

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", resp.StatusCode)
			}
			if got := text(doc, "ul.woocommerce-error li"); !strings.Contains(got, tt.wantError) {
				t.Errorf("expected error %q, got %q", tt.wantError, got)
			}
			if doc.Find("#username").Length() != 1 {
				t.Error("expected the login form to be shown again")
			}
		})
	}
}

func TestAccountPages_RequireLogin(t *testing.T) {
	shop := newTestShop(t)
	client := shop.noRedirects()

	for _, path := range []string{"/my-account/orders/", "/my-account/view-order/1001/"} {
		resp, err := client.Get(shop.server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/my-account/" {
			t.Errorf("%s: expected redirect to login, got %d %s", path, resp.StatusCode, resp.Header.Get("Location"))
		}
	}
}

func TestAccountOrders(t *testing.T) {
	// GIVEN a logged-in customer with one order
	shop := newTestShop(t)
	shop.login(t)
	shop.addToCart(t, "kindle-paperwhite", 1)

	checkout, _ := shop.get(t, "/checkout/")
	if v, _ := checkout.Find("#billing_city").Attr("value"); v != "Ташкент" {
		t.Errorf("expected saved billing to be prefilled, city = %q", v)
	}
	shop.post(t, "/checkout/", billingForm(nil))

	// WHEN the orders tab is opened
	dash, _ := shop.get(t, "/my-account/")
	href, _ := dash.Find("li.woocommerce-MyAccount-navigation-link--orders a").Attr("href")
	doc, _ := shop.get(t, href)

	// THEN the order is listed
	rows := doc.Find("tr.woocommerce-orders-table__row")
	if rows.Length() != 1 {
		t.Fatalf("expected one order row, got %d", rows.Length())
	}
	link := rows.Find("td.woocommerce-orders-table__cell-order-number a")
	if got := strings.TrimSpace(link.Text()); got != "№1001" {
		t.Errorf("unexpected order number %q", got)
	}

	// AND its detail page links to the product
	orderHref, _ := link.Attr("href")
	doc, _ = shop.get(t, orderHref)
	product := doc.Find("td.woocommerce-table__product-name a")
	if got := strings.TrimSpace(product.Text()); got != "Электронная книга kindle paperwhite" {
		t.Errorf("unexpected product %q", got)
	}
	if href, _ := product.Attr("href"); href != "/product/kindle-paperwhite/" {
		t.Errorf("unexpected product link %q", href)
	}
}

func TestLogoutHandler(t *testing.T) {
	shop := newTestShop(t)
	shop.login(t)

	doc, _ := shop.get(t, "/my-account/logout")

	if doc.Find("#username").Length() != 1 {
		t.Error("expected the login form after logout")
	}
	if doc.Find("a.account-login").Length() != 1 {
		t.Error("expected the header to offer login again")
	}
}
