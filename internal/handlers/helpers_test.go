package handlers

import (
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/skillbox-qa/intershop/internal/logging"
	"github.com/skillbox-qa/intershop/internal/models"
	"github.com/skillbox-qa/intershop/internal/repository"
	"github.com/skillbox-qa/intershop/internal/services"
	"github.com/skillbox-qa/intershop/web"
)

type testShop struct {
	server   *httptest.Server
	client   *http.Client
	catalog  *models.Catalog
	sessions *SessionStore
	orders   *repository.MemoryOrderRepository
}

func newTestShop(t *testing.T) *testShop {
	t.Helper()
	logger := logging.Discard()

	renderer, err := NewRenderer(web.FS, logger)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		t.Fatalf("failed to open static files: %v", err)
	}
	customers, err := models.DefaultCustomers()
	if err != nil {
		t.Fatalf("failed to seed customers: %v", err)
	}

	catalog := models.DefaultCatalog()
	orderRepo := repository.NewMemoryOrderRepository()
	orderService := services.NewOrderService(orderRepo)
	sessions := NewSessionStore()

	router := NewRouter(RouterDeps{
		Shop:     &Shop{Site: "Skillbox", Catalog: catalog, Renderer: renderer, Logger: logger},
		Sessions: sessions,
		Checkout: services.NewCheckoutService(catalog, models.DefaultCoupons(), orderService, logger),
		Orders:   orderService,
		Accounts: services.NewAccountService(repository.NewMemoryCustomerRepository(customers...)),
		Static:   static,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}

	return &testShop{
		server:   server,
		client:   &http.Client{Jar: jar},
		catalog:  catalog,
		sessions: sessions,
		orders:   orderRepo,
	}
}

// noRedirects returns a client sharing the shop cookies that stops at 3xx
func (s *testShop) noRedirects() *http.Client {
	return &http.Client{
		Jar: s.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (s *testShop) get(t *testing.T, path string) (*goquery.Document, *http.Response) {
	t.Helper()
	resp, err := s.client.Get(s.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return parse(t, resp)
}

func (s *testShop) post(t *testing.T, path string, form url.Values) (*goquery.Document, *http.Response) {
	t.Helper()
	resp, err := s.client.PostForm(s.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return parse(t, resp)
}

func (s *testShop) login(t *testing.T) {
	t.Helper()
	doc, _ := s.post(t, "/my-account/", url.Values{
		"username": {models.DefaultCustomerUsername},
		"password": {models.DefaultCustomerPassword},
	})
	if doc.Find("li.woocommerce-MyAccount-navigation-link--orders a").Length() != 1 {
		t.Fatal("login did not reach the account dashboard")
	}
}

func (s *testShop) addToCart(t *testing.T, slug string, qty int) {
	t.Helper()
	p, err := s.catalog.Product(slug)
	if err != nil {
		t.Fatalf("unknown product %s", slug)
	}
	s.post(t, "/cart/add", url.Values{
		"product_id": {strconv.Itoa(p.ID)},
		"quantity":   {strconv.Itoa(qty)},
		"return":     {"/cart/"},
	})
}

func parse(t *testing.T, resp *http.Response) (*goquery.Document, *http.Response) {
	t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc, resp
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
