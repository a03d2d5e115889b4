package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/skillbox-qa/intershop/internal/models"
	"github.com/skillbox-qa/intershop/internal/services"
)

func newTestOrder(t *testing.T, customerID, method string, coupons ...string) *models.Order {
	t.Helper()

	catalog := models.DefaultCatalog()
	var cart models.Cart
	for _, slug := range []string{"ipad-air", "kniga-yazyk-go"} {
		p, err := catalog.Product(slug)
		if err != nil {
			t.Fatal(err)
		}
		if err := cart.Add(p, 1); err != nil {
			t.Fatal(err)
		}
	}
	all := models.DefaultCoupons()
	for _, code := range coupons {
		if err := cart.ApplyCoupon(all[code]); err != nil {
			t.Fatal(err)
		}
	}

	pm, err := models.FindPaymentMethod(method)
	if err != nil {
		t.Fatal(err)
	}
	order, err := models.NewOrder(customerID, cart, models.Billing{
		FirstName: "Faridun",
		LastName:  "Hushang-Mirzo",
		Address:   "Tashkent, Bobojon Gafurov str.",
		City:      "Tashkent",
		Phone:     "+998901234567",
		Email:     "faridun@example.com",
	}, pm)
	if err != nil {
		t.Fatal(err)
	}
	return order
}

// testOrderRepository runs the behaviour every OrderRepository shares
func testOrderRepository(t *testing.T, newRepo func(t *testing.T) services.OrderRepository) {
	ctx := context.Background()

	t.Run("create assigns sequential numbers", func(t *testing.T) {
		repo := newRepo(t)

		first := newTestOrder(t, "c1", "bacs")
		second := newTestOrder(t, "c1", "cod")
		if err := repo.CreateOrder(ctx, first); err != nil {
			t.Fatalf("CreateOrder() error = %v", err)
		}
		if err := repo.CreateOrder(ctx, second); err != nil {
			t.Fatalf("CreateOrder() error = %v", err)
		}

		if first.Number != firstOrderNumber+1 {
			t.Errorf("expected first number %d, got %d", firstOrderNumber+1, first.Number)
		}
		if second.Number != first.Number+1 {
			t.Errorf("expected sequential numbers, got %d then %d", first.Number, second.Number)
		}
		if first.CreatedAt.IsZero() || first.UpdatedAt.IsZero() {
			t.Error("timestamps should be set")
		}
	})

	t.Run("get round trips order and items", func(t *testing.T) {
		repo := newRepo(t)
		order := newTestOrder(t, "c1", "bacs", "GIVEMEHALYAVA", "SERT500")
		if err := repo.CreateOrder(ctx, order); err != nil {
			t.Fatal(err)
		}

		got, err := repo.GetOrderByNumber(ctx, order.Number)
		if err != nil {
			t.Fatalf("GetOrderByNumber() error = %v", err)
		}

		if got.ID != order.ID || got.OrderKey != order.OrderKey {
			t.Errorf("identity mismatch: got %s/%s", got.ID, got.OrderKey)
		}
		if got.Billing != order.Billing {
			t.Errorf("billing mismatch: %+v", got.Billing)
		}
		if len(got.Items) != 2 || got.Items[0].Slug != "ipad-air" || got.Items[1].Slug != "kniga-yazyk-go" {
			t.Errorf("items mismatch: %+v", got.Items)
		}
		if len(got.Coupons) != 2 || got.Coupons[0] != "GIVEMEHALYAVA" {
			t.Errorf("coupons mismatch: %v", got.Coupons)
		}
		if got.Total != order.Total || got.Discount != order.Discount {
			t.Errorf("totals mismatch: %d/%d", got.Total, got.Discount)
		}
		if got.PaymentTitle != "Прямой банковский перевод" {
			t.Errorf("payment title mismatch: %q", got.PaymentTitle)
		}
	})

	t.Run("get unknown number", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.GetOrderByNumber(ctx, 4242); !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("list by customer newest first", func(t *testing.T) {
		repo := newRepo(t)
		for _, customer := range []string{"c1", "c2", "c1"} {
			if err := repo.CreateOrder(ctx, newTestOrder(t, customer, "cod")); err != nil {
				t.Fatal(err)
			}
		}

		orders, err := repo.ListOrdersByCustomer(ctx, "c1")
		if err != nil {
			t.Fatalf("ListOrdersByCustomer() error = %v", err)
		}

		if len(orders) != 2 {
			t.Fatalf("expected 2 orders, got %d", len(orders))
		}
		if orders[0].Number < orders[1].Number {
			t.Errorf("expected newest first, got %d then %d", orders[0].Number, orders[1].Number)
		}
		if len(orders[0].Items) == 0 {
			t.Error("listed orders should carry their items")
		}
	})

	t.Run("update status", func(t *testing.T) {
		repo := newRepo(t)
		order := newTestOrder(t, "c1", "bacs")
		if err := repo.CreateOrder(ctx, order); err != nil {
			t.Fatal(err)
		}

		if err := repo.UpdateOrderStatus(ctx, order.Number, models.OrderStatusProcessing); err != nil {
			t.Fatalf("UpdateOrderStatus() error = %v", err)
		}
		got, err := repo.GetOrderByNumber(ctx, order.Number)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != models.OrderStatusProcessing {
			t.Errorf("expected processing, got %s", got.Status)
		}

		if err := repo.UpdateOrderStatus(ctx, 4242, models.OrderStatusCancelled); !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("expected ErrOrderNotFound, got %v", err)
		}
	})

	t.Run("concurrent creates get distinct numbers", func(t *testing.T) {
		repo := newRepo(t)

		const n = 8
		orders := make([]*models.Order, n)
		for i := range orders {
			orders[i] = newTestOrder(t, "c1", "cod")
		}
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.CreateOrder(ctx, orders[i])
			}(i)
		}
		wg.Wait()

		numbers := make([]int64, n)
		for i, order := range orders {
			numbers[i] = order.Number
		}

		for _, err := range errs {
			if err != nil {
				t.Fatalf("concurrent CreateOrder() error = %v", err)
			}
		}
		sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
		for i := 1; i < n; i++ {
			if numbers[i] == numbers[i-1] {
				t.Errorf("duplicate order number %d", numbers[i])
			}
		}
	})
}

func TestMemoryOrderRepository(t *testing.T) {
	testOrderRepository(t, func(*testing.T) services.OrderRepository {
		return NewMemoryOrderRepository()
	})
}

func TestMemoryOrderRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryOrderRepository()
	order := newTestOrder(t, "c1", "bacs")
	if err := repo.CreateOrder(context.Background(), order); err != nil {
		t.Fatal(err)
	}

	order.Items[0].Quantity = 99
	got, _ := repo.GetOrderByNumber(context.Background(), order.Number)
	if got.Items[0].Quantity == 99 {
		t.Error("stored order must not alias the caller's order")
	}
}

func TestMemoryCustomerRepository(t *testing.T) {
	faridun := &models.Customer{ID: "1", Username: "faridun", Email: "faridun@example.com"}
	repo := NewMemoryCustomerRepository(faridun)
	ctx := context.Background()

	tests := []struct {
		name    string
		lookup  func() (*models.Customer, error)
		wantErr error
	}{
		{name: "by username", lookup: func() (*models.Customer, error) { return repo.GetCustomerByUsername(ctx, "faridun") }},
		{name: "username is case-insensitive", lookup: func() (*models.Customer, error) { return repo.GetCustomerByUsername(ctx, " Faridun ") }},
		{name: "by email", lookup: func() (*models.Customer, error) { return repo.GetCustomerByUsername(ctx, "FARIDUN@example.com") }},
		{name: "by id", lookup: func() (*models.Customer, error) { return repo.GetCustomerByID(ctx, "1") }},
		{name: "unknown", lookup: func() (*models.Customer, error) { return repo.GetCustomerByUsername(ctx, "nobody") }, wantErr: models.ErrCustomerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.lookup()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && c != faridun {
				t.Errorf("expected faridun, got %+v", c)
			}
		})
	}
}
