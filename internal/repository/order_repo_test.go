package repository

import (
	"testing"

	"github.com/skillbox-qa/intershop/internal/config"
	"github.com/skillbox-qa/intershop/internal/repository/testutil"
	"github.com/skillbox-qa/intershop/internal/services"
)

func TestOrderRepository_SQLite(t *testing.T) {
	testOrderRepository(t, func(t *testing.T) services.OrderRepository {
		testDB := testutil.SetupSQLite(t)
		t.Cleanup(func() { testDB.Teardown(t) })
		return NewOrderRepository(testDB.DB, testDB.Driver)
	})
}

func TestOrderRepository_Rebind(t *testing.T) {
	tests := []struct {
		driver string
		query  string
		want   string
	}{
		{driver: config.StoreSQLite, query: "SELECT * FROM orders WHERE number = ?", want: "SELECT * FROM orders WHERE number = ?"},
		{driver: config.StorePostgres, query: "SELECT * FROM orders WHERE number = ?", want: "SELECT * FROM orders WHERE number = $1"},
		{driver: config.StorePostgres, query: "UPDATE orders SET status = ?, updated_at = ? WHERE number = ?", want: "UPDATE orders SET status = $1, updated_at = $2 WHERE number = $3"},
	}

	for _, tt := range tests {
		t.Run(tt.driver+" "+tt.want, func(t *testing.T) {
			repo := NewOrderRepository(nil, tt.driver)
			if got := repo.rebind(tt.query); got != tt.want {
				t.Errorf("rebind() = %q, want %q", got, tt.want)
			}
		})
	}
}
