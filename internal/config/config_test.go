package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadBrowserConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, c *BrowserConfig)
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			check: func(t *testing.T, c *BrowserConfig) {
				if c.Backend != BackendPlaywright {
					t.Errorf("expected playwright backend, got %s", c.Backend)
				}
				if len(c.Browsers) != 1 || c.Browsers[0] != "chrome" {
					t.Errorf("expected [chrome], got %v", c.Browsers)
				}
				if !c.Headless {
					t.Error("expected headless by default")
				}
				if c.Timeout != 10*time.Second {
					t.Errorf("expected 10s timeout, got %s", c.Timeout)
				}
			},
		},
		{
			name: "browser list and base url",
			env: map[string]string{
				"E2E_BROWSERS": "Chrome, firefox ,,edge",
				"E2E_BASE_URL": "http://intershop.local/",
				"E2E_HEADLESS": "false",
				"E2E_SLOWMO":   "100ms",
				"E2E_TIMEOUT":  "5s",
			},
			check: func(t *testing.T, c *BrowserConfig) {
				want := []string{"chrome", "firefox", "edge"}
				if len(c.Browsers) != len(want) {
					t.Fatalf("expected %v, got %v", want, c.Browsers)
				}
				for i := range want {
					if c.Browsers[i] != want[i] {
						t.Errorf("expected %v, got %v", want, c.Browsers)
					}
				}
				if c.BaseURL != "http://intershop.local" {
					t.Errorf("expected trailing slash trimmed, got %s", c.BaseURL)
				}
				if c.Headless {
					t.Error("expected headed mode")
				}
				if c.SlowMo != 100*time.Millisecond || c.Timeout != 5*time.Second {
					t.Errorf("unexpected durations: slowmo=%s timeout=%s", c.SlowMo, c.Timeout)
				}
			},
		},
		{
			name: "selenium gets a default hub url",
			env:  map[string]string{"E2E_BACKEND": "Selenium"},
			check: func(t *testing.T, c *BrowserConfig) {
				if c.SeleniumURL != "http://localhost:4444/wd/hub" {
					t.Errorf("unexpected selenium url %s", c.SeleniumURL)
				}
			},
		},
		{name: "unknown backend", env: map[string]string{"E2E_BACKEND": "rod"}, wantErr: true},
		{name: "bad headless", env: map[string]string{"E2E_HEADLESS": "maybe"}, wantErr: true},
		{name: "bad timeout", env: map[string]string{"E2E_TIMEOUT": "soon"}, wantErr: true},
		{name: "non-positive timeout", env: map[string]string{"E2E_TIMEOUT": "0s"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadBrowserConfig(envMap(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadBrowserConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestLoadStoreConfig(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantDriver string
		wantErr    bool
	}{
		{name: "memory by default", env: map[string]string{}, wantDriver: StoreMemory},
		{name: "sqlite", env: map[string]string{"SHOP_STORE": "sqlite"}, wantDriver: StoreSQLite},
		{
			name: "postgres",
			env: map[string]string{
				"SHOP_STORE":        "postgres",
				"POSTGRES_USER":     "shop",
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_DB":       "intershop",
				"POSTGRES_HOSTNAME": "db",
			},
			wantDriver: StorePostgres,
		},
		{name: "postgres without credentials", env: map[string]string{"SHOP_STORE": "postgres"}, wantErr: true},
		{name: "unknown driver", env: map[string]string{"SHOP_STORE": "badger"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadStoreConfig(envMap(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadStoreConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if c.Driver != tt.wantDriver {
				t.Errorf("expected driver %s, got %s", tt.wantDriver, c.Driver)
			}
			if c.Driver == StoreSQLite && c.SQLitePath != "intershop.db" {
				t.Errorf("expected default sqlite path, got %s", c.SQLitePath)
			}
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	c := LoadServerConfig(envMap(map[string]string{"PORT": "9090"}))

	if c.Port != "9090" {
		t.Errorf("expected port 9090, got %s", c.Port)
	}
	if c.SiteName != "Skillbox" {
		t.Errorf("expected default site name, got %s", c.SiteName)
	}
	if c.PublicURL != "http://localhost:9090" {
		t.Errorf("expected public url derived from port, got %s", c.PublicURL)
	}
}

func TestLoadPostgresConfig(t *testing.T) {
	base := map[string]string{
		"POSTGRES_USER":     "u",
		"POSTGRES_PASSWORD": "p",
		"POSTGRES_DB":       "d",
		"POSTGRES_HOSTNAME": "h",
	}
	with := func(k, v string) map[string]string {
		env := map[string]string{}
		for key, val := range base {
			env[key] = val
		}
		env[k] = v
		return env
	}

	tests := []struct {
		name     string
		env      map[string]string
		wantConn string
		wantErr  bool
	}{
		{name: "defaults", env: base, wantConn: "host=h port=5432 user=u password=p dbname=d sslmode=disable"},
		{name: "custom port", env: with("POSTGRES_PORT", "6432"), wantConn: "host=h port=6432 user=u password=p dbname=d sslmode=disable"},
		{name: "ssl mode", env: with("POSTGRES_SSLMODE", "require"), wantConn: "host=h port=5432 user=u password=p dbname=d sslmode=require"},
		{name: "bad port", env: with("POSTGRES_PORT", "http"), wantErr: true},
		{name: "missing host", env: with("POSTGRES_HOSTNAME", ""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadPostgresConfig(envMap(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadPostgresConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := c.ConnectionString(); got != tt.wantConn {
				t.Errorf("ConnectionString() = %q, want %q", got, tt.wantConn)
			}
		})
	}
}

func TestLoadSuiteData_Defaults(t *testing.T) {
	data, err := LoadSuiteData("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.SiteName != "Skillbox" {
		t.Errorf("expected site Skillbox, got %s", data.SiteName)
	}
	if len(data.Coupons) != 2 || data.Coupons[0] != "GIVEMEHALYAVA" || data.Coupons[1] != "SERT500" {
		t.Errorf("unexpected coupons %v", data.Coupons)
	}
	if data.Messages.CouponApplied != "Купон успешно добавлен." {
		t.Errorf("unexpected coupon message %q", data.Messages.CouponApplied)
	}
	if data.MainPage.CatalogAliases["Фотоаппараты"] != "Фото/видео" {
		t.Errorf("expected catalog alias, got %v", data.MainPage.CatalogAliases)
	}
	if data.Billing.FirstName != "Faridun" {
		t.Errorf("unexpected billing %+v", data.Billing)
	}
}

func TestLoadSuiteData_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	content := "site_name: Demo\ncoupons: [FREE]\npayment_methods: [Cash]\nreview: {stars: 3, comment: ok}\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := LoadSuiteData(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.SiteName != "Demo" || data.Coupons[0] != "FREE" {
		t.Errorf("unexpected data %+v", data)
	}
}

func TestParseSuiteData_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not yaml", raw: "site_name: [unterminated"},
		{name: "missing site", raw: "coupons: [A]\npayment_methods: [B]\nreview: {stars: 1}"},
		{name: "missing coupons", raw: "site_name: S\npayment_methods: [B]\nreview: {stars: 1}"},
		{name: "missing payment methods", raw: "site_name: S\ncoupons: [A]\nreview: {stars: 1}"},
		{name: "stars out of range", raw: "site_name: S\ncoupons: [A]\npayment_methods: [B]\nreview: {stars: 6}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSuiteData([]byte(tt.raw)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadSuiteData_MissingFile(t *testing.T) {
	if _, err := LoadSuiteData("/nonexistent/suite.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
