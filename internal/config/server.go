package config

import (
	"fmt"
	"strings"
)

// ServerConfig holds configuration for the practice storefront
type ServerConfig struct {
	Port      string
	SiteName  string
	PublicURL string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	siteName := getenv("SHOP_SITE_NAME")
	if siteName == "" {
		siteName = "Skillbox"
	}

	publicURL := strings.TrimRight(getenv("SHOP_PUBLIC_URL"), "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("http://localhost:%s", port)
	}

	return ServerConfig{
		Port:      port,
		SiteName:  siteName,
		PublicURL: publicURL,
	}
}
