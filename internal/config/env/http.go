package env

import (
	"os"
	"strings"

	"prize_wheel/internal/config"
)

const (
	httpAddressEnvName   = "HTTP_ADDRESS"
	publicBaseURLEnvName = "PUBLIC_BASE_URL"

	defaultHTTPAddress = ":8080"
)

type httpConfig struct {
	address       string
	publicBaseURL string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	address := os.Getenv(httpAddressEnvName)
	if len(address) == 0 {
		address = defaultHTTPAddress
	}

	return &httpConfig{
		address:       address,
		publicBaseURL: strings.TrimRight(os.Getenv(publicBaseURLEnvName), "/"),
	}, nil
}

func (cfg *httpConfig) Address() string {
	return cfg.address
}

// PublicBaseURL префикс для ссылок на игру, может быть пустым
func (cfg *httpConfig) PublicBaseURL() string {
	return cfg.publicBaseURL
}
