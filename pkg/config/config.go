// file: pkg/config/config.go

package config

import (
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/joripage/venue-engine/pkg/priceoracle"
)

// VenuePolicy carries the choices spec §7 leaves to the implementer:
// whether the venue auto-creates books for unknown symbols, and the
// per-symbol risk parameters checked before an order reaches a book.
type VenuePolicy struct {
	// AllowedSymbols, when non-empty, is the closed set of symbols the
	// venue accepts; a submit for any other symbol is UnknownSymbol.
	// Empty means auto-create: any symbol is accepted on first submit.
	AllowedSymbols []string `yaml:"allowed_symbols"`

	TickSizes map[string]decimal.Decimal `yaml:"tick_sizes"`

	// PriceCollarBand is a fraction (0.10 = 10%) either side of a
	// symbol's reference price; zero disables the collar entirely.
	PriceCollarBand decimal.Decimal `yaml:"price_collar_band"`

	InitialCash decimal.Decimal `yaml:"initial_cash"`
}

type AppConfig struct {
	ServiceName string              `yaml:"service_name"`
	LogLevel    string              `yaml:"log_level"`
	Venue       VenuePolicy         `yaml:"venue"`
	PriceOracle *priceoracle.Config `yaml:"price_oracle"`
}

// Load reads config from filePath, falling back to CONFIG_FILE, and
// expands ${VAR} references against the process environment before
// parsing — the same two-step the venue's other services use so a single
// yaml file can be shared across environments.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	sugar := zap.S().With("func", "config.Load", "filePath", filePath)
	sugar.Debug("loading config")

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("failed to read config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(configBytes, cfg); err != nil {
		sugar.Error("failed to parse config file")
		return nil, err
	}

	sugar.Debugf("config: %+v", cfg)
	return cfg, nil
}
