// file: pkg/priceoracle/priceoracle.go

package priceoracle

import (
	"context"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config carries connection parameters for the backing redis instance.
// Field shape mirrors the venue's other infra configs so it drops
// straight into the same yaml document.
type Config struct {
	ConnectionURL       string `yaml:"connection_url"`
	PoolSize            int    `yaml:"pool_size"`
	DialTimeoutSeconds  int    `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `yaml:"idle_timeout_seconds"`
	KeyPrefix           string `yaml:"key_prefix"`
}

// Oracle is the Venue's current_price accessor from spec §4.4: an opaque,
// read-only source the core consults for mark-to-market valuation. It is
// backed by redis so an external feed process can publish prices without
// the venue depending on how they got there.
type Oracle struct {
	client    *redis.Client
	keyPrefix string
}

// Connect dials redis, retrying with exponential backoff since the price
// feed is a separate process that may not be up yet when the venue starts.
func Connect(cfg *Config) (*Oracle, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, err
	}
	opts.PoolSize = cfg.PoolSize
	opts.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	opts.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	opts.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	opts.ConnMaxIdleTime = time.Duration(cfg.IdleTimeoutSeconds) * time.Second

	client := redis.NewClient(opts)

	boff := backoff.NewExponentialBackOff()
	err = backoff.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}, boff)
	if err != nil {
		return nil, err
	}

	zap.S().Debug("priceoracle: connected to redis")
	return &Oracle{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

// CurrentPrice returns the last published price for symbol, or false if
// the oracle has never seen a quote for it. It never blocks matching: a
// miss or a transient redis error both resolve to (zero, false), on the
// theory that a stale or absent mark should exclude a symbol from
// valuation rather than fail the caller.
func (o *Oracle) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, bool) {
	raw, err := o.client.Get(ctx, o.keyPrefix+symbol).Result()
	if err != nil {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		zap.S().Warnf("priceoracle: bad price %q for %s", raw, symbol)
		return decimal.Zero, false
	}
	return price, true
}

// Publish sets symbol's current price. Exists for seeding and for test
// harnesses that stand in for the external feed.
func (o *Oracle) Publish(ctx context.Context, symbol string, price decimal.Decimal) error {
	return o.client.Set(ctx, o.keyPrefix+symbol, price.String(), 0).Err()
}

func (o *Oracle) Close() error {
	return o.client.Close()
}
