// file: cmd/venue/main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/joripage/venue-engine/pkg/config"
	"github.com/joripage/venue-engine/pkg/eventlog"
	"github.com/joripage/venue-engine/pkg/logging"
	"github.com/joripage/venue-engine/pkg/priceoracle"
	"github.com/joripage/venue-engine/pkg/venue"
	"github.com/joripage/venue-engine/pkg/venue/riskrule"
)

// main wires a Venue and holds it open for embedding drivers to attach
// to; the core itself has no CLI, RPC, or wire surface (spec §6), so
// there is nothing to serve here besides pprof for operational
// visibility.
func main() {
	configPath := flag.String("config", "./config/venue.yaml", "path to venue config")
	flag.Parse()

	go func() {
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			zap.S().Warnf("pprof listener stopped: %v", err)
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		zap.S().Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := buildVenue(ctx, cfg); err != nil {
		zap.S().Fatalf("failed to build venue: %v", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("%s venue started. Press Ctrl+C to exit.\n", cfg.ServiceName)

	<-sigs
	fmt.Println("shutting down...")
	cancel()
	fmt.Println("exited cleanly.")
}

func buildVenue(ctx context.Context, cfg *config.AppConfig) (*venue.Venue, error) {
	var rules []riskrule.Rule
	if len(cfg.Venue.TickSizes) > 0 {
		rules = append(rules, riskrule.NewTickSizeRule(cfg.Venue.TickSizes))
	}
	var collar *riskrule.PriceCollarRule
	if !cfg.Venue.PriceCollarBand.IsZero() {
		collar = riskrule.NewPriceCollarRule(cfg.Venue.PriceCollarBand)
		rules = append(rules, collar)
	}
	checker := riskrule.NewChecker(rules...)

	var feed *priceoracle.Oracle
	if cfg.PriceOracle != nil {
		var err error
		feed, err = priceoracle.Connect(cfg.PriceOracle)
		if err != nil {
			return nil, fmt.Errorf("connect price oracle: %w", err)
		}
	}

	log := eventlog.New()
	logger := logging.NewLogger(logging.LogLevel(parseLogLevel(cfg.LogLevel)))

	var v *venue.Venue
	if feed != nil {
		v = venue.New(cfg.Venue.AllowedSymbols, cfg.Venue.InitialCash, checker, log, feed, logger)
	} else {
		v = venue.New(cfg.Venue.AllowedSymbols, cfg.Venue.InitialCash, checker, log, nil, logger)
	}

	if collar != nil && feed != nil {
		go refreshPriceCollar(ctx, feed, collar, cfg.Venue.AllowedSymbols)
	}

	return v, nil
}

// parseLogLevel maps the config's log_level string to a zap level, falling
// back to Info on anything unrecognized rather than failing startup over a
// typo'd config value.
func parseLogLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return parsed
}

// refreshPriceCollar keeps the collar rule's per-symbol reference price
// current by polling the oracle on a fixed interval. Without this,
// PriceCollarRule's reference prices would never be set outside a test
// and every order would pass the collar unconstrained.
func refreshPriceCollar(ctx context.Context, feed *priceoracle.Oracle, collar *riskrule.PriceCollarRule, symbols []string) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, symbol := range symbols {
				if price, ok := feed.CurrentPrice(ctx, symbol); ok {
					collar.SetReference(symbol, price)
				}
			}
		}
	}
}
