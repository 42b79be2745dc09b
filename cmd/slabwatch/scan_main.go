package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/slabwatch/slabwatch/internal/cache"
	"github.com/slabwatch/slabwatch/internal/config"
	"github.com/slabwatch/slabwatch/internal/domain"
	"github.com/slabwatch/slabwatch/internal/metrics"
	"github.com/slabwatch/slabwatch/internal/notify"
	"github.com/slabwatch/slabwatch/internal/parse"
	"github.com/slabwatch/slabwatch/internal/refcatalog"
	"github.com/slabwatch/slabwatch/internal/resolve"
	"github.com/slabwatch/slabwatch/internal/resolve/sources"
	"github.com/slabwatch/slabwatch/internal/scan"
)

func runScan(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	inputPath, _ := cmd.Flags().GetString("input")
	pricesPath, _ := cmd.Flags().GetString("prices")
	sport, _ := cmd.Flags().GetString("sport")
	minScore, _ := cmd.Flags().GetInt("min-score")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if minScore >= 0 {
		cfg.Pipeline.DealThreshold = minScore
	}

	catalog, err := refcatalog.Load(cfg.RefCatalogPath)
	if err != nil {
		// A degraded parser mismatches identities; refuse to run.
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsAddr, reg); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	store := buildCacheStore(cfg)
	srcs, err := buildSources(cfg, catalog, pricesPath)
	if err != nil {
		return err
	}
	resolver := resolve.New(store, m, srcs...)

	var notifier scan.Notifier
	if cfg.Telegram.Token != "" {
		tn, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			return err
		}
		notifier = tn
	}

	pipeline := scan.New(catalog, resolver, nil, nil, notifier, m, scan.Config{
		BatchSize:     cfg.Pipeline.BatchSize,
		DealThreshold: cfg.Pipeline.DealThreshold,
	})

	listings, err := loadListings(inputPath)
	if err != nil {
		return err
	}
	log.Info().Int("listings", len(listings)).Str("sport", sport).Msg("scanning batch")

	results := pipeline.ScanBatch(ctx, listings, domain.IdentityHints{Sport: sport})

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	deals := 0
	for _, r := range results {
		if r.Score >= cfg.Pipeline.DealThreshold {
			deals++
		}
	}
	if err := out.Encode(results); err != nil {
		return err
	}
	log.Info().Int("scored", len(results)).Int("deals", deals).Msg("scan complete")
	return nil
}

func runCatalogValidate(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if _, err := refcatalog.Load(cfg.RefCatalogPath); err != nil {
		return err
	}
	fmt.Println("reference catalog OK")
	return nil
}

func buildCacheStore(cfg *config.Config) cache.Store {
	if cfg.Cache.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		return cache.NewRedisCache(client, cfg.Cache.TTL())
	}
	return cache.NewTTLCache(cfg.Cache.TTL(), cfg.Cache.MaxEntries)
}

func buildSources(cfg *config.Config, catalog *refcatalog.Catalog, pricesPath string) ([]resolve.Source, error) {
	var srcs []resolve.Source

	if cfg.Sources.PostgresDSN != "" {
		pg, err := sources.OpenPostgresCatalog(cfg.Sources.PostgresDSN, catalog)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, pg)
	} else {
		mem := sources.NewMemoryCatalog()
		if pricesPath != "" {
			entries, err := loadPriceProducts(pricesPath, catalog)
			if err != nil {
				return nil, err
			}
			mem.Replace(entries)
			log.Info().Int("entries", len(entries)).Msg("local price catalog loaded")
		}
		srcs = append(srcs, mem)
	}

	if cfg.Sources.ExternalAPIEnabled {
		searcher := sources.NewHTTPProductSearcher(cfg.Sources.ExternalAPIURL, nil)
		ext := sources.NewExternalCatalog(searcher, catalog)
		srcs = append(srcs, sources.Guard(ext, cfg.Sources.Throttle()))
		log.Info().Str("url", cfg.Sources.ExternalAPIURL).Msg("external catalog API source enabled")
	}
	return srcs, nil
}

func loadListings(path string) ([]domain.Listing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings: %w", err)
	}
	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to parse listings: %w", err)
	}
	return listings, nil
}

func loadPriceProducts(path string, catalog *refcatalog.Catalog) ([]domain.CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read price catalog: %w", err)
	}
	var products []domain.CatalogProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse price catalog: %w", err)
	}
	entries := make([]domain.CatalogEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, domain.CatalogEntry{
			ConsoleName:    p.ConsoleName,
			ProductName:    p.ProductName,
			ParsedIdentity: parse.Product(p.ConsoleName, p.ProductName, catalog),
			Prices:         p.Prices,
			ProductURL:     p.ProductURL,
		})
	}
	return entries, nil
}
