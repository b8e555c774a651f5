// Package main - entry point for the add-on catalog dashboard server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"addon-catalog/adapters/fetch"
	"addon-catalog/api"
	"addon-catalog/internal/config"
	"addon-catalog/internal/logging"
	"addon-catalog/internal/version"
)

func main() {
	cfgFile := flag.String("config", "", "config file (JSON or HCL)")
	addr := flag.String("addr", "", "server address (default from config)")
	url := flag.String("url", "", "default catalog URL (default from config)")
	cache := flag.String("cache", "", "catalog cache path (default from config)")
	flag.Parse()

	if err := run(*cfgFile, *addr, *url, *cache); err != nil {
		logging.Error("server failed", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func run(cfgFile, addr, url, cache string) error {
	cfg := config.Get()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Printf("Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	if addr == "" {
		addr = cfg.ListenAddr
	}
	if url == "" {
		url = cfg.CatalogURL
	}
	if cache == "" {
		cache = cfg.CachePath
	}

	fetch.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(version.Version, url, cache),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	logging.Info("dashboard listening",
		zap.String("addr", addr),
		zap.String("catalog_url", url),
	)
	return server.ListenAndServe()
}
