package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/cmd/cofferapi/client"
	"github.com/boardvault/coffer/cmd/cofferapi/handlers"
	"github.com/caarlos0/env/v6"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type configuration struct {
	HTTP           string   `env:"HTTP" envDefault:":8000"`
	Tendermint     string   `env:"TENDERMINT" envDefault:"http://localhost:26657"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	CacheSize      int      `env:"CACHE_SIZE" envDefault:"1024"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func main() {
	var conf configuration
	if err := env.Parse(&conf); err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %s\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %s\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(conf, logger); err != nil {
		logger.Fatal("cofferapi stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}

func run(conf configuration, logger *zap.Logger) error {
	tm := client.NewHTTPTendermint(conf.Tendermint)

	router, err := handlers.NewRouter(tm, logger, conf.CacheSize, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	c := cors.New(cors.Options{
		AllowedOrigins: conf.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})

	logger.Info("Starting cofferapi",
		zap.String("version", coffer.Version()),
		zap.String("http", conf.HTTP),
		zap.String("tendermint", conf.Tendermint),
	)
	if err := http.ListenAndServe(conf.HTTP, c.Handler(router)); err != nil {
		return fmt.Errorf("http server: %s", err)
	}
	return nil
}
