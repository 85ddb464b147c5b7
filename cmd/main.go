package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-currency-converter/docs"
	"github.com/sbilibin2017/gw-currency-converter/internal/facades"
	"github.com/sbilibin2017/gw-currency-converter/internal/handlers"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/middlewares"
	"github.com/sbilibin2017/gw-currency-converter/internal/repositories"
	"github.com/sbilibin2017/gw-currency-converter/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const (
	cacheBackendMemory = "memory"
	cacheBackendRedis  = "redis"

	redisKeyPrefix  = "gw-currency-converter:"
	shutdownTimeout = 10 * time.Second
)

// config is the application configuration read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	AppEnv   string
	LogLevel string

	NBUURL     string
	NBUTimeout time.Duration

	BaseCurrency string

	CacheBackend     string
	CacheTTL         time.Duration
	CacheCheckPeriod time.Duration

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	CORSAllowedOrigins []string
}

func (c config) development() bool {
	return c.AppEnv == "development"
}

// @title gw-currency-converter API
// @version 1.0.0
// @description Currency rates and conversion backed by the NBU daily feed
// @host localhost:3001
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file, if present, and
// returns the application, upstream, cache, Redis and CORS configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getSeconds := func(key, defaultValue string) (time.Duration, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return time.Duration(n) * time.Second, nil
	}
	getInt := func(key, defaultValue string) (int, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("PORT", "3001")
	cfg.AppEnv = getEnv("APP_ENV", "production")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// Upstream config
	cfg.NBUURL = getEnv("NBU_API_URL", facades.DefaultNBUURL)
	if cfg.NBUTimeout, err = getSeconds("NBU_TIMEOUT_SECOND", "10"); err != nil {
		return
	}
	cfg.BaseCurrency = strings.ToUpper(getEnv("BASE_CURRENCY", services.DefaultBaseCurrency))

	// Cache config
	cfg.CacheBackend = strings.ToLower(getEnv("CACHE_BACKEND", cacheBackendMemory))
	if cfg.CacheBackend != cacheBackendMemory && cfg.CacheBackend != cacheBackendRedis {
		err = fmt.Errorf("CACHE_BACKEND: unsupported value %q", cfg.CacheBackend)
		return
	}
	if cfg.CacheTTL, err = getSeconds("CACHE_TTL_SECOND", "86400"); err != nil {
		return
	}
	if cfg.CacheCheckPeriod, err = getSeconds("CACHE_CHECK_PERIOD_SECOND", "600"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// CORS config
	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return
}

// run initializes the logger, cache, upstream facade, metrics and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.development()); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel, "env", cfg.AppEnv)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Initialize cache
	cache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Initialize services
	nbu := facades.NewNBURatesHTTPFacade(cfg.NBUURL, cfg.NBUTimeout)
	svc := services.NewCurrencyService(nbu, cache,
		services.WithCacheTTL(cfg.CacheTTL),
		services.WithBaseCurrency(cfg.BaseCurrency, ""),
		services.WithRecorder(m),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           newRouter(svc, m, reg, cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newCache builds the configured snapshot store. The memory janitor stops with ctx.
func newCache(ctx context.Context, cfg config) (services.Cache, func(), error) {
	if cfg.CacheBackend == cacheBackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis connection error: %w", err)
		}
		logger.Log.Infow("using redis cache", "addr", rdb.Options().Addr, "db", cfg.RedisDB)
		return repositories.NewRedisCacheRepository(rdb, redisKeyPrefix), func() { _ = rdb.Close() }, nil
	}

	mem := repositories.NewMemoryCacheRepository()
	go mem.RunJanitor(ctx, cfg.CacheCheckPeriod)
	logger.Log.Infow("using memory cache", "check_period", cfg.CacheCheckPeriod)
	return mem, func() {}, nil
}

// currencyService is everything the HTTP layer needs from the service.
type currencyService interface {
	handlers.RatesGetter
	handlers.ExchangeRateGetter
	handlers.Converter
	handlers.CurrencyLister
}

// newRouter wires middleware and routes.
func newRouter(svc currencyService, m *metrics.Metrics, gatherer prometheus.Gatherer, cfg config) http.Handler {
	dev := cfg.development()

	r := chi.NewRouter()
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.Recoverer(dev))
	r.Use(middlewares.MetricsMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middlewares.RequestIDHeader},
		ExposedHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.NotFound)

	r.Get("/ping", handlers.NewPingHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/rates", handlers.NewGetRatesHandler(svc, dev))
		r.With(middlewares.ValidateCurrencyCodes).
			Get("/rates/{from}/{to}", handlers.NewGetExchangeRateHandler(svc, dev))
		r.With(middlewares.ValidateConversion).
			Post("/convert", handlers.NewConvertHandler(svc, middlewares.GetConversionRequest, dev))
		r.Get("/currencies", handlers.NewGetCurrenciesHandler(svc, dev))
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}
