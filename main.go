package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	accountsapp "github.com/stiwari2004/numerology/internal/accounts/application"
	accountsrepo "github.com/stiwari2004/numerology/internal/accounts/infrastructure/postgres"
	accountshttp "github.com/stiwari2004/numerology/internal/accounts/interfaces/http"
	"github.com/stiwari2004/numerology/internal/audit"
	"github.com/stiwari2004/numerology/internal/auth"
	numerologyapp "github.com/stiwari2004/numerology/internal/numerology/application"
	numerologyhttp "github.com/stiwari2004/numerology/internal/numerology/interfaces/http"
	"github.com/stiwari2004/numerology/internal/observability/metrics"
	tenancyrepo "github.com/stiwari2004/numerology/internal/tenancy/infrastructure/postgres"
	tenancyhttp "github.com/stiwari2004/numerology/internal/tenancy/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	engineCfg, err := numerologyapp.LoadConfig()
	if err != nil {
		logger.Fatalf("engine config error: %v", err)
	}
	engine, err := numerologyapp.NewService(engineCfg, logger)
	if err != nil {
		logger.Fatalf("engine error: %v", err)
	}
	numerologyHandler, err := numerologyhttp.NewHandler(engine, auditRepo)
	if err != nil {
		logger.Fatalf("numerology handler error: %v", err)
	}
	exportHandler, err := numerologyhttp.NewExportHandler(engine, auditRepo)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}

	tenantRepo := tenancyrepo.NewTenantRepository(db)
	tenantResolver, err := tenancyhttp.NewResolver(tenantRepo, cfg.BaseDomain, splitCSV(cfg.SkipSubdomains), logger)
	if err != nil {
		logger.Fatalf("tenant resolver error: %v", err)
	}
	tenantHandler, err := tenancyhttp.NewHandler(tenantRepo)
	if err != nil {
		logger.Fatalf("tenant handler error: %v", err)
	}

	userRepo := accountsrepo.NewUserRepository(db)
	sessionRepo := accountsrepo.NewSessionRepository(db)
	accountService, err := accountsapp.NewService(userRepo, sessionRepo, tenantRepo, []byte(cfg.JWTSecret), cfg.TokenTTL, logger)
	if err != nil {
		logger.Fatalf("accounts service error: %v", err)
	}
	authHandler, err := accountshttp.NewAuthHandler(accountService, auditRepo)
	if err != nil {
		logger.Fatalf("auth handler error: %v", err)
	}
	usersHandler, err := accountshttp.NewUsersHandler(accountService, auditRepo)
	if err != nil {
		logger.Fatalf("users handler error: %v", err)
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for tick := range ticker.C {
			if err := sessionRepo.DeleteExpired(context.Background(), tick.UTC()); err != nil {
				logger.Printf("session cleanup error: %v", err)
			}
		}
	}()

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics", "/api/v1/auth/login", "/api/v1/auth/register"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/numerology/calculate", numerologyHandler)
	mux.Handle("/api/v1/numerology/monthly-grids", numerologyHandler)
	mux.Handle("/api/v1/numerology/export.xlsx", exportHandler)
	mux.Handle("/api/v1/numerology/export.pdf", exportHandler)
	mux.Handle("/api/v1/auth/register", authHandler)
	mux.Handle("/api/v1/auth/login", authHandler)
	mux.Handle("/api/v1/auth/me", authHandler)
	mux.Handle("/api/v1/users", usersHandler)
	mux.Handle("/api/v1/users/", usersHandler)
	mux.Handle("/api/v1/tenant", tenantHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := loggingMiddleware(tenantResolver.Wrap(authMiddleware.Wrap(mux)), logger)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL    string
	HTTPAddr       string
	JWTSecret      string
	TokenTTL       time.Duration
	BaseDomain     string
	SkipSubdomains string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:    getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:      getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		TokenTTL:       getenvDuration("TOKEN_TTL", 24*time.Hour),
		BaseDomain:     getenvDefault("SUBDOMAIN_BASE_DOMAIN", ""),
		SkipSubdomains: getenvDefault("SKIP_SUBDOMAINS", "admin,www"),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
