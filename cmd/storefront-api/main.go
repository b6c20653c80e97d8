package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/catalog"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/httpapi"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/orders"
	"github.com/Mahiagarwal-09/ecommerce-website/internal/payment"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/text/currency"
)

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          int
	DBUser          string
	DBPassword      string
	DBName          string
	MigrationsDir   string
	KafkaBrokers    []string
	AdminToken      string
	Currency        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnvInt("DB_PORT", 5432),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "storefront"),
		MigrationsDir:   getEnv("MIGRATIONS_DIR", "internal/orders/migrations"),
		KafkaBrokers:    splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
		AdminToken:      getEnv("ADMIN_TOKEN", ""),
		Currency:        getEnv("CURRENCY", "INR"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	cfg := loadConfig()

	unit, err := domain.ParseCurrency(cfg.Currency)
	if err != nil {
		log.Fatalf("invalid CURRENCY: %v", err)
	}

	creds := &orders.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsDir,
	}

	repo, err := orders.NewRepository(creds)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	var publisher orders.Publisher = orders.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := orders.NewKafkaPublisher("order-events", cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	store := catalog.NewMemoryStore()
	seedCatalog(store, unit)

	service := orders.NewService(repo, store, payment.NewGateway("pi"), publisher, unit)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Service:        service,
		Catalog:        store,
		Currency:       unit,
		AdminToken:     cfg.AdminToken,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// seedCatalog loads the starter shirt range so a fresh instance is browsable.
func seedCatalog(store *catalog.MemoryStore, unit currency.Unit) {
	ctx := context.Background()

	seeds := []domain.Product{
		{
			Name:   "Classic White Oxford Shirt",
			Price:  domain.NewMoney(99900, unit),
			Images: []string{"/images/classic-white-oxford.jpg"},
			Stock:  50,
			Sizes:  []string{"S", "M", "L", "XL"},
			Colors: []string{"White"},
		},
		{
			Name:   "Indigo Denim Shirt",
			Price:  domain.NewMoney(129900, unit),
			Images: []string{"/images/indigo-denim.jpg"},
			Stock:  35,
			Sizes:  []string{"M", "L", "XL"},
			Colors: []string{"Blue", "Black"},
		},
		{
			Name:   "Linen Summer Shirt",
			Price:  domain.NewMoney(149900, unit),
			Images: []string{"/images/linen-summer.jpg"},
			Stock:  20,
			Sizes:  []string{"S", "M", "L"},
			Colors: []string{"Beige", "Olive"},
		},
	}

	for _, product := range seeds {
		if _, err := store.CreateProduct(ctx, product); err != nil {
			log.Printf("failed to seed product %q: %v", product.Name, err)
		}
	}
}
