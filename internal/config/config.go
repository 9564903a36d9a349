package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backends de armazenamento suportados para o status Pro dos usuários.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config agrega toda a configuração de runtime da API, carregada do ambiente.
type Config struct {
	// Credencial secreta da Stripe (sk_test_... ou sk_live_...).
	StripeSecretKey string

	// Timeout aplicado a cada chamada à Stripe (criação e busca de sessão).
	StripeTimeout time.Duration

	// Porta HTTP de escuta.
	Port string

	// URL pública do frontend — usada como origem permitida no CORS e como
	// fallback para as URLs de redirecionamento do checkout.
	LiveWebsiteURL string

	// Caminho do arquivo SQLite (ignorado quando StoreBackend == memory).
	DatabasePath string

	// Backend do repositório de usuários: "sqlite" (durável) ou "memory"
	// (volátil, apenas para demonstração — os dados somem no restart).
	StoreBackend string

	// Item fixo do catálogo vendido no checkout.
	ProductName        string
	ProductDescription string
	ProductPriceCents  int64
	ProductCurrency    string
}

// Load lê a configuração das variáveis de ambiente, aplicando defaults sensatos.
// Um arquivo .env na raiz do projeto é carregado se existir, mas é opcional.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		StripeTimeout:      time.Second * time.Duration(getInt("STRIPE_TIMEOUT_SECONDS", 15)),
		Port:               getEnv("PORT", "3000"),
		LiveWebsiteURL:     getEnv("LIVE_WEBSITE_URL", "http://localhost:8080"),
		DatabasePath:       getEnv("DATABASE_PATH", "./pro-users.db"),
		StoreBackend:       getEnv("STORE_BACKEND", StoreSQLite),
		ProductName:        getEnv("PRODUCT_NAME", "Bass Note Master Pro"),
		ProductDescription: getEnv("PRODUCT_DESCRIPTION", "Unlock all lessons and advanced game features."),
		ProductPriceCents:  getInt64("PRODUCT_PRICE_CENTS", 1999), // US$ 19,99
		ProductCurrency:    getEnv("PRODUCT_CURRENCY", "usd"),
	}

	cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("missing required environment variable: STRIPE_SECRET_KEY")
	}

	if cfg.StoreBackend != StoreSQLite && cfg.StoreBackend != StoreMemory {
		return Config{}, fmt.Errorf("STORE_BACKEND inválido: %q (esperado %q ou %q)",
			cfg.StoreBackend, StoreSQLite, StoreMemory)
	}

	if cfg.ProductPriceCents <= 0 {
		return Config{}, fmt.Errorf("PRODUCT_PRICE_CENTS deve ser positivo, recebido %d", cfg.ProductPriceCents)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return i
}
