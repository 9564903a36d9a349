package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/willjrcristo/go-stripe-pro/docs" // Importa a documentação gerada pelo swag

	// Nossos pacotes internos da aplicação!
	"github.com/willjrcristo/go-stripe-pro/internal/config"
	"github.com/willjrcristo/go-stripe-pro/internal/database"
	httphandler "github.com/willjrcristo/go-stripe-pro/internal/handler/http"
	"github.com/willjrcristo/go-stripe-pro/internal/payments"
	"github.com/willjrcristo/go-stripe-pro/internal/repository"
	"github.com/willjrcristo/go-stripe-pro/internal/service"
)

// @title           Bass Note Master Pro API
// @version         1.0
// @description     Backend que serve o jogo e intermedia a compra do plano Pro via Stripe Checkout.
//
// @contact.name   Will Cristo
// @contact.url    https://linkedin.com/in/willjrcristo
// @contact.email  willjrcristo@gmail.com
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @host      localhost:3000
// @BasePath  /
func main() {
	// --- 1. CONFIGURAÇÃO DO LOGGER ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	slog.Info("🚀 Iniciando o backend do Bass Note Master Pro...")

	// --- 2. CONFIGURAÇÃO DO AMBIENTE ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Erro ao carregar a configuração", "error", err)
		os.Exit(1)
	}

	// --- 3. REPOSITÓRIO DE USUÁRIOS ---
	// O backend de armazenamento é escolhido na configuração: SQLite (durável)
	// ou memória (volátil, só para demonstração).
	var usuarioRepo repository.UsuarioRepository
	switch cfg.StoreBackend {
	case config.StoreMemory:
		usuarioRepo = repository.NewMemoryRepository()
		slog.Warn("⚠️  Repositório EM MEMÓRIA: o status Pro dos usuários será perdido no restart")
	default:
		db, err := database.Connect(cfg.DatabasePath)
		if err != nil {
			slog.Error("Erro ao conectar no banco de dados", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("Erro ao aplicar as migrações", "error", err)
			os.Exit(1)
		}

		usuarioRepo = repository.NewSQLiteRepository(db)
		slog.Info("💾 Banco de dados conectado e migrado", "path", cfg.DatabasePath)
	}

	// --- 4. INJEÇÃO DE DEPENDÊNCIAS (WIRING) ---
	// Config -> Gateway/Repository -> Service -> Handler

	gateway := payments.NewStripeGateway(cfg.StripeSecretKey, payments.CatalogItem{
		Name:        cfg.ProductName,
		Description: cfg.ProductDescription,
		PriceCents:  cfg.ProductPriceCents,
		Currency:    cfg.ProductCurrency,
	}, cfg.StripeTimeout)

	proService := service.NewProService(usuarioRepo, gateway, cfg.LiveWebsiteURL)
	proHandler := httphandler.NewProHandler(proService)
	slog.Info("Camadas de gateway, serviço e handler inicializadas")

	// --- 5. CONFIGURAÇÃO DO ROTEADOR E ROTAS ---
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(prometheusMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.LiveWebsiteURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-Id"},
		AllowCredentials: true,
	}))

	// Rota de Health Check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Métricas no formato Prometheus
	r.Handle("/metrics", promhttp.Handler())

	// Documentação Swagger em /swagger/index.html
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rotas do fluxo Pro (status, checkout e verificação)
	proHandler.RegisterRoutes(r)
	slog.Info("🛰️  Rotas do fluxo Pro registradas")

	// Página do jogo e demais arquivos estáticos; o FileServer já entrega o
	// public/index.html na raiz.
	r.Handle("/*", http.FileServer(http.Dir("./public")))

	// --- 6. INICIALIZAÇÃO DO SERVIDOR HTTP ---
	addr := ":" + cfg.Port
	slog.Info("✅ Servidor pronto para receber requisições", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Erro ao iniciar o servidor", "error", err)
		os.Exit(1)
	}
}
