package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gopantry/config"
	"gopantry/internal/api/item"
	"gopantry/internal/api/router"
	"gopantry/internal/api/user"
	"gopantry/internal/pkg/cache"
	"gopantry/internal/pkg/database"
	"gopantry/internal/pkg/logger"
	"gopantry/internal/pkg/metrics"
	"gopantry/internal/pkg/notify"
	"gopantry/internal/pkg/token"
	"gopantry/internal/repository/itemrepo"
	"gopantry/internal/repository/userrepo"
	"gopantry/internal/service/itemservice"
	"gopantry/internal/service/userservice"
	"gopantry/internal/store/itemstore"
)

// loadRetryInterval é a espera entre tentativas da carga inicial do estoque.
const loadRetryInterval = 5 * time.Second

// @title GoPantry API
// @version 1.0
// @description Estoque da cozinha: itens, consumo, reposição e status derivado.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço GoPantry...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	configPath := flag.String("config", "", "arquivo de configuração opcional")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	appLog := logger.NewLogger(cfg.LogLevel)
	if zl, ok := appLog.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "port": cfg.Port})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infraestrutura ---
	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.DBTimeout)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer pool.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	var cacheClient cache.Client
	if redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout); err != nil {
		appLog.Warn("Redis indisponível; rate limit desativado.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		defer redisClient.Close()
		cacheClient = redisClient
		appLog.Info("Conexão Redis estabelecida.", nil)
	}

	// --- Estoque: Store -> Repository -> Service -> Handler ---
	store := itemstore.New()
	itemRepo := itemrepo.NewItemRepository(pool, cfg.DBTimeout, appLog)

	var opts []itemservice.Option
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		m := metrics.New(store.List)
		opts = append(opts, itemservice.WithRecorder(m))
		metricsHandler = m.Handler()
	}
	if cfg.TelegramEnabled() {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, appLog)
		if err != nil {
			appLog.Warn("Alertas do Telegram desativados.", map[string]interface{}{"error": err.Error()})
		} else {
			opts = append(opts, itemservice.WithNotifier(notifier))
		}
	}

	itemSvc := itemservice.NewService(store, itemRepo, appLog, opts...)
	itemHandler := item.NewHandler(itemSvc, item.NewRestockDrafts(), appLog)

	// --- Membros ---
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	userRepo := userrepo.NewUserRepository(pool, cfg.DBTimeout, appLog)
	userSvc := userservice.NewService(userRepo, tokenSvc, appLog, cfg.AdminEmail)
	userHandler := user.NewHandler(userSvc, appLog)

	// A carga inicial roda em segundo plano; até concluir, /ready responde 503.
	go loadInventory(ctx, itemSvc, appLog)

	handler := router.NewRouter(router.Deps{
		ItemHandler:     itemHandler,
		UserHandler:     userHandler,
		TokenSvc:        tokenSvc,
		Readiness:       itemSvc,
		Logger:          appLog,
		Cache:           cacheClient,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitWindow: cfg.RateLimitPeriod,
		Metrics:         metricsHandler,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("Servidor GoPantry ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}

// loadInventory tenta a carga inicial até conseguir ou o contexto acabar.
func loadInventory(ctx context.Context, svc *itemservice.Service, log logger.Logger) {
	for {
		err := svc.Load(ctx)
		if err == nil {
			return
		}
		log.Warn("Carga inicial falhou; nova tentativa agendada.", map[string]interface{}{"retry_in": loadRetryInterval.String()})

		select {
		case <-ctx.Done():
			return
		case <-time.After(loadRetryInterval):
		}
	}
}
