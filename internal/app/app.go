package app

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	httpapi "github.com/yemsy26/comercio-fenix-v1/internal/api/http"
	authfirebase "github.com/yemsy26/comercio-fenix-v1/internal/auth/firebase"
	"github.com/yemsy26/comercio-fenix-v1/internal/config"
	firestorerepo "github.com/yemsy26/comercio-fenix-v1/internal/repository/firestore"
	"github.com/yemsy26/comercio-fenix-v1/internal/service"
	platformlogging "github.com/yemsy26/comercio-fenix-v1/pkg/logging"
	platformobservability "github.com/yemsy26/comercio-fenix-v1/pkg/observability"
	platformshutdown "github.com/yemsy26/comercio-fenix-v1/pkg/shutdown"
)

// App содержит все зависимости для запуска и корректного shutdown Stock Service
type App struct {
	logger      *zap.Logger
	httpServer  *http.Server
	shutdownMgr *platformshutdown.Manager
	wg          sync.WaitGroup
}

// Build создаёт и настраивает все зависимости Stock Service
// SDK клиенты создаются здесь один раз и передаются вниз явными handle,
// никакого неявного глобального состояния
func Build(cfg config.Config) (*App, error) {
	const op = "app.Build"

	// Создаём logger
	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "stock",
		Env:         string(cfg.AppEnv),
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("op", op))
	logger.Info("Building Stock service", zap.String("http_addr", cfg.HTTPAddr))

	// OpenTelemetry
	otelShutdown, err := platformobservability.Init(context.Background(), platformobservability.Config{
		Enabled:               cfg.OTelEnabled,
		OTLPEndpoint:          cfg.OTelEndpoint,
		SamplingRatio:         cfg.OTelSamplingRatio,
		ServiceName:           "stock",
		DeploymentEnvironment: string(cfg.AppEnv),
	})
	if err != nil {
		return nil, err
	}

	// Инициализируем Firebase app
	logger.Info("Initializing Firebase app", zap.String("project_id", cfg.FirebaseProjectID))
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	fbApp, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: cfg.FirebaseProjectID,
	}, opts...)
	if err != nil {
		return nil, err
	}

	// Auth клиент для проверки ID-токенов
	authClient, err := fbApp.Auth(context.Background())
	if err != nil {
		return nil, err
	}

	// Firestore клиент для товаров
	firestoreClient, err := fbApp.Firestore(context.Background())
	if err != nil {
		return nil, err
	}
	logger.Info("Firebase clients initialized")

	// Создаём Firestore репозиторий
	productRepo := firestorerepo.NewRepository(firestoreClient, cfg.ProductsCollection)

	// Создаём service слой
	stockService := service.NewStockService(logger, productRepo)

	// Создаём verifier для auth middleware
	verifier := authfirebase.NewVerifier(authClient)

	// Создаём HTTP handler
	handler := httpapi.NewHandler(stockService, logger)

	// Функция readiness для health check
	// У Firestore нет дешёвого ping; сервис готов, как только клиенты созданы
	readiness := func() bool { return true }

	// Настраиваем роутер
	router := httpapi.NewRouter(handler, verifier, readiness, logger)

	// Создаём HTTP сервер
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Создаём shutdown manager
	shutdownMgr := platformshutdown.New(cfg.ShutdownTimeout, logger)

	// Регистрируем shutdown функции в обратном порядке выполнения
	shutdownMgr.Add("otel", otelShutdown)
	shutdownMgr.Add("firestore_client", platformshutdown.CloseFirestore(firestoreClient))
	shutdownMgr.Add("http_server", platformshutdown.ShutdownHTTPServer(httpServer))

	return &App{
		logger:      logger,
		httpServer:  httpServer,
		shutdownMgr: shutdownMgr,
	}, nil
}

// Run запускает сервис и блокируется до получения сигнала shutdown
func (a *App) Run() error {
	defer platformlogging.Sync(a.logger)

	a.logger.Info("Starting Stock service", zap.String("addr", a.httpServer.Addr))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Ожидаем сигнал и выполняем shutdown
	a.shutdownMgr.Wait()

	a.wg.Wait()
	a.logger.Info("Stock service stopped")
	return nil
}
