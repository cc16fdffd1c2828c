package internal

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	logger_adapter "property-list-service/internal/adapters/logger"
	"property-list-service/internal/adapters/notifier"
	"property-list-service/internal/adapters/propertyfetcher"
	rabbitmq_adapter "property-list-service/internal/adapters/rabbitmq"
	"property-list-service/internal/adapters/rest"
	"property-list-service/internal/adapters/telegram"
	"property-list-service/internal/adapters/terminal"
	"property-list-service/internal/configs"
	"property-list-service/internal/constants"
	"property-list-service/internal/contextkeys"
	"property-list-service/internal/core/port"
	"property-list-service/internal/core/usecase"
	fluentlogger "property-list-service/pkg/fluent_logger"
	"property-list-service/pkg/rabbitmq/rabbitmq_common"
	"property-list-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/google/uuid"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *configs.AppConfig
	fetcher *propertyfetcher.PropertyFetcherAdapter

	baseLogger   port.LoggerPort
	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

// AppOptions - параметры запуска, приходящие из командной строки.
type AppOptions struct {
	EnvPath string
	// LogWriter - куда пишет stdout-логгер; для browse это stderr, чтобы не мешать выводу экрана
	LogWriter io.Writer
}

// NewApp загружает конфигурацию, поднимает логгеры и источник данных.
// Хосты (HTTP, Telegram, терминал) создаются в Serve и Browse.
func NewApp(opts AppOptions) (*App, error) {
	appConfig, err := configs.LoadConfig(opts.EnvPath)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   opts.LogWriter,
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИСТОЧНИК ДАННЫХ ---
	fetcher, err := propertyfetcher.NewPropertyFetcherAdapter(propertyfetcher.Config{
		BaseURL:     appConfig.Listing.BaseURL,
		Parallelism: appConfig.Listing.Parallelism,
	})
	if err != nil {
		appLogger.Error("Failed to create property fetcher", err, nil)
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, fmt.Errorf("failed to create property fetcher: %w", err)
	}
	appLogger.Info("Property fetcher initialized.", port.Fields{"base_url": appConfig.Listing.BaseURL})

	return &App{
		config:       appConfig,
		fetcher:      fetcher,
		baseLogger:   baseLogger,
		logger:       appLogger,
		fluentClient: fluentClient,
	}, nil
}

// Close освобождает ресурсы, созданные в NewApp.
func (a *App) Close() {
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// Browse показывает экран в терминале. В интерактивном режиме читает команды из in.
func (a *App) Browse(page int, interactive bool, in io.Reader, out io.Writer) error {
	if page < 1 {
		page = constants.InitialPage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	traceID := uuid.New().String()
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, a.baseLogger.WithFields(port.Fields{
		"component": "terminal",
		"trace_id":  traceID,
	}))

	screen := usecase.NewPropertyListScreen("terminal:"+traceID, a.fetcher, usecase.ScreenOptions{
		DefaultImageURL: constants.DefaultImagePath,
		InitialPage:     page,
	})

	browser := terminal.NewBrowser(screen, out)
	browser.Show(ctx)
	if !interactive {
		return nil
	}
	return browser.Run(ctx, in)
}

// Serve поднимает HTTP-хост и, если включен, Telegram-бота, и работает до сигнала.
func (a *App) Serve() error {
	// --- 1. УВЕДОМЛЕНИЯ И СОБЫТИЯ ---
	sseNotifier := notifier.NewSSENotifier(a.baseLogger)
	defer sseNotifier.Close()
	a.logger.Info("SSE Notifier initialized.", nil)

	screenOpts := usecase.ScreenOptions{
		Notifier:        sseNotifier,
		DefaultImageURL: constants.DefaultImagePath,
	}

	var (
		connManager *rabbitmq_common.ConnectionManager
		publisher   *rabbitmq_producer.Publisher
	)
	if a.config.RabbitMQ.Enabled {
		var err error
		connManager, publisher, screenOpts.Events, err = a.newPageEvents()
		if err != nil {
			return err
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ publisher", err, nil)
			}
			if err := connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
			}
		}()
	}

	// --- 2. ЯДРО ---
	registry := usecase.NewScreenRegistry(
		usecase.NewFetcherScreenFactory(a.fetcher, screenOpts),
		usecase.RegistryLimits{
			MaxScreens: a.config.Screens.MaxScreens,
			IdleTTL:    a.config.Screens.IdleTTL,
		},
	)
	a.logger.Info("Screen registry initialized.", port.Fields{
		"max_screens": a.config.Screens.MaxScreens,
		"idle_ttl":    a.config.Screens.IdleTTL.String(),
	})

	// --- 3. ХОСТЫ ---
	serverCfg := rest.ServerConfig{
		Port:               a.config.HTTP.Port,
		CORSAllowedOrigins: a.config.HTTP.CORSAllowedOrigins,
	}
	router := rest.NewRouter(serverCfg,
		rest.NewScreenHandler(registry),
		rest.NewPageHandler(registry),
		rest.NewEventsHandler(registry, sseNotifier),
		a.baseLogger,
	)
	apiServer := rest.NewServer(serverCfg, router, a.baseLogger)

	var bot *telegram.Bot
	if a.config.Telegram.Enabled {
		var err error
		bot, err = telegram.NewBot(a.config.Telegram.Token, a.config.Telegram.Debug, registry, a.baseLogger)
		if err != nil {
			a.logger.Error("Failed to create telegram bot", err, nil)
			return fmt.Errorf("failed to create telegram bot: %w", err)
		}
	}

	// --- 4. ЗАПУСК ---
	appCtx, cancelApp := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("Application shut down gracefully.", port.Fields{"screens_left": registry.Len()})
	}()

	errorsCh := make(chan error, 2)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.HTTP.Port})
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("HTTP server start error: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		registry.RunSweeper(contextkeys.ContextWithLogger(appCtx, a.logger), a.config.Screens.IdleTTL/2)
	}()

	if bot != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bot.Start(appCtx); err != nil {
				a.logger.Error("Telegram bot stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("telegram bot error: %w", err)
			} else {
				a.logger.Info("Telegram bot stopped gracefully.", nil)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	cancelApp()
	return runErr
}

// newPageEvents подключается к RabbitMQ и собирает публикацию событий screen.page_loaded.
func (a *App) newPageEvents() (*rabbitmq_common.ConnectionManager, *rabbitmq_producer.Publisher, port.PageEventsPort, error) {
	connManagerLogger := a.baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManager, err := rabbitmq_common.NewConnectionManager(
		rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger),
	)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, nil, nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             constants.PageEventsExchange,
		ExchangeType:             constants.PageEventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(a.baseLogger.WithFields(port.Fields{"component": "page_events_publisher"})),
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create page events publisher", err, nil)
		connManager.Close()
		return nil, nil, nil, fmt.Errorf("failed to create page events publisher: %w", err)
	}

	events, err := rabbitmq_adapter.NewPageEventsAdapter(publisher, constants.RoutingKeyPageLoaded)
	if err != nil {
		publisher.Close()
		connManager.Close()
		return nil, nil, nil, fmt.Errorf("failed to create page events adapter: %w", err)
	}
	a.logger.Info("Page events publisher initialized.", port.Fields{"exchange": constants.PageEventsExchange})

	return connManager, publisher, events, nil
}

func parseLogLevel(levelStr string) slog.Level {
	level, ok := logger_adapter.ParseLevel(levelStr)
	if !ok {
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
	}
	return level
}
