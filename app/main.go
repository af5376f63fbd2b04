package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"github.com/sushihentaime/contentfilter/internal/common"
	"github.com/sushihentaime/contentfilter/internal/content"
	"github.com/sushihentaime/contentfilter/internal/renderservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	filter        *content.MultiContentFilter
	baseURL       *url.URL
	cache         *common.Cache
	producer      common.MessageProducer
	broker        *common.MessageBroker
	renderService *renderservice.RenderService
}

func newApplication(cfg *Config, logger *slog.Logger) (*application, error) {
	filter, err := content.NewDefaultFilter(cfg.AllowedClasses, content.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("could not build content filter: %w", err)
	}

	if !common.PermittedValue(cfg.DefaultContentType, filter.MimeTypes()...) {
		return nil, fmt.Errorf("unknown DEFAULT_CONTENT_TYPE %q", cfg.DefaultContentType)
	}

	app := &application{
		config: cfg,
		logger: logger,
		filter: filter,
		cache:  common.NewCache(cfg.CacheTTL, cfg.CacheCleanup),
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || !u.IsAbs() {
			return nil, fmt.Errorf("invalid BASE_URL %q", cfg.BaseURL)
		}
		app.baseURL = u
	}

	return app, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app, err := newApplication(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize the application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The render queue is optional; without it the render endpoint answers 503.
	if cfg.MQHost != "" {
		URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
		broker, err := common.NewMessageBroker(URI)
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupContentExchange(broker)
		if err != nil {
			logger.Error("failed to setup the content exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		app.broker = broker
		app.producer = broker
		app.renderService = renderservice.NewRenderService(broker, broker, renderservice.NewRenderer(app.filter, cfg.ExcerptWidth), logger)

		app.renderService.RenderContent()
		defer app.renderService.Close()
	}

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
