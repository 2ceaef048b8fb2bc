package bootstrap

import (
	"context"
	"fmt"

	"lesson-notes-be/internal/config"
	"lesson-notes-be/internal/controller"
	"lesson-notes-be/internal/pkg/logger"
	"lesson-notes-be/internal/service"
	"lesson-notes-be/internal/websocket"
	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/llm"
	"lesson-notes-be/pkg/llm/factory"
	pktNats "lesson-notes-be/pkg/nats"
	"lesson-notes-be/pkg/render"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	ExportController    controller.IExportController
	KnowledgeController controller.IKnowledgeController
	TablesController    controller.ITablesController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	eventLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var mirror service.EventMirror
	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL, sysLogger)
		if err != nil {
			// Mirroring is optional; events still reach the events log.
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, event mirroring disabled", map[string]interface{}{
				"url":   cfg.Events.NatsURL,
				"error": err.Error(),
			})
		} else {
			mirror = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.Topic, eventLogger, sysLogger, mirror)

	// 3. Completion Gateway
	provider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider:        cfg.LLM.Provider,
		Model:           cfg.LLM.Model,
		MaxTokens:       cfg.LLM.MaxTokens,
		GoogleAPIKey:    cfg.LLM.GoogleAPIKey,
		OpenAIAPIKey:    cfg.LLM.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.LLM.OpenAIBaseURL,
		AnthropicAPIKey: cfg.LLM.AnthropicAPIKey,
		OllamaBaseURL:   cfg.LLM.OllamaBaseURL,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("init completion provider: %w", err)
	}
	provider = llm.WithLogging(provider, sysLogger)
	sysLogger.Info("BOOTSTRAP", "Completion provider ready", map[string]interface{}{
		"provider": cfg.LLM.Provider,
		"model":    provider.ModelID(),
	})

	// 4. Domain
	loader := knowledge.NewLoader(cfg.Knowledge.Dir, sysLogger)
	renderer := render.NewRenderer(render.Options{
		MathCSSPath:   cfg.Export.MathCSSPath,
		WatermarkPath: cfg.Export.WatermarkPath,
	}, render.NewChromePrinter(cfg.Export.ChromePath), sysLogger)

	// 5. Services
	chatService := service.NewChatService(loader, provider, publisherService, sysLogger, cfg.Knowledge.MaxChars, cfg.LLM.ChatTimeout)
	exportService := service.NewExportService(renderer, publisherService, sysLogger, cfg.Export.Timeout)
	knowledgeService := service.NewKnowledgeService(loader)
	tablesService := service.NewTablesService(sysLogger)

	// 6. WebSocket Hub
	c.WebSocketHub = websocket.NewHub(sysLogger)

	// 7. Controllers
	c.ChatController = controller.NewChatController(chatService, c.WebSocketHub, sysLogger)
	c.ExportController = controller.NewExportController(exportService)
	c.KnowledgeController = controller.NewKnowledgeController(knowledgeService)
	c.TablesController = controller.NewTablesController(tablesService)

	return c, nil
}

// Close releases the event bus and the NATS connection.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
