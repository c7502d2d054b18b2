package bootstrap

import (
	"log"
	"net/http"

	"research-assistant-be/internal/config"
	"research-assistant-be/internal/controller"
	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/internal/repository/implementation"
	"research-assistant-be/internal/repository/memory"
	"research-assistant-be/internal/repository/redisstore"
	"research-assistant-be/internal/service"
	"research-assistant-be/pkg/literature"
	"research-assistant-be/pkg/llm/factory"
	"research-assistant-be/pkg/questiongen"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ResearchController controller.IResearchController
	ChatbotController  controller.IChatbotController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

// NewContainer wires the full dependency graph. db may be nil unless the
// configured session backend is postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus for workflow stage events
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Session storage backend
	var sessionStore contract.ISessionStore
	var conversationStore contract.IConversationStore
	switch cfg.Session.Backend {
	case "postgres":
		if db == nil {
			log.Fatalf("[FATAL] SESSION_STORE=postgres requires DB_CONNECTION_STRING")
		}
		if err := implementation.Migrate(db); err != nil {
			log.Fatalf("[FATAL] Failed to migrate session tables: %v", err)
		}
		sessionStore = implementation.NewSessionStore(db)
		conversationStore = implementation.NewConversationStore(db)
		log.Printf("[INFO] Using Session Store: POSTGRES")
	case "redis":
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] Invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		sessionStore = redisstore.NewSessionStore(client)
		conversationStore = redisstore.NewConversationStore(client, cfg.Session.TTL)
		log.Printf("[INFO] Using Session Store: REDIS")
	default:
		sessionStore = memory.NewSessionStore(cfg.Session.TTL)
		conversationStore = memory.NewConversationStore(cfg.Session.TTL)
		log.Printf("[INFO] Using Session Store: MEMORY")
	}

	generator := questiongen.NewGenerator(llmProvider, cfg.Workflow.ItemTimeout)

	httpClient := &http.Client{Timeout: cfg.Literature.ProviderTimeout}
	aggregator := literature.NewAggregator(
		[]literature.Provider{
			literature.NewCrossRefProvider(cfg.Literature.CrossRefBaseURL, httpClient),
			literature.NewSemanticScholarProvider(cfg.Literature.SemanticScholarBaseURL, httpClient),
		},
		cfg.Literature.MaxResultsPerQuery,
		cfg.Literature.ProviderTimeout,
	)

	publisherService := service.NewPublisherService(pubSub, cfg.Workflow.StageTopicName, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Workflow.StageTopicName, sysLogger)

	researchService := service.NewResearchService(
		sessionStore,
		generator,
		aggregator,
		publisherService,
		sysLogger,
		cfg.Workflow,
		cfg.Session.TTL,
	)
	chatbotService := service.NewChatbotService(conversationStore, researchService, llmProvider, sysLogger)

	return &Container{
		ResearchController: controller.NewResearchController(researchService),
		ChatbotController:  controller.NewChatbotController(chatbotService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
