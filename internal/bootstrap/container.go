package bootstrap

import (
	"log"

	"adaptive-assessment-be/internal/config"
	"adaptive-assessment-be/internal/controller"
	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/internal/repository/adapter"
	"adaptive-assessment-be/internal/repository/memory"
	"adaptive-assessment-be/internal/repository/unitofwork"
	"adaptive-assessment-be/internal/service"
	"adaptive-assessment-be/pkg/agent"
	"adaptive-assessment-be/pkg/agent/tools"
	"adaptive-assessment-be/pkg/embedding"
	"adaptive-assessment-be/pkg/grading"
	"adaptive-assessment-be/pkg/llm"
	"adaptive-assessment-be/pkg/llm/factory"
	"adaptive-assessment-be/pkg/orchestrator"
	"adaptive-assessment-be/pkg/persistence"
	"adaptive-assessment-be/pkg/validation"

	pktNats "adaptive-assessment-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssessmentController controller.IAssessmentController

	// Background Services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	DrainService    service.IDrainService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	agentLogger := logger.NewIsolatedLogger(cfg.App.AgentLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Model Providers
	if cfg.Ai.EmbeddingProvider != "ollama" {
		log.Printf("[WARN] Unknown embedding provider %q, falling back to OLLAMA", cfg.Ai.EmbeddingProvider)
	}
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.EmbeddingModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	llmClient := llm.NewClient(llmProvider, llm.DefaultPolicy)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	sessionRepo := memory.NewSessionRepository()

	// 5. Persistence with retry-queue degradation
	retryQueue := persistence.NewRetryQueue(cfg.Agent.RetryQueueCapacity)
	questionStore := adapter.NewQuestionStoreAdapter(uowFactory)
	writer := persistence.NewWriter(questionStore, retryQueue, sysLogger)

	// 6. Validation gate and grading pipeline
	gate := validation.NewGate(
		validation.NewSemanticScorer(llmClient),
		validation.NewLLMReviser(llmClient),
		sysLogger,
	)
	grader := grading.NewGrader(llmClient, sysLogger)
	batchScorer := grading.NewBatchScorer(grader, cfg.Agent.BatchWorkers)

	// 7. Messaging services (declared before tools; the persist tool feeds the
	// embedding pipeline)
	publisherService := service.NewPublisherService(cfg.App.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.EmbedTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)
	embedListener := service.NewEmbedListener(publisherService, sysLogger)

	// 8. Tool suite
	registry := tools.NewRegistry(agentLogger)
	registry.Register(tools.NewProfileTool(adapter.NewProfileSourceAdapter(uowFactory), agentLogger))
	registry.Register(tools.NewTemplateTool(adapter.NewTemplateSourceAdapter(uowFactory), embeddingProvider, agentLogger))
	registry.Register(tools.NewKeywordTool(tools.StaticKeywordSource{}, agentLogger))
	registry.Register(tools.NewValidateTool(gate, agentLogger))
	registry.Register(tools.NewPersistTool(writer, embedListener, agentLogger))
	registry.Register(tools.NewScoreTool(grader, agentLogger))

	// 9. Reasoning loop and retry orchestration
	loop := agent.NewLoop(llmClient, registry, agentLogger, cfg.Agent.MaxIterations)
	generator := orchestrator.NewOrchestrator(loop, sysLogger, cfg.Agent.GenerateAttempts, cfg.Agent.BackoffInitial)

	// 10. Domain services
	assessmentService := service.NewAssessmentService(
		uowFactory,
		sessionRepo,
		generator,
		grader,
		batchScorer,
		natsPub,
		sysLogger,
		cfg.Agent.ItemsPerRound,
		cfg.Agent.TimeLimitSeconds,
	)
	drainService := service.NewDrainService(writer, cfg.Agent.DrainInterval, natsPub, sysLogger)

	return &Container{
		AssessmentController: controller.NewAssessmentController(assessmentService, drainService),
		ConsumerService:      consumerService,
		DrainService:         drainService,
	}
}
