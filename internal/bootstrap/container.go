package bootstrap

import (
	"log"
	"strings"

	"campus-assistant-be/internal/config"
	"campus-assistant-be/internal/controller"
	"campus-assistant-be/internal/pkg/logger"
	"campus-assistant-be/internal/repository/memory"
	"campus-assistant-be/internal/repository/unitofwork"
	"campus-assistant-be/internal/service"
	"campus-assistant-be/pkg/embedding"
	"campus-assistant-be/pkg/llm"
	"campus-assistant-be/pkg/llm/chain"
	"campus-assistant-be/pkg/llm/factory"
	"campus-assistant-be/pkg/rag"
	"campus-assistant-be/pkg/rag/fusion"
	"campus-assistant-be/pkg/rag/gate"
	"campus-assistant-be/pkg/rag/intent"
	"campus-assistant-be/pkg/rag/reformulator"
	"campus-assistant-be/pkg/vectorindex"

	pktNats "campus-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	FaqController       controller.IFaqController
	KnowledgeController controller.IKnowledgeController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService

	// Exposed for graceful shutdown
	Logger  *logger.ZapLogger
	NatsPub *pktNats.Publisher
	NatsSub *pktNats.Subscriber
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	zapLogger := sysLogger.Unwrap()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey, cfg.Ai.GeminiModel, cfg.Ai.CallTimeout)
		log.Printf("[INFO] Using Embedding Provider: GEMINI (%s)", cfg.Ai.GeminiModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel, cfg.Ai.CallTimeout)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	generationChain := buildGenerationChain(cfg, zapLogger)

	// 4. Retrieval Pipeline
	gateConfig, err := gate.LoadConfig(cfg.Retrieval.GateConfigPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load context gate config: %v", err)
	}
	contextGate, err := gate.New(gateConfig)
	if err != nil {
		log.Fatalf("[FATAL] Failed to compile context gate: %v", err)
	}

	knowledgeStore := service.NewKnowledgeStore(uowFactory)
	indexManager := vectorindex.NewManager(knowledgeStore, vectorindex.MetricCosine, zapLogger)

	resolver := rag.NewResolver(
		contextGate,
		intent.NewClassifier(),
		knowledgeStore,
		indexManager,
		embeddingProvider,
		generationChain,
		reformulator.New(generationChain, zapLogger),
		resolverConfig(cfg.Retrieval),
		zapLogger,
	)

	// 5. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	resolutionCache := memory.NewResolutionCache(cfg.Retrieval.ResolutionCacheTTL)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Retrieval.KnowledgeTopic, pubSub)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Retrieval.KnowledgeTopic,
		indexManager,
		resolutionCache,
		natsPub,
		natsSub,
		sysLogger,
	)

	chatService := service.NewChatService(resolver, resolutionCache, sysLogger)
	faqService := service.NewFaqService(uowFactory, embeddingProvider, publisherService, sysLogger)
	documentService := service.NewDocumentService(uowFactory, embeddingProvider, publisherService, sysLogger)

	// 7. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		FaqController:       controller.NewFaqController(faqService),
		KnowledgeController: controller.NewKnowledgeController(documentService, indexManager),

		IndexerService: indexerService,

		Logger:  sysLogger,
		NatsPub: natsPub,
		NatsSub: natsSub,
	}
}

// buildGenerationChain assembles the provider fallback chain in the order
// given by LLM_PROVIDERS. An unknown provider name aborts startup: a typo
// here should never silently shorten the chain.
func buildGenerationChain(cfg *config.Config, zapLogger *zap.Logger) *chain.Chain {
	var providers []llm.Provider
	for _, name := range strings.Split(cfg.Ai.LLMProviders, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		providerCfg := factory.ProviderConfig{
			Type:    name,
			Model:   cfg.Ai.LLMModel,
			Timeout: cfg.Ai.CallTimeout,
		}
		switch name {
		case "ollama":
			providerCfg.BaseURL = cfg.Ai.OllamaBaseURL
		case "openai":
			providerCfg.BaseURL = cfg.Ai.OpenAIBaseURL
			providerCfg.ApiKey = cfg.Ai.OpenAIAPIKey
			providerCfg.Model = cfg.Ai.OpenAIModel
		case "huggingface":
			providerCfg.BaseURL = cfg.Ai.HuggingFaceURL
			providerCfg.ApiKey = cfg.Ai.HuggingFaceKey
		}

		provider, err := factory.NewProvider(providerCfg)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM Provider %q: %v", name, err)
		}
		providers = append(providers, provider)
		log.Printf("[INFO] LLM chain provider registered: %s", name)
	}

	return chain.New(providers, cfg.Ai.CallTimeout, zapLogger)
}

func resolverConfig(rc config.RetrievalConfig) rag.Config {
	return rag.Config{
		ExactThreshold:        rc.ExactThreshold,
		SecondaryThreshold:    rc.SecondaryThreshold,
		CombinedThreshold:     rc.CombinedThreshold,
		DocumentLexicalBar:    rc.DocumentLexicalBar,
		RelevanceFloor:        rc.RelevanceFloor,
		SemanticFloor:         rc.SemanticFloor,
		LexicalFloor:          rc.LexicalFloor,
		MinSemanticCandidates: rc.MinSemanticCandidates,
		TopK:                  rc.TopK,
		PrefixLength:          rc.PrefixLength,
		ExcerptLength:         rc.ExcerptLength,
		Weights: fusion.Weights{
			Semantic: rc.SemanticWeight,
			Lexical:  rc.LexicalWeight,
		},
		OverallTimeout: rc.OverallTimeout,
	}
}
