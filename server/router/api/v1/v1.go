package v1

import (
	"context"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/dashwise/dashwise/ai/embedding"
	"github.com/dashwise/dashwise/ai/llm"
	"github.com/dashwise/dashwise/assistant"
	"github.com/dashwise/dashwise/internal/profile"
	"github.com/dashwise/dashwise/store"
)

type APIV1Service struct {
	// Domain services
	ChatService *ChatService
	UserService *UserService
	RoleService *RoleService
	PageService *PageService

	// Shared infra
	Profile   *profile.Profile
	Store     *store.Store
	Assistant *assistant.Assistant
	Metrics   *assistant.Metrics
}

// NewAPIV1Service wires the assistant pipeline and the CRUD services.
// AI backends are optional: when disabled or failing to initialize, the
// assistant still answers through its rule engine.
func NewAPIV1Service(ctx context.Context, instanceProfile *profile.Profile, storeInstance *store.Store, metrics *assistant.Metrics) *APIV1Service {
	catalog := loadCatalog(ctx, storeInstance)
	rules := assistant.NewRuleEngine(catalog)

	var llmService llm.Service
	var embeddingService embedding.Service
	if instanceProfile.IsAIEnabled() {
		service, err := llm.NewService(&llm.Config{
			Provider: instanceProfile.LLMProvider,
			Model:    instanceProfile.LLMModel,
			APIKey:   instanceProfile.LLMAPIKey,
			BaseURL:  instanceProfile.LLMBaseURL,
			Timeout:  instanceProfile.LLMTimeout,
		})
		if err != nil {
			slog.Warn("failed to initialize LLM service, assistant will use rules only",
				"provider", instanceProfile.LLMProvider, "error", err)
		} else {
			llmService = service
			slog.Info("LLM service initialized",
				"provider", instanceProfile.LLMProvider,
				"model", instanceProfile.LLMModel,
			)
			// Best-effort warmup; first request is slower without it.
			go func() {
				warmupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				service.Warmup(warmupCtx)
			}()
		}

		embedder, err := embedding.NewService(&embedding.Config{
			Provider:   instanceProfile.EmbeddingProvider,
			Model:      instanceProfile.EmbeddingModel,
			APIKey:     instanceProfile.EmbeddingAPIKey,
			BaseURL:    instanceProfile.EmbeddingBaseURL,
			Dimensions: instanceProfile.EmbeddingDimensions,
		})
		if err != nil {
			slog.Warn("failed to initialize embedding service, assistant will use static context",
				"provider", instanceProfile.EmbeddingProvider, "error", err)
		} else {
			embeddingService = embedder
			// Rebuild the page index in the background; queries served before
			// it finishes fall back to the static catalog context.
			indexer := assistant.NewPageIndexer(storeInstance, embedder, instanceProfile.EmbeddingModel)
			go func() {
				indexCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()
				if err := indexer.BuildIndex(indexCtx); err != nil {
					slog.Warn("page index build failed, semantic retrieval degraded", "error", err)
				}
			}()
		}
	}

	var searcher assistant.PageSearcher
	if embeddingService != nil {
		searcher = storeInstance
	}
	assistantInstance := assistant.New(assistant.Config{
		Retriever:  assistant.NewContextRetriever(embeddingService, searcher, catalog, metrics, instanceProfile.EmbeddingModel, 5),
		Resolver:   assistant.NewIntentResolver(llmService, rules, metrics, 4),
		Normalizer: assistant.NewNormalizer(catalog, rules),
		Metrics:    metrics,
	})

	return &APIV1Service{
		ChatService: &ChatService{Assistant: assistantInstance},
		UserService: &UserService{Store: storeInstance},
		RoleService: &RoleService{Store: storeInstance},
		PageService: &PageService{Store: storeInstance},
		Profile:     instanceProfile,
		Store:       storeInstance,
		Assistant:   assistantInstance,
		Metrics:     metrics,
	}
}

// RegisterRoutes attaches all API endpoints to the echo server.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", s.ChatService.Chat)

	apiGroup := e.Group("/api")
	apiGroup.GET("/users", s.UserService.ListUsers)
	apiGroup.POST("/users", s.UserService.CreateUser)
	apiGroup.GET("/roles", s.RoleService.ListRoles)
	apiGroup.POST("/roles", s.RoleService.CreateRole)
	apiGroup.GET("/pages", s.PageService.ListPages)
	apiGroup.POST("/pages", s.PageService.CreatePage)
}

// loadCatalog reads the stored pages; the built-in catalog covers an empty
// or unreachable store.
func loadCatalog(ctx context.Context, storeInstance *store.Store) *assistant.Catalog {
	pages, err := storeInstance.ListPages(ctx, &store.FindPage{})
	if err != nil {
		slog.Warn("failed to load page catalog, using built-in defaults", "error", err)
		return assistant.DefaultCatalog()
	}
	return assistant.CatalogFromPages(pages)
}
