package routes

import (
	"github.com/ekalbevoldog/Contesttest-sub007/internal/config"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/handlers"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/middleware"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/repository"
	"github.com/ekalbevoldog/Contesttest-sub007/internal/services"
	chatws "github.com/ekalbevoldog/Contesttest-sub007/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) error {
	userRepo := repository.NewUserRepository(db)
	athleteProfileRepo := repository.NewAthleteProfileRepository(db)
	businessProfileRepo := repository.NewBusinessProfileRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	widgetRepo := repository.NewWidgetRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	sessionStore := repository.NewWizardSessionStore(rdb, cfg.SessionTTL)
	var storageService services.StorageService
	if cfg.SupabaseURL != "" && cfg.SupabaseBucket != "" && cfg.SupabaseServiceKey != "" {
		storageService = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	}

	authHandler := handlers.NewAuthHandler(
		db,
		userRepo,
		athleteProfileRepo,
		businessProfileRepo,
		cfg.JWTSecret,
	)
	matchingService := services.NewMatchingService(athleteProfileRepo, businessProfileRepo)
	campaignService := services.NewCampaignService(campaignRepo)
	onboardingService := services.NewOnboardingService(
		sessionStore,
		athleteProfileRepo,
		businessProfileRepo,
		matchingService,
		campaignService,
	)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
	profileService := services.NewProfileService(athleteProfileRepo, businessProfileRepo)
	profileHandler := handlers.NewProfileHandler(profileService, athleteProfileRepo, businessProfileRepo, storageService)
	discoveryHandler := handlers.NewDiscoveryHandler(athleteProfileRepo, businessProfileRepo, matchingService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	widgetService := services.NewWidgetService(widgetRepo)
	widgetHandler := handlers.NewWidgetHandler(widgetService)
	chatHub := chatws.NewHub()
	go chatHub.Run()
	chatService := services.NewChatService(db, conversationRepo, messageRepo, userRepo)
	chatHandler := handlers.NewChatHandler(chatService, chatHub, cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	// The wizard runs before the account exists, so its session endpoints
	// are unauthenticated. Only the final submission requires a token.
	api.Post("/chat/session", onboardingHandler.StartSession)
	onboarding := api.Group("/onboarding")
	onboarding.Get("/:sessionId", onboardingHandler.GetSession)
	onboarding.Post("/:sessionId/user-type", onboardingHandler.SelectUserType)
	onboarding.Put("/:sessionId/fields", onboardingHandler.SetFields)
	onboarding.Post("/:sessionId/next", onboardingHandler.NextStep)
	onboarding.Post("/:sessionId/back", onboardingHandler.PreviousStep)
	api.Post("/personalized-onboarding", middleware.AuthRequired(cfg.JWTSecret), onboardingHandler.SubmitOnboarding)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	athletes := authProtected.Group("/athletes")
	athletes.Get("", discoveryHandler.ListAthletes)
	athletes.Get("/profile", profileHandler.GetAthleteProfile)
	athletes.Put("/profile", profileHandler.UpdateAthleteProfile)
	athletes.Post("/profile/avatar", profileHandler.UploadAthleteAvatar)
	athletes.Get("/recommended", discoveryHandler.GetRecommendedAthletes)
	athletes.Get("/:id", discoveryHandler.GetAthleteDetail)

	businesses := authProtected.Group("/businesses")
	businesses.Get("/profile", profileHandler.GetBusinessProfile)
	businesses.Put("/profile", profileHandler.UpdateBusinessProfile)
	businesses.Post("/profile/logo", profileHandler.UploadBusinessLogo)
	businesses.Get("/recommended", discoveryHandler.GetRecommendedBusinesses)

	campaigns := authProtected.Group("/campaigns")
	campaigns.Post("", campaignHandler.CreateCampaign)
	campaigns.Get("", campaignHandler.ListCampaigns)
	campaigns.Get("/:id", campaignHandler.GetCampaign)
	campaigns.Patch("/:id/status", campaignHandler.UpdateCampaignStatus)

	widgets := authProtected.Group("/widgets")
	widgets.Get("", widgetHandler.ListWidgets)
	widgets.Post("", widgetHandler.CreateWidget)
	widgets.Put("/reorder", widgetHandler.ReorderWidgets)
	widgets.Put("/:id", widgetHandler.UpdateWidget)
	widgets.Delete("/:id", widgetHandler.DeleteWidget)

	conversations := authProtected.Group("/conversations")
	conversations.Get("", chatHandler.ListConversations)
	conversations.Post("", chatHandler.CreateConversation)
	conversations.Get("/:id/messages", chatHandler.GetMessages)

	api.Use("/v1/ws", chatHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(chatHandler.HandleWebSocket))

	return registerDocsRoutes(app, cfg)
}
