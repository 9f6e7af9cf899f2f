package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bot-gpt/services/chat-api/internal/config"
	"bot-gpt/services/chat-api/internal/domain/conversation"
	"bot-gpt/services/chat-api/internal/domain/user"
	"bot-gpt/services/chat-api/internal/infrastructure/database"
	"bot-gpt/services/chat-api/internal/infrastructure/database/repository/conversationrepo"
	"bot-gpt/services/chat-api/internal/infrastructure/database/repository/userrepo"
	"bot-gpt/services/chat-api/internal/infrastructure/llmclient"
	"bot-gpt/services/chat-api/internal/infrastructure/logger"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/handlers/conversationhandler"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/handlers/userhandler"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/routes/conversations"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/routes/users"

	// Register table schemas for auto-migration.
	_ "bot-gpt/services/chat-api/internal/infrastructure/database/dbschema"
)

type Application struct {
	httpServer *httpserver.HTTPServer
}

func (application *Application) Start() {
	background := context.Background()
	_, cancel := context.WithCancel(background)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := application.httpServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	log := logger.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if _, err := logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("configure logger")
	}
	log = logger.GetLogger()

	db, err := database.ConnectWithRetry(cfg.DatabaseURL, cfg.DBConnectRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if cfg.AutoMigrate {
		if err := database.Migration(db, "chat_api."); err != nil {
			log.Fatal().Err(err).Msg("migrate database")
		}
	}

	userRepo := userrepo.NewUserGormRepository(db)
	conversationRepo := conversationrepo.NewConversationGormRepository(db)

	gateway := llmclient.NewOpenAIGateway(llmclient.Config{
		ProviderURL: cfg.LLMProviderURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Timeout:     cfg.HTTPTimeout,
	})

	userService := user.NewService(userRepo)
	conversationService := conversation.NewService(conversationRepo, userRepo, gateway)

	userRoute := users.NewUserRoute(userhandler.NewUserHandler(userService))
	conversationRoute := conversations.NewConversationRoute(conversationhandler.NewConversationHandler(conversationService))

	application := &Application{
		httpServer: httpserver.NewHttpServer(userRoute, conversationRoute, cfg),
	}

	log.Info().Int("port", cfg.HTTPPort).Msg("starting chat-api")
	application.Start()
}
