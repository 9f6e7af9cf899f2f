package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bot-gpt/services/chat-api/internal/config"
	"bot-gpt/services/chat-api/internal/infrastructure/logger"
	middleware "bot-gpt/services/chat-api/internal/interfaces/httpserver/middlewares"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/routes/conversations"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/routes/users"
)

const serviceName = "chat-api"

type HTTPServer struct {
	engine            *gin.Engine
	userRoute         *users.UserRoute
	conversationRoute *conversations.ConversationRoute
	config            *config.Config
}

func NewHttpServer(
	userRoute *users.UserRoute,
	conversationRoute *conversations.ConversationRoute,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		userRoute,
		conversationRoute,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.LoggingMiddleware(logger.GetLogger()))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(middleware.BodyLimit())

	server.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": serviceName})
	})

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

func (httpServer *HTTPServer) Run() error {
	root := httpServer.engine.Group("/")

	httpServer.userRoute.RegisterRouter(root)
	httpServer.conversationRoute.RegisterRouter(root)

	if err := httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort)); err != nil {
		return err
	}
	return nil
}
