package conversations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bot-gpt/services/chat-api/internal/interfaces/httpserver/handlers/conversationhandler"
	conversationrequests "bot-gpt/services/chat-api/internal/interfaces/httpserver/requests/conversation"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/responses"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

func (route *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/conversations")
	conversations.POST("", route.createConversation)
	conversations.GET("", route.listConversations)
	conversations.GET("/user/:email", route.listConversationsForUser)
	conversations.GET("/:conv_public_id", route.getConversation)
	conversations.POST("/:conv_public_id/messages", route.addMessage)
	conversations.DELETE("/:conv_public_id", route.deleteConversation)
}

func (route *ConversationRoute) createConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req conversationrequests.CreateConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "2b3c4d5e-6f7a-4b8c-9d0e-1f2a3b4c5d6f")
		return
	}

	response, err := route.handler.CreateConversation(ctx, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to create conversation")
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

func (route *ConversationRoute) listConversations(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	pagination := conversationrequests.ParsePagination(reqCtx)
	response, err := route.handler.ListConversations(ctx, pagination)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list conversations")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

func (route *ConversationRoute) listConversationsForUser(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := route.handler.ListConversationsForUser(ctx, reqCtx.Param("email"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to list conversations")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

func (route *ConversationRoute) getConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := route.handler.GetConversation(ctx, reqCtx.Param("conv_public_id"), reqCtx.Query("user_email"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get conversation")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

func (route *ConversationRoute) addMessage(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req conversationrequests.AddMessageRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "3c4d5e6f-7a8b-4c9d-0e1f-2a3b4c5d6e70")
		return
	}

	response, err := route.handler.AddMessage(ctx, reqCtx.Param("conv_public_id"), req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to add message")
		return
	}

	reqCtx.JSON(http.StatusCreated, response)
}

func (route *ConversationRoute) deleteConversation(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req conversationrequests.DeleteConversationRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "4d5e6f70-8b9c-4d0e-1f2a-3b4c5d6e7f81")
		return
	}

	if err := route.handler.DeleteConversation(ctx, reqCtx.Param("conv_public_id"), req.UserEmail); err != nil {
		responses.HandleError(reqCtx, err, "Failed to delete conversation")
		return
	}

	reqCtx.Status(http.StatusNoContent)
}
