package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bot-gpt/services/chat-api/internal/interfaces/httpserver/handlers/userhandler"
	userrequests "bot-gpt/services/chat-api/internal/interfaces/httpserver/requests/user"
	"bot-gpt/services/chat-api/internal/interfaces/httpserver/responses"
	userresponses "bot-gpt/services/chat-api/internal/interfaces/httpserver/responses/user"
	"bot-gpt/services/chat-api/internal/utils/platformerrors"
)

type UserRoute struct {
	handler *userhandler.UserHandler
}

func NewUserRoute(handler *userhandler.UserHandler) *UserRoute {
	return &UserRoute{handler: handler}
}

func (route *UserRoute) RegisterRouter(router gin.IRouter) {
	users := router.Group("/users")
	users.POST("", route.createUser)
	users.GET("/:email", route.getUserByEmail)
}

func (route *UserRoute) createUser(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req userrequests.CreateUserRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body", "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5e")
		return
	}

	usr, err := route.handler.CreateUser(ctx, req)
	if err != nil {
		// A duplicate email is not a plain error body: the existing record
		// rides along so clients can recover the canonical user.
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) && usr != nil {
			reqCtx.JSON(http.StatusConflict, userresponses.NewConflictResponse(usr))
			return
		}
		responses.HandleError(reqCtx, err, "Failed to create user")
		return
	}

	reqCtx.JSON(http.StatusCreated, userresponses.NewCreateUserResponse(usr))
}

func (route *UserRoute) getUserByEmail(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	response, err := route.handler.GetUserByEmail(ctx, reqCtx.Param("email"))
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to get user")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}
