package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/controllers"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/middleware"
	"github.com/Shyam-123pandey/NITM-content-hub/internal/pkg/ws"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	contentController *controllers.ContentController,
	discussionController *controllers.DiscussionController,
	opportunityController *controllers.OpportunityController,
	calendarController *controllers.CalendarController,
	chatController *controllers.ChatController,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/google", authController.GoogleLogin)
		auth.GET("/google/callback", authController.GoogleCallback)
	}

	// --- Public content routes ---
	contents := api.Group("/contents")
	{
		contents.GET("", contentController.GetAllContent)
		contents.GET("/:id", contentController.GetContentByID)
		contents.GET("/:id/download", contentController.RecordDownload)
	}

	// --- Authenticated routes ---
	staffOnly := authMiddleware.RoleRequired(string(models.RoleFaculty), string(models.RoleAdmin))

	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authProtected := authenticated.Group("/auth")
		{
			authProtected.GET("/me", authController.GetProfile)
			authProtected.PUT("/profile", authController.UpdateProfile)
			authProtected.PUT("/password", authController.UpdatePassword)
			authProtected.POST("/profile/picture", authController.UpdateProfilePicture)
		}

		authenticated.GET("/users/:id", authController.GetUserByID)

		contentsProtected := authenticated.Group("/contents")
		{
			contentsProtected.POST("", contentController.CreateContent)
			contentsProtected.PUT("/:id", contentController.UpdateContent)
			contentsProtected.DELETE("/:id", contentController.DeleteContent)
		}

		discussions := authenticated.Group("/discussions")
		{
			discussions.GET("", discussionController.GetAllDiscussions)
			discussions.GET("/:id", discussionController.GetDiscussionByID)
			discussions.POST("", discussionController.CreateDiscussion)
			discussions.PUT("/:id", discussionController.UpdateDiscussion)
			discussions.DELETE("/:id", discussionController.DeleteDiscussion)
			discussions.POST("/:id/upvote", discussionController.UpvoteDiscussion)
			discussions.POST("/:id/comments", discussionController.AddComment)
			discussions.PUT("/:id/comments/:commentId", discussionController.UpdateComment)
			discussions.DELETE("/:id/comments/:commentId", discussionController.DeleteComment)
		}

		opportunities := authenticated.Group("/opportunities")
		{
			opportunities.GET("", opportunityController.GetAllOpportunities)
			opportunities.GET("/:id", opportunityController.GetOpportunityByID)
			opportunities.POST("", staffOnly, opportunityController.CreateOpportunity)
			opportunities.PUT("/:id", opportunityController.UpdateOpportunity)
			opportunities.DELETE("/:id", opportunityController.DeleteOpportunity)
			opportunities.POST("/:id/apply", opportunityController.Apply)
			opportunities.PATCH("/:id/participants/:participantId", opportunityController.UpdateParticipantStatus)
		}

		calendar := authenticated.Group("/calendar")
		{
			calendar.GET("", calendarController.GetAllEvents)
			calendar.GET("/:id", calendarController.GetEventByID)
			calendar.POST("", staffOnly, calendarController.CreateEvent)
			calendar.PUT("/:id", calendarController.UpdateEvent)
			calendar.DELETE("/:id", calendarController.DeleteEvent)
		}

		chats := authenticated.Group("/chats")
		{
			chats.GET("", chatController.GetVisibleChats)
			chats.GET("/:id", chatController.GetChatByID)
			chats.POST("", chatController.CreateChat)
			chats.DELETE("/:id", chatController.DeactivateChat)
			chats.POST("/:id/join", chatController.JoinChat)
			chats.POST("/:id/leave", chatController.LeaveChat)
			chats.DELETE("/:id/members/:userId", chatController.RemoveMember)
			chats.PUT("/:id/members", chatController.PromoteMember)
			chats.GET("/:id/messages", chatController.GetMessages)
			chats.POST("/:id/messages", chatController.SendMessage)
			chats.POST("/:id/messages/:messageId/reactions", chatController.ReactToMessage)
			chats.PATCH("/:id/messages/:messageId/pin", chatController.TogglePin)
		}
	}

	// WebSocket endpoint. Browsers cannot set headers on the upgrade
	// request, so the auth middleware also accepts a token query parameter.
	wsGroup := router.Group("/ws")
	wsGroup.Use(authMiddleware.JWTAuth())
	{
		wsGroup.GET("/:id", wsHandler.HandleConnection)
	}
}
