package api

import (
	"net/http"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	sessionService service.SessionService,
	directoryService service.DirectoryService,
	programService service.ProgramService,
	profileService service.ProfileService,
	exerciseService service.ExerciseService,
	messageService service.MessageService,
) {
	authHandler := NewAuthHandler(authService)
	sessionHandler := NewSessionHandler(sessionService)
	directoryHandler := NewDirectoryHandler(directoryService)
	programHandler := NewProgramHandler(programService)
	profileHandler := NewProfileHandler(profileService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	messageHandler := NewMessageHandler(messageService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Trainer Directory ---
		trainersGroup := protected.Group("/trainers")
		{
			trainersGroup.GET("", directoryHandler.ListTrainers)
			trainersGroup.GET("/:trainerId", directoryHandler.GetTrainer)
			// GET /api/v1/trainers/{trainerId}/slots?date=YYYY-MM-DD
			trainersGroup.GET("/:trainerId/slots", directoryHandler.GetAvailableSlots)
		}

		// --- Sessions ---
		sessionsGroup := protected.Group("/sessions")
		{
			// Booking is a client action; status changes are role-checked
			// inside the service.
			sessionsGroup.POST("", RoleMiddleware(domain.RoleClient), sessionHandler.BookSession)
			sessionsGroup.GET("", sessionHandler.GetMySessions)
			sessionsGroup.PATCH("/:sessionId/status", sessionHandler.UpdateSessionStatus)
			sessionsGroup.PATCH("/:sessionId", RoleMiddleware(domain.RoleClient), sessionHandler.UpdateSessionDetails)
			sessionsGroup.POST("/:sessionId/program", RoleMiddleware(domain.RoleTrainer), sessionHandler.AssignProgram)
		}

		// --- Client Profile ---
		profileGroup := protected.Group("/profile")
		profileGroup.Use(RoleMiddleware(domain.RoleClient))
		{
			profileGroup.PUT("", profileHandler.SaveMyProfile)
			profileGroup.GET("", profileHandler.GetMyProfile)
			profileGroup.GET("/completion", profileHandler.GetMyProfileCompletion)
		}

		// --- Client Programs ---
		clientProgramsGroup := protected.Group("/client-programs")
		{
			clientProgramsGroup.GET("", RoleMiddleware(domain.RoleClient), programHandler.GetMyClientPrograms)
			clientProgramsGroup.GET("/:clientProgramId", programHandler.GetClientProgram)
			clientProgramsGroup.POST("/:clientProgramId/logs", RoleMiddleware(domain.RoleClient), programHandler.LogCompletion)
			clientProgramsGroup.GET("/:clientProgramId/exercises/:programExerciseId/completed-today", RoleMiddleware(domain.RoleClient), programHandler.CompletedToday)
			clientProgramsGroup.POST("/:clientProgramId/advance", RoleMiddleware(domain.RoleClient), programHandler.AdvanceDay)
		}

		// --- Messaging ---
		messagesGroup := protected.Group("/messages")
		{
			messagesGroup.POST("", messageHandler.SendMessage)
			messagesGroup.GET("/:userId", messageHandler.GetConversation)
		}

		// --- Exercises (shared read, trainer write) ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", RoleMiddleware(domain.RoleTrainer), exerciseHandler.CreateExercise)
			exerciseGroup.GET("", RoleMiddleware(domain.RoleTrainer), exerciseHandler.GetMyExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:exerciseId", RoleMiddleware(domain.RoleTrainer), exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", RoleMiddleware(domain.RoleTrainer), exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:exerciseId/demo-upload", RoleMiddleware(domain.RoleTrainer), exerciseHandler.RequestDemoUpload)
			exerciseGroup.POST("/:exerciseId/demo-confirm", RoleMiddleware(domain.RoleTrainer), exerciseHandler.ConfirmDemoUpload)
			exerciseGroup.GET("/:exerciseId/demo-video", exerciseHandler.GetDemoVideoURL)
		}

		// --- Trainer Workspace ---
		trainerApiGroup := protected.Group("/trainer")
		trainerApiGroup.Use(RoleMiddleware(domain.RoleTrainer))
		{
			trainerApiGroup.PUT("/profile", directoryHandler.UpsertMyProfile)
			trainerApiGroup.POST("/slots", directoryHandler.AddTimeSlot)
			trainerApiGroup.POST("/clients/:clientId", directoryHandler.AssignClient)
			trainerApiGroup.POST("/programs", programHandler.CreateProgram)
			trainerApiGroup.GET("/programs", programHandler.GetMyPrograms)
			trainerApiGroup.POST("/programs/assign", programHandler.AssignProgram)
		}
	}
}
