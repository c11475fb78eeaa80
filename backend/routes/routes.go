package routes

import (
	"log"

	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"
	"project/backend/scoring"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *log.Logger) {
	ledger := scoring.NewLedger(db, logger)
	rankingCache := scoring.NewRankingCache(db, scoring.RankingRefreshInterval, logger)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)
	teacherMiddleware := middleware.TeacherMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(db, cfg, ledger, logger)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/refresh", authMiddleware, authController.Refresh)

	// Status route
	statusController := controllers.NewStatusController(db, cfg)
	app.Get("/api/status", statusController.Status)

	// User routes
	userController := controllers.NewUserController(db, cfg, ledger, logger)
	users := app.Group("/api/users", authMiddleware)
	users.Get("/me", userController.GetProfile)
	users.Post("/personal-courses", userController.AddPersonalCourse)
	users.Delete("/personal-courses/:id", userController.RemovePersonalCourse)
	users.Post("/change-password", userController.ChangePassword)
	users.Post("/change-avatar", userController.ChangeAvatar)
	users.Get("/", teacherMiddleware, userController.ListUsers)
	users.Get("/:id", userController.GetUserByID)
	users.Put("/:id", userController.UpdateUser)

	// Course routes
	courseController := controllers.NewCourseController(db)
	app.Get("/api/courses", courseController.List)
	app.Get("/api/courses/:id", courseController.GetByID)
	app.Get("/api/learning-path", authMiddleware, courseController.LearningPath)

	// Ranking routes
	rankingController := controllers.NewRankingController(rankingCache, logger)
	app.Get("/api/rankings", authMiddleware, rankingController.GetRankings)
	app.Get("/api/rankings/stream", rankingController.StreamRankings)

	// Submission routes
	submissionController := controllers.NewSubmissionController(db, cfg, ledger, logger)
	submissions := app.Group("/api/submissions", authMiddleware)
	submissions.Post("/", submissionController.Upload)
	submissions.Get("/", submissionController.List)
	submissions.Get("/user/:id", submissionController.ListForUser)
	submissions.Put("/:id/review", teacherMiddleware, submissionController.Review)
	app.Get("/uploads/submissions/:filename", authMiddleware, submissionController.ServeFile)

	// Flashcard routes
	flashcardController := controllers.NewFlashcardController(db, ledger, logger)
	flashcards := app.Group("/api/flashcards", authMiddleware)
	flashcards.Get("/", flashcardController.List)
	flashcards.Post("/progress", flashcardController.SaveProgress)
	flashcards.Post("/test/complete", flashcardController.CompleteTest)

	// Challenge routes
	challengeController := controllers.NewChallengeController(db, logger)
	challenges := app.Group("/api/challenges", authMiddleware)
	challenges.Get("/", challengeController.List)
	challenges.Get("/daily", challengeController.Daily)

	// Mini-game routes
	miniGameController := controllers.NewMiniGameController(ledger, logger)
	miniGames := app.Group("/api/mini-game", authMiddleware)
	miniGames.Get("/start", miniGameController.Start)
	miniGames.Post("/submit", miniGameController.SubmitAnswer)

	// Chatbot proxy
	chatController := controllers.NewChatController(cfg, logger)
	app.Post("/api/chat", authMiddleware, chatController.Chat)

	// Feedback routes
	feedbackController := controllers.NewFeedbackController(db, logger)
	feedback := app.Group("/api/feedback", authMiddleware)
	feedback.Post("/", feedbackController.Submit)
	feedback.Get("/", feedbackController.List)
	feedback.Post("/:id/reply", teacherMiddleware, feedbackController.Reply)

	// Teacher routes
	teacherController := controllers.NewTeacherController(db)
	app.Get("/api/teacher/analytics", authMiddleware, teacherMiddleware, teacherController.Analytics)

	// Avatars are public profile images
	app.Static("/uploads/avatars", cfg.UploadDir+"/avatars")
}
