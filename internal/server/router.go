package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/manishchum/Lucid-Prototype/internal/handlers"
  "github.com/manishchum/Lucid-Prototype/internal/middleware"
)

type RouterConfig struct {
  RequestLogMiddleware *middleware.RequestLogMiddleware
  TrainingPlanHandler  *handlers.TrainingPlanHandler
  LearningStyleHandler *handlers.LearningStyleHandler
  QuizHandler          *handlers.QuizHandler
  EmployeeHandler      *handlers.EmployeeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.Use(cfg.RequestLogMiddleware.LogRequests())

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    // Plan generation
    api.POST("/training-plan", cfg.TrainingPlanHandler.Generate)
    // Learning style survey
    api.POST("/learning-style", cfg.LearningStyleHandler.Submit)
    api.GET("/learning-style/:employee_id", cfg.LearningStyleHandler.Get)
    // Module quizzes
    api.POST("/quiz/generate", cfg.QuizHandler.Generate)
    api.POST("/quiz/submit", cfg.QuizHandler.Submit)
    // Progress and catalog
    api.GET("/employees/:employee_id/score-history", cfg.EmployeeHandler.ScoreHistory)
    api.GET("/employees/:employee_id/progress", cfg.EmployeeHandler.Progress)
    api.POST("/module-progress/viewed", cfg.EmployeeHandler.MarkViewed)
    api.GET("/companies/:company_id/modules", cfg.EmployeeHandler.CompanyModules)
  }

  return router
}
