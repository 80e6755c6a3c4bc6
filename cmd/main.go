package main

import (
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/manishchum/Lucid-Prototype/internal/db"
  "github.com/manishchum/Lucid-Prototype/internal/handlers"
  "github.com/manishchum/Lucid-Prototype/internal/locks"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/middleware"
  "github.com/manishchum/Lucid-Prototype/internal/repos"
  "github.com/manishchum/Lucid-Prototype/internal/server"
  "github.com/manishchum/Lucid-Prototype/internal/services"
  "github.com/manishchum/Lucid-Prototype/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  employeeRepo := repos.NewEmployeeRepo(thePG, log)
  assessmentRepo := repos.NewAssessmentRepo(thePG, log)
  employeeAssessmentRepo := repos.NewEmployeeAssessmentRepo(thePG, log)
  moduleRepo := repos.NewModuleRepo(thePG, log)
  learningStyleRepo := repos.NewLearningStyleRepo(thePG, log)
  trainingPlanRepo := repos.NewTrainingPlanRepo(thePG, log)
  kpiRepo := repos.NewKPIRepo(thePG, log)
  moduleProgressRepo := repos.NewModuleProgressRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  completionClient, err := services.NewOpenAIClient(log)
  if err != nil {
    log.Error("Could not init OpenAIClient", "error", err)
    os.Exit(1)
  }
  planLocker := locks.NewFromEnv(log)

  trainingPlanService := services.NewTrainingPlanService(
    thePG,
    log,
    employeeRepo,
    employeeAssessmentRepo,
    moduleRepo,
    learningStyleRepo,
    trainingPlanRepo,
    kpiRepo,
    planLocker,
    completionClient,
  )
  learningStyleService := services.NewLearningStyleService(thePG, log, learningStyleRepo, completionClient)
  quizService := services.NewQuizService(
    thePG,
    log,
    assessmentRepo,
    employeeAssessmentRepo,
    moduleRepo,
    learningStyleRepo,
    moduleProgressRepo,
    completionClient,
  )
  progressService := services.NewProgressService(thePG, log, employeeAssessmentRepo, moduleProgressRepo)
  moduleService := services.NewModuleService(thePG, log, moduleRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  trainingPlanHandler := handlers.NewTrainingPlanHandler(log, trainingPlanService)
  learningStyleHandler := handlers.NewLearningStyleHandler(log, learningStyleService)
  quizHandler := handlers.NewQuizHandler(log, quizService)
  employeeHandler := handlers.NewEmployeeHandler(log, progressService, moduleService)

  // Middleware
  log.Info("Setting up middleware from main...")
  requestLogMiddleware := middleware.NewRequestLogMiddleware(log)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    RequestLogMiddleware: requestLogMiddleware,
    TrainingPlanHandler:  trainingPlanHandler,
    LearningStyleHandler: learningStyleHandler,
    QuizHandler:          quizHandler,
    EmployeeHandler:      employeeHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
