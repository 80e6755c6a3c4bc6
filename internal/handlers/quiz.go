package handlers

import (
  "fmt"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/services"
)

type QuizHandler struct {
  log     *logger.Logger
  quizSvc services.QuizService
}

func NewQuizHandler(log *logger.Logger, quizSvc services.QuizService) *QuizHandler {
  return &QuizHandler{
    log:     log.With("handler", "QuizHandler"),
    quizSvc: quizSvc,
  }
}

type generateQuizRequest struct {
  EmployeeID string `json:"employee_id"`
  ModuleID   string `json:"module_id"`
}

type submitQuizRequest struct {
  EmployeeID string `json:"employee_id"`
  ModuleID   string `json:"module_id"`
  Answers    []int  `json:"answers"`
}

// POST /api/quiz/generate
func (h *QuizHandler) Generate(c *gin.Context) {
  var req generateQuizRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("invalid request body: %w", err)))
    return
  }
  employeeID, err := uuid.Parse(req.EmployeeID)
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed employee_id")))
    return
  }
  moduleID, err := uuid.Parse(req.ModuleID)
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed module_id")))
    return
  }

  questions, err := h.quizSvc.GetOrGenerate(c.Request.Context(), employeeID, moduleID)
  if err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, gin.H{"quiz": questions})
}

// POST /api/quiz/submit
func (h *QuizHandler) Submit(c *gin.Context) {
  var req submitQuizRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("invalid request body: %w", err)))
    return
  }
  employeeID, err := uuid.Parse(req.EmployeeID)
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed employee_id")))
    return
  }
  moduleID, err := uuid.Parse(req.ModuleID)
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed module_id")))
    return
  }

  result, err := h.quizSvc.Score(c.Request.Context(), employeeID, moduleID, req.Answers)
  if err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, result)
}
