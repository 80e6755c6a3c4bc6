package handlers

import (
  "fmt"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/services"
)

type LearningStyleHandler struct {
  log      *logger.Logger
  styleSvc services.LearningStyleService
}

func NewLearningStyleHandler(log *logger.Logger, styleSvc services.LearningStyleService) *LearningStyleHandler {
  return &LearningStyleHandler{
    log:      log.With("handler", "LearningStyleHandler"),
    styleSvc: styleSvc,
  }
}

type submitSurveyRequest struct {
  EmployeeID string `json:"employee_id"`
  Answers    []int  `json:"answers"`
}

// POST /api/learning-style
func (h *LearningStyleHandler) Submit(c *gin.Context) {
  var req submitSurveyRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("invalid request body: %w", err)))
    return
  }
  employeeID, err := uuid.Parse(req.EmployeeID)
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed employee_id")))
    return
  }

  record, err := h.styleSvc.Submit(c.Request.Context(), employeeID, req.Answers)
  if err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, gin.H{"success": true, "record": record})
}

// GET /api/learning-style/:employee_id
func (h *LearningStyleHandler) Get(c *gin.Context) {
  employeeID, err := uuid.Parse(c.Param("employee_id"))
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed employee_id")))
    return
  }

  record, err := h.styleSvc.Get(c.Request.Context(), employeeID)
  if err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, record)
}
