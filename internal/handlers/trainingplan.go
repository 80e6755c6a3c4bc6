package handlers

import (
  "fmt"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/services"
)

type TrainingPlanHandler struct {
  log     *logger.Logger
  planSvc services.TrainingPlanService
}

func NewTrainingPlanHandler(log *logger.Logger, planSvc services.TrainingPlanService) *TrainingPlanHandler {
  return &TrainingPlanHandler{
    log:     log.With("handler", "TrainingPlanHandler"),
    planSvc: planSvc,
  }
}

type generatePlanRequest struct {
  EmployeeID string `json:"employee_id"`
}

// POST /api/training-plan
func (h *TrainingPlanHandler) Generate(c *gin.Context) {
  var req generatePlanRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("invalid request body: %w", err)))
    return
  }
  employeeID, err := uuid.Parse(req.EmployeeID)
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed employee_id")))
    return
  }

  result, err := h.planSvc.Generate(c.Request.Context(), employeeID)
  if err != nil {
    h.log.Error("Plan generation failed", "employee_id", employeeID, "error", err)
    RespondErr(c, err)
    return
  }

  RespondOK(c, gin.H{"plan": result.Plan, "reasoning": result.Reasoning})
}
