package handlers

import (
  "fmt"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/services"
)

type EmployeeHandler struct {
  log         *logger.Logger
  progressSvc services.ProgressService
  moduleSvc   services.ModuleService
}

func NewEmployeeHandler(log *logger.Logger, progressSvc services.ProgressService, moduleSvc services.ModuleService) *EmployeeHandler {
  return &EmployeeHandler{
    log:         log.With("handler", "EmployeeHandler"),
    progressSvc: progressSvc,
    moduleSvc:   moduleSvc,
  }
}

// GET /api/employees/:employee_id/score-history
func (h *EmployeeHandler) ScoreHistory(c *gin.Context) {
  employeeID, err := uuid.Parse(c.Param("employee_id"))
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed employee_id")))
    return
  }

  results, err := h.progressSvc.ScoreHistory(c.Request.Context(), employeeID)
  if err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, gin.H{"results": results})
}

// GET /api/employees/:employee_id/progress
func (h *EmployeeHandler) Progress(c *gin.Context) {
  employeeID, err := uuid.Parse(c.Param("employee_id"))
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed employee_id")))
    return
  }

  rows, err := h.progressSvc.ListProgress(c.Request.Context(), employeeID)
  if err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, gin.H{"progress": rows})
}

type markViewedRequest struct {
  EmployeeID string `json:"employee_id"`
  ModuleID   string `json:"module_id"`
}

// POST /api/module-progress/viewed
func (h *EmployeeHandler) MarkViewed(c *gin.Context) {
  var req markViewedRequest
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

  if err := h.progressSvc.MarkViewed(c.Request.Context(), employeeID, moduleID); err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, gin.H{"success": true})
}

// GET /api/companies/:company_id/modules
func (h *EmployeeHandler) CompanyModules(c *gin.Context) {
  companyID, err := uuid.Parse(c.Param("company_id"))
  if err != nil {
    RespondErr(c, apierr.Validation(fmt.Errorf("missing or malformed company_id")))
    return
  }

  modules, err := h.moduleSvc.ListCompanyModules(c.Request.Context(), companyID)
  if err != nil {
    RespondErr(c, err)
    return
  }

  RespondOK(c, gin.H{"modules": modules})
}
