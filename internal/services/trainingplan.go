package services

import (
  "context"
  "crypto/sha256"
  "encoding/hex"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/singleflight"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/locks"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/repos"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

const (
  planMaxTokens   = 3000
  planTemperature = 0.7
  planLockTTL     = 2 * time.Minute
)

type PlanResult struct {
  Plan      any  `json:"plan"`
  Reasoning any  `json:"reasoning"`
  Cached    bool `json:"-"`
}

type TrainingPlanService interface {
  Generate(ctx context.Context, employeeID uuid.UUID) (*PlanResult, error)
}

type trainingPlanService struct {
  db  *gorm.DB
  log *logger.Logger

  employeeRepo repos.EmployeeRepo
  resultRepo   repos.EmployeeAssessmentRepo
  moduleRepo   repos.ModuleRepo
  styleRepo    repos.LearningStyleRepo
  planRepo     repos.TrainingPlanRepo
  kpiRepo      repos.KPIRepo

  locker locks.Locker
  ai     CompletionClient
  flight singleflight.Group
}

func NewTrainingPlanService(
  db *gorm.DB,
  baseLog *logger.Logger,
  employeeRepo repos.EmployeeRepo,
  resultRepo repos.EmployeeAssessmentRepo,
  moduleRepo repos.ModuleRepo,
  styleRepo repos.LearningStyleRepo,
  planRepo repos.TrainingPlanRepo,
  kpiRepo repos.KPIRepo,
  locker locks.Locker,
  ai CompletionClient,
) TrainingPlanService {
  return &trainingPlanService{
    db:           db,
    log:          baseLog.With("service", "TrainingPlanService"),
    employeeRepo: employeeRepo,
    resultRepo:   resultRepo,
    moduleRepo:   moduleRepo,
    styleRepo:    styleRepo,
    planRepo:     planRepo,
    kpiRepo:      kpiRepo,
    locker:       locker,
    ai:           ai,
  }
}

// assessmentSnapshot is the serialized form an assessment result takes inside
// the prompt and the cache fingerprint. Field order matters: the fingerprint
// is a digest of this exact serialization.
type assessmentSnapshot struct {
  Score     float64         `json:"score"`
  MaxScore  float64         `json:"max_score"`
  Feedback  string          `json:"feedback"`
  Kind      string          `json:"kind"`
  Questions json.RawMessage `json:"questions,omitempty"`
}

type moduleSnapshot struct {
  ID               string `json:"id"`
  OriginalModuleID string `json:"original_module_id"`
  Title            string `json:"title"`
  Content          string `json:"content"`
  OrderIndex       int    `json:"order_index"`
}

type planInputs struct {
  CompanyID         uuid.UUID
  Baseline          []assessmentSnapshot
  ModuleResults     []assessmentSnapshot
  Modules           []moduleSnapshot
  LearningStyleText string
  KPIText           string
}

// baselineFingerprint digests the baseline-assessment set only. Module quiz
// results never enter the digest, so module activity can never invalidate a
// cached plan.
func baselineFingerprint(baseline []assessmentSnapshot) string {
  payload := struct {
    BaselineAssessments []assessmentSnapshot `json:"baseline_assessments"`
  }{BaselineAssessments: baseline}
  b, _ := json.Marshal(payload)
  sum := sha256.Sum256(b)
  return hex.EncodeToString(sum[:])
}

func (s *trainingPlanService) Generate(ctx context.Context, employeeID uuid.UUID) (*PlanResult, error) {
  if employeeID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing employee_id"))
  }

  // Concurrent generations for one employee share a single flight; the
  // advisory lock additionally serializes against other instances.
  v, err, _ := s.flight.Do(employeeID.String(), func() (any, error) {
    return s.generate(ctx, employeeID)
  })
  if err != nil {
    return nil, err
  }
  return v.(*PlanResult), nil
}

func (s *trainingPlanService) generate(ctx context.Context, employeeID uuid.UUID) (*PlanResult, error) {
  release, err := s.locker.Acquire(ctx, "plan:"+employeeID.String(), planLockTTL)
  if err != nil {
    return nil, fmt.Errorf("acquire plan lock: %w", err)
  }
  defer release()

  inputs, err := s.aggregate(ctx, employeeID)
  if err != nil {
    return nil, err
  }

  hash := baselineFingerprint(inputs.Baseline)
  s.log.Debug("Computed assessment fingerprint", "employee_id", employeeID, "hash", hash)

  existing, err := s.planRepo.GetLatestAssigned(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("load existing plan: %w", err)
  }
  if existing != nil && existing.AssessmentHash == hash {
    s.log.Info("No change in baseline assessments, returning cached plan", "employee_id", employeeID)
    return cachedResult(existing)
  }

  prompt := ComposePlanPrompt(
    mustJSONIndent(inputs.Baseline),
    mustJSONIndent(inputs.Modules),
    inputs.LearningStyleText,
    inputs.KPIText,
  )

  raw, err := s.ai.Complete(ctx, CompletionRequest{
    System:      trainerSystemPrompt,
    User:        prompt,
    MaxTokens:   planMaxTokens,
    Temperature: planTemperature,
  })
  if err != nil {
    return nil, err
  }

  extraction, err := ExtractPlanReasoning(raw)
  if err != nil {
    s.log.Error("Completion output unparseable", "employee_id", employeeID, "raw", raw)
    return nil, err
  }

  plan := NormalizePlan(extraction.Plan)
  reasoning := extraction.Reasoning

  if err := s.persist(ctx, employeeID, existing, plan, reasoning, hash); err != nil {
    return nil, err
  }

  return &PlanResult{Plan: plan, Reasoning: reasoning}, nil
}

func (s *trainingPlanService) aggregate(ctx context.Context, employeeID uuid.UUID) (*planInputs, error) {
  employees, err := s.employeeRepo.GetByIDs(ctx, nil, []uuid.UUID{employeeID})
  if err != nil {
    return nil, fmt.Errorf("load employee: %w", err)
  }
  if len(employees) == 0 || employees[0] == nil || employees[0].CompanyID == uuid.Nil {
    return nil, apierr.NotFound(fmt.Errorf("could not find company for employee"))
  }
  companyID := employees[0].CompanyID

  results, err := s.resultRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("load assessments: %w", err)
  }

  inputs := &planInputs{CompanyID: companyID}
  for _, r := range results {
    if r == nil {
      continue
    }
    if r.Assessment == nil {
      // Fail-open: a result whose definition cannot be resolved belongs to
      // neither set. Accepted data loss, logged for visibility.
      s.log.Warn("Dropping assessment result with unresolvable definition", "employee_id", employeeID, "result_id", r.ID)
      continue
    }
    snap := assessmentSnapshot{
      Score:     r.Score,
      MaxScore:  r.MaxScore,
      Feedback:  r.Feedback,
      Kind:      r.Assessment.Type,
      Questions: json.RawMessage(r.Assessment.Questions),
    }
    switch r.Assessment.Type {
    case types.AssessmentKindBaseline:
      inputs.Baseline = append(inputs.Baseline, snap)
    case types.AssessmentKindModule:
      inputs.ModuleResults = append(inputs.ModuleResults, snap)
    default:
      s.log.Warn("Dropping assessment result with ambiguous kind", "employee_id", employeeID, "result_id", r.ID, "kind", r.Assessment.Type)
    }
  }

  trainingModules, err := s.moduleRepo.GetTrainingModulesByCompanyID(ctx, nil, companyID)
  if err != nil {
    return nil, fmt.Errorf("load training modules: %w", err)
  }
  originalIDs := make([]uuid.UUID, 0, len(trainingModules))
  for _, tm := range trainingModules {
    if tm != nil {
      originalIDs = append(originalIDs, tm.ID)
    }
  }
  // A company with no modules is valid; a degenerate plan is still a plan.
  processed, err := s.moduleRepo.GetProcessedByOriginalModuleIDs(ctx, nil, originalIDs)
  if err != nil {
    return nil, fmt.Errorf("load processed modules: %w", err)
  }
  for _, pm := range processed {
    if pm == nil {
      continue
    }
    inputs.Modules = append(inputs.Modules, moduleSnapshot{
      ID:               pm.ID.String(),
      OriginalModuleID: pm.OriginalModuleID.String(),
      Title:            pm.Title,
      Content:          pm.Content,
      OrderIndex:       pm.OrderIndex,
    })
  }

  style, err := s.styleRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("load learning style: %w", err)
  }
  if style != nil {
    inputs.LearningStyleText = fmt.Sprintf("Learning Style: %s\nAnalysis: %s", style.StyleCode, style.Analysis)
  }

  kpiRows, err := s.kpiRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("load kpis: %w", err)
  }
  if len(kpiRows) > 0 {
    text := "Employee KPIs (description and score):\n"
    for i, row := range kpiRows {
      desc := "N/A"
      if row.KPI != nil && row.KPI.Description != "" {
        desc = row.KPI.Description
      }
      if i > 0 {
        text += "\n"
      }
      text += fmt.Sprintf("KPI: %s, Score: %g", desc, row.Score)
    }
    inputs.KPIText = text
  }

  return inputs, nil
}

// persist upserts by employee: the assigned row is updated in place when one
// exists, otherwise a new assigned row is inserted. Superseded plan content
// is not retained.
func (s *trainingPlanService) persist(ctx context.Context, employeeID uuid.UUID, existing *types.TrainingPlan, plan, reasoning any, hash string) error {
  planJSON := datatypes.JSON(mustJSON(plan))
  reasoningJSON := datatypes.JSON(mustJSON(reasoning))

  if existing != nil {
    if err := s.planRepo.UpdateFields(ctx, nil, existing.ID, map[string]any{
      "plan_json":       planJSON,
      "reasoning":       reasoningJSON,
      "status":          types.PlanStatusAssigned,
      "assessment_hash": hash,
      "updated_at":      time.Now(),
    }); err != nil {
      return fmt.Errorf("update plan: %w", err)
    }
    return nil
  }

  now := time.Now()
  _, err := s.planRepo.Create(ctx, nil, &types.TrainingPlan{
    ID:             uuid.New(),
    EmployeeID:     employeeID,
    PlanJSON:       planJSON,
    Reasoning:      reasoningJSON,
    Status:         types.PlanStatusAssigned,
    AssessmentHash: hash,
    CreatedAt:      now,
    UpdatedAt:      now,
  })
  if err != nil {
    return fmt.Errorf("insert plan: %w", err)
  }
  return nil
}

func cachedResult(stored *types.TrainingPlan) (*PlanResult, error) {
  var plan any
  var reasoning any
  if len(stored.PlanJSON) > 0 {
    if err := json.Unmarshal(stored.PlanJSON, &plan); err != nil {
      return nil, fmt.Errorf("decode cached plan: %w", err)
    }
  }
  if len(stored.Reasoning) > 0 {
    if err := json.Unmarshal(stored.Reasoning, &reasoning); err != nil {
      return nil, fmt.Errorf("decode cached reasoning: %w", err)
    }
  }
  return &PlanResult{Plan: plan, Reasoning: reasoning, Cached: true}, nil
}

func mustJSON(v any) []byte {
  b, err := json.Marshal(v)
  if err != nil {
    return []byte("null")
  }
  return b
}

func mustJSONIndent(v any) string {
  b, err := json.MarshalIndent(v, "", "  ")
  if err != nil {
    return "[]"
  }
  return string(b)
}
