package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/repos"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

const (
  quizQuestionCount = 5
  quizMaxTokens     = 2000
  quizTemperature   = 0.3
  gradeMaxTokens    = 800
  gradeTemperature  = 0.2
)

type QuizQuestion struct {
  Question     string   `json:"question"`
  Options      []string `json:"options"`
  CorrectIndex int      `json:"correct_index"`
}

type QuizResult struct {
  Score    float64 `json:"score"`
  MaxScore float64 `json:"max_score"`
  Feedback string  `json:"feedback"`
}

type QuizService interface {
  GetOrGenerate(ctx context.Context, employeeID, moduleID uuid.UUID) ([]QuizQuestion, error)
  Score(ctx context.Context, employeeID, moduleID uuid.UUID, answers []int) (*QuizResult, error)
}

type quizService struct {
  db  *gorm.DB
  log *logger.Logger

  assessmentRepo repos.AssessmentRepo
  resultRepo     repos.EmployeeAssessmentRepo
  moduleRepo     repos.ModuleRepo
  styleRepo      repos.LearningStyleRepo
  progressRepo   repos.ModuleProgressRepo
  ai             CompletionClient
}

func NewQuizService(
  db *gorm.DB,
  baseLog *logger.Logger,
  assessmentRepo repos.AssessmentRepo,
  resultRepo repos.EmployeeAssessmentRepo,
  moduleRepo repos.ModuleRepo,
  styleRepo repos.LearningStyleRepo,
  progressRepo repos.ModuleProgressRepo,
  ai CompletionClient,
) QuizService {
  return &quizService{
    db:             db,
    log:            baseLog.With("service", "QuizService"),
    assessmentRepo: assessmentRepo,
    resultRepo:     resultRepo,
    moduleRepo:     moduleRepo,
    styleRepo:      styleRepo,
    progressRepo:   progressRepo,
    ai:             ai,
  }
}

// GetOrGenerate returns the stored quiz for (module, employee style) when one
// exists, otherwise generates a new one and persists its definition so the
// next employee with the same style reuses it.
func (s *quizService) GetOrGenerate(ctx context.Context, employeeID, moduleID uuid.UUID) ([]QuizQuestion, error) {
  if employeeID == uuid.Nil || moduleID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing employee_id or module_id"))
  }

  styleCode := s.employeeStyle(ctx, employeeID)

  existing, err := s.assessmentRepo.FindModuleQuiz(ctx, nil, moduleID, styleCode)
  if err != nil {
    return nil, fmt.Errorf("load module quiz: %w", err)
  }
  if existing != nil {
    questions, err := decodeQuiz(existing.Questions)
    if err == nil {
      return questions, nil
    }
    // Regenerate rather than serve a stored definition we can no longer read.
    s.log.Warn("Stored quiz definition unreadable, regenerating", "assessment_id", existing.ID, "error", err)
  }

  modules, err := s.moduleRepo.GetProcessedByIDs(ctx, nil, []uuid.UUID{moduleID})
  if err != nil {
    return nil, fmt.Errorf("load module: %w", err)
  }
  if len(modules) == 0 || modules[0] == nil {
    return nil, apierr.NotFound(fmt.Errorf("module not found"))
  }
  module := modules[0]

  raw, err := s.ai.Complete(ctx, CompletionRequest{
    System:      trainerSystemPrompt,
    User:        ComposeQuizPrompt(module.Title, module.Content, styleCode, quizQuestionCount),
    MaxTokens:   quizMaxTokens,
    Temperature: quizTemperature,
  })
  if err != nil {
    return nil, err
  }

  questions, err := parseQuizOutput(raw)
  if err != nil {
    s.log.Error("Quiz output unparseable", "module_id", moduleID, "raw", raw)
    return nil, err
  }

  now := time.Now()
  def := &types.AssessmentDefinition{
    ID:            uuid.New(),
    Type:          types.AssessmentKindModule,
    ModuleID:      &moduleID,
    LearningStyle: styleCode,
    Questions:     datatypes.JSON(mustJSON(questions)),
    CreatedAt:     now,
    UpdatedAt:     now,
  }
  if _, err := s.assessmentRepo.Create(ctx, nil, []*types.AssessmentDefinition{def}); err != nil {
    return nil, fmt.Errorf("save quiz definition: %w", err)
  }

  return questions, nil
}

// Score grades a submitted attempt via the completion service, records the
// immutable result, and upserts module progress. Module results are never
// part of the plan fingerprint, so this can never trigger plan regeneration.
func (s *quizService) Score(ctx context.Context, employeeID, moduleID uuid.UUID, answers []int) (*QuizResult, error) {
  if employeeID == uuid.Nil || moduleID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing employee_id or module_id"))
  }
  if len(answers) == 0 {
    return nil, apierr.Validation(fmt.Errorf("no answers submitted"))
  }

  styleCode := s.employeeStyle(ctx, employeeID)
  def, err := s.assessmentRepo.FindModuleQuiz(ctx, nil, moduleID, styleCode)
  if err != nil {
    return nil, fmt.Errorf("load module quiz: %w", err)
  }
  if def == nil {
    return nil, apierr.NotFound(fmt.Errorf("no quiz found for module"))
  }

  raw, err := s.ai.Complete(ctx, CompletionRequest{
    System:      trainerSystemPrompt,
    User:        ComposeQuizFeedbackPrompt(string(def.Questions), mustJSONIndent(answers)),
    MaxTokens:   gradeMaxTokens,
    Temperature: gradeTemperature,
  })
  if err != nil {
    return nil, err
  }

  result, err := parseQuizFeedback(raw)
  if err != nil {
    s.log.Error("Quiz feedback output unparseable", "module_id", moduleID, "raw", raw)
    return nil, err
  }

  now := time.Now()
  if _, err := s.resultRepo.Create(ctx, nil, []*types.EmployeeAssessment{{
    ID:           uuid.New(),
    EmployeeID:   employeeID,
    AssessmentID: def.ID,
    Score:        result.Score,
    MaxScore:     result.MaxScore,
    Feedback:     result.Feedback,
    CreatedAt:    now,
  }}); err != nil {
    return nil, fmt.Errorf("save quiz result: %w", err)
  }

  if err := s.recordProgress(ctx, employeeID, moduleID, result, now); err != nil {
    return nil, err
  }

  return result, nil
}

// employeeStyle is best-effort: quizzes for unclassified employees use the
// unscoped variant rather than failing.
func (s *quizService) employeeStyle(ctx context.Context, employeeID uuid.UUID) string {
  record, err := s.styleRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    s.log.Warn("Failed to load learning style for quiz", "employee_id", employeeID, "error", err)
    return ""
  }
  if record == nil {
    return ""
  }
  return record.StyleCode
}

func (s *quizService) recordProgress(ctx context.Context, employeeID, moduleID uuid.UUID, result *QuizResult, now time.Time) error {
  existing, err := s.progressRepo.GetByEmployeeAndModule(ctx, nil, employeeID, moduleID)
  if err != nil {
    return fmt.Errorf("load module progress: %w", err)
  }

  if existing != nil {
    if err := s.progressRepo.UpdateFields(ctx, nil, existing.ID, map[string]any{
      "quiz_score":    result.Score,
      "max_score":     result.MaxScore,
      "quiz_feedback": result.Feedback,
      "completed_at":  now,
      "updated_at":    now,
    }); err != nil {
      return fmt.Errorf("update module progress: %w", err)
    }
    return nil
  }

  if _, err := s.progressRepo.Create(ctx, nil, &types.ModuleProgress{
    ID:           uuid.New(),
    EmployeeID:   employeeID,
    ModuleID:     moduleID,
    QuizScore:    &result.Score,
    MaxScore:     &result.MaxScore,
    QuizFeedback: result.Feedback,
    CompletedAt:  &now,
    CreatedAt:    now,
    UpdatedAt:    now,
  }); err != nil {
    return fmt.Errorf("create module progress: %w", err)
  }
  return nil
}

func decodeQuiz(raw datatypes.JSON) ([]QuizQuestion, error) {
  var questions []QuizQuestion
  if err := json.Unmarshal(raw, &questions); err != nil {
    return nil, err
  }
  if len(questions) == 0 {
    return nil, fmt.Errorf("quiz definition has no questions")
  }
  return questions, nil
}

func parseQuizOutput(raw string) ([]QuizQuestion, error) {
  extraction, err := ExtractPlanReasoning(raw)
  if err != nil {
    return nil, err
  }
  obj, ok := extraction.Plan.(map[string]any)
  if !ok {
    // The model sometimes returns the bare question array.
    if arr, ok := extraction.Plan.([]any); ok {
      return quizFromAny(arr, raw)
    }
    return nil, apierr.Unparseable(raw, fmt.Errorf("quiz output has unexpected shape"))
  }
  arr, ok := obj["quiz"].([]any)
  if !ok {
    return nil, apierr.Unparseable(raw, fmt.Errorf("quiz output missing quiz array"))
  }
  return quizFromAny(arr, raw)
}

func quizFromAny(arr []any, raw string) ([]QuizQuestion, error) {
  b := mustJSON(arr)
  var questions []QuizQuestion
  if err := json.Unmarshal(b, &questions); err != nil {
    return nil, apierr.Unparseable(raw, fmt.Errorf("quiz questions malformed: %w", err))
  }
  if len(questions) == 0 {
    return nil, apierr.Unparseable(raw, fmt.Errorf("quiz output has no questions"))
  }
  return questions, nil
}

// parseQuizFeedback parses the grading output strictly first; the sanitizer
// rewrites string contents too, so it only runs when the strict parse fails.
func parseQuizFeedback(raw string) (*QuizResult, error) {
  cleaned := StripCodeFences(raw)
  var result QuizResult
  if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
    if err := json.Unmarshal([]byte(SanitizeJSON(cleaned)), &result); err != nil {
      return nil, apierr.Unparseable(raw, fmt.Errorf("feedback output is not parseable as JSON: %w", err))
    }
  }
  if result.MaxScore <= 0 {
    return nil, apierr.Unparseable(raw, fmt.Errorf("feedback output has no max_score"))
  }
  return &result, nil
}
