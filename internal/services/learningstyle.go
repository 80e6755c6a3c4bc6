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
  surveyLength            = 40
  classificationMaxTokens = 1000
  classificationTemp      = 0.2
  classificationTimeout   = 2 * time.Minute
)

var validStyleCodes = map[string]bool{"CS": true, "AS": true, "AR": true, "CR": true}

type LearningStyleService interface {
  Submit(ctx context.Context, employeeID uuid.UUID, answers []int) (*types.LearningStyleRecord, error)
  Get(ctx context.Context, employeeID uuid.UUID) (*types.LearningStyleRecord, error)
}

type learningStyleService struct {
  db  *gorm.DB
  log *logger.Logger

  styleRepo repos.LearningStyleRepo
  ai        CompletionClient
}

func NewLearningStyleService(db *gorm.DB, baseLog *logger.Logger, styleRepo repos.LearningStyleRepo, ai CompletionClient) LearningStyleService {
  return &learningStyleService{
    db:        db,
    log:       baseLog.With("service", "LearningStyleService"),
    styleRepo: styleRepo,
    ai:        ai,
  }
}

// Submit stores the raw survey answers and kicks off classification in the
// background. The style code and analysis land asynchronously once the
// classification call succeeds; the answers themselves are write-once.
func (s *learningStyleService) Submit(ctx context.Context, employeeID uuid.UUID, answers []int) (*types.LearningStyleRecord, error) {
  if employeeID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing employee_id"))
  }
  if len(answers) != surveyLength {
    return nil, apierr.Validation(fmt.Errorf("expected %d survey answers, got %d", surveyLength, len(answers)))
  }
  for i, a := range answers {
    if a < 1 || a > 5 {
      return nil, apierr.Validation(fmt.Errorf("answer %d out of Likert range 1-5: %d", i+1, a))
    }
  }

  existing, err := s.styleRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("check existing learning style: %w", err)
  }
  if existing != nil {
    return nil, apierr.Validation(fmt.Errorf("learning style already submitted for this employee"))
  }

  now := time.Now()
  record := &types.LearningStyleRecord{
    ID:         uuid.New(),
    EmployeeID: employeeID,
    Answers:    datatypes.JSON(mustJSON(answers)),
    CreatedAt:  now,
    UpdatedAt:  now,
  }
  if _, err := s.styleRepo.Create(ctx, nil, record); err != nil {
    return nil, fmt.Errorf("save survey answers: %w", err)
  }

  go func() {
    bgCtx, cancel := context.WithTimeout(context.Background(), classificationTimeout)
    defer cancel()
    if err := s.classify(bgCtx, employeeID, answers); err != nil {
      s.log.Error("Learning style classification failed", "employee_id", employeeID, "error", err)
    }
  }()

  return record, nil
}

func (s *learningStyleService) Get(ctx context.Context, employeeID uuid.UUID) (*types.LearningStyleRecord, error) {
  if employeeID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing employee_id"))
  }
  record, err := s.styleRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("load learning style: %w", err)
  }
  if record == nil {
    return nil, apierr.NotFound(fmt.Errorf("no learning style record for employee"))
  }
  return record, nil
}

type classificationResult struct {
  Scores         map[string]int `json:"scores"`
  DominantStyle  string         `json:"dominant_style"`
  SecondaryStyle string         `json:"secondary_style"`
  Report         string         `json:"report"`
}

func (s *learningStyleService) classify(ctx context.Context, employeeID uuid.UUID, answers []int) error {
  prompt := ComposeLearningStylePrompt(answers)

  raw, err := s.ai.Complete(ctx, CompletionRequest{
    System:      "You are an expert learning style analyst.",
    User:        prompt,
    MaxTokens:   classificationMaxTokens,
    Temperature: classificationTemp,
  })
  if err != nil {
    return err
  }

  // Strict parse first: the sanitizer rewrites string contents too, so it
  // only runs when the fence-stripped text is not valid JSON on its own.
  cleaned := StripCodeFences(raw)
  var result classificationResult
  if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
    if err := json.Unmarshal([]byte(SanitizeJSON(cleaned)), &result); err != nil {
      return apierr.Unparseable(raw, fmt.Errorf("classification output is not parseable as JSON: %w", err))
    }
  }
  if !validStyleCodes[result.DominantStyle] {
    return apierr.Unparseable(raw, fmt.Errorf("classification returned unknown style code %q", result.DominantStyle))
  }
  if result.Report == "" {
    return apierr.Unparseable(raw, fmt.Errorf("classification returned empty report"))
  }

  if err := s.styleRepo.UpdateClassification(ctx, nil, employeeID, result.DominantStyle, result.Report); err != nil {
    return fmt.Errorf("save classification: %w", err)
  }
  s.log.Info("Learning style classified", "employee_id", employeeID, "style", result.DominantStyle)
  return nil
}
