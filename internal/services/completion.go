package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strings"
  "time"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/utils"
)

// CompletionClient is the black-box text-in/text-out completion service.
// Failures are terminal for the request; the pipeline persists nothing on
// failure, so callers may simply re-invoke it later.
type CompletionClient interface {
  Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
  System      string
  User        string
  MaxTokens   int
  Temperature float64
}

type openAIClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
}

func NewOpenAIClient(log *logger.Logger) (CompletionClient, error) {
  apiKey := os.Getenv("OPENAI_API_KEY")
  if apiKey == "" {
    return nil, fmt.Errorf("missing OPENAI_API_KEY")
  }

  baseURL := os.Getenv("OPENAI_BASE_URL")
  if baseURL == "" {
    baseURL = "https://api.openai.com"
  }

  model := os.Getenv("OPENAI_MODEL")
  if model == "" {
    model = "gpt-4o-mini"
  }

  timeoutSec := utils.GetEnvAsInt("OPENAI_TIMEOUT_SECONDS", 180, log)
  if timeoutSec <= 0 {
    timeoutSec = 180
  }

  return &openAIClient{
    log:        log.With("service", "OpenAIClient"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }, nil
}

type chatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type chatCompletionRequest struct {
  Model       string        `json:"model"`
  Messages    []chatMessage `json:"messages"`
  MaxTokens   int           `json:"max_tokens,omitempty"`
  Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
    } `json:"message"`
  } `json:"choices"`
}

func (c *openAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
  messages := make([]chatMessage, 0, 2)
  if req.System != "" {
    messages = append(messages, chatMessage{Role: "system", Content: req.System})
  }
  messages = append(messages, chatMessage{Role: "user", Content: req.User})

  body := chatCompletionRequest{
    Model:       c.model,
    Messages:    messages,
    MaxTokens:   req.MaxTokens,
    Temperature: req.Temperature,
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return "", apierr.Upstream(fmt.Errorf("encode completion request: %w", err))
  }

  httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", &buf)
  if err != nil {
    return "", apierr.Upstream(err)
  }
  httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
  httpReq.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(httpReq)
  if err != nil {
    return "", apierr.Upstream(fmt.Errorf("completion call failed: %w", err))
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", apierr.Upstream(fmt.Errorf("read completion response: %w", readErr))
  }

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    c.log.Error("Completion service returned non-2xx", "status", resp.StatusCode, "body", string(raw))
    return "", apierr.Upstream(fmt.Errorf("completion http %d: %s", resp.StatusCode, string(raw)))
  }

  var parsed chatCompletionResponse
  if err := json.Unmarshal(raw, &parsed); err != nil {
    return "", apierr.Upstream(fmt.Errorf("decode completion response: %w", err))
  }
  if len(parsed.Choices) == 0 {
    return "", apierr.Upstream(fmt.Errorf("completion response has no choices"))
  }

  return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
