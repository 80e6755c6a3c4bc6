package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/manishchum/Lucid-Prototype/internal/apierr"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
  Raw     string `json:"raw,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

// RespondErr maps a service error onto the structured error envelope. The raw
// completion text rides along for unparseable responses so operators can
// diagnose model output without digging through logs.
func RespondErr(c *gin.Context, err error) {
  ae := apierr.From(err)
  c.JSON(ae.Status, ErrorEnvelope{
    Error: APIError{
      Message: ae.Error(),
      Code:    ae.Code,
      Raw:     ae.Raw,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}
