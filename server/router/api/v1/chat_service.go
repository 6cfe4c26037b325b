package v1

import (
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/dashwise/dashwise/assistant"
)

type ChatService struct {
	Assistant *assistant.Assistant
}

type ChatRequest struct {
	Query string `json:"query"`
}

// Chat resolves one natural-language query into an action object.
// The handler never returns a 5xx for resolution problems; the assistant
// degrades internally and always produces a well-formed action.
func (s *ChatService) Chat(c echo.Context) error {
	var request ChatRequest
	if err := c.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	requestID := shortuuid.New()
	c.Response().Header().Set("X-Request-Id", requestID)

	startTime := time.Now()
	action := s.Assistant.HandleQuery(c.Request().Context(), query)

	slog.Info("chat query resolved",
		"request_id", requestID,
		"action_type", action.ActionType,
		"target_page", action.TargetPage,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	return c.JSON(http.StatusOK, action)
}
