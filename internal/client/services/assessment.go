package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
)

var ErrEmptyMessage = errors.New("message is empty")

const (
	defaultNotificationType = "info"
	anonymousUserID         = "unknown"
)

type AssessmentAPI interface {
	Grade(ctx context.Context, answer string) (json.RawMessage, error)
	Notify(ctx context.Context, n *models.Notification) (json.RawMessage, error)
}

type AssessmentService struct {
	api AssessmentAPI
}

func NewAssessmentService(api AssessmentAPI) *AssessmentService {
	return &AssessmentService{api: api}
}

func (s *AssessmentService) Grade(ctx context.Context, answer string) (json.RawMessage, error) {
	return s.api.Grade(ctx, answer)
}

// Notify sends a notification. typ defaults to "info" and userID to
// "unknown".
func (s *AssessmentService) Notify(ctx context.Context, message, typ, userID string) (json.RawMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if typ == "" {
		typ = defaultNotificationType
	}
	if userID == "" {
		userID = anonymousUserID
	}
	return s.api.Notify(ctx, &models.Notification{Message: message, Type: typ, UserID: userID})
}
