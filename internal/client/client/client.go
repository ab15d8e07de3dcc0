package client

import (
	"context"
	"encoding/json"
	"io"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
)

// Client is the typed surface of the Tutor Stack API.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.TokenResponse, error)
	CurrentUser(ctx context.Context) ([]byte, error)
	CurrentUserWithToken(ctx context.Context, token string) ([]byte, error)
	GoogleAuthorizeURL() string

	Health(ctx context.Context, path string) (json.RawMessage, error)

	Answer(ctx context.Context, question string) (*models.ChatAnswer, error)

	UploadPDF(ctx context.Context, filename string, content io.Reader, description string) error
	UploadedFiles(ctx context.Context) ([]models.UploadedFile, error)
	Ingest(ctx context.Context, text string) (json.RawMessage, error)
	Search(ctx context.Context, text string) (json.RawMessage, error)

	Grades(ctx context.Context) ([]string, error)
	UserCurriculum(ctx context.Context) (*models.CurriculumStructure, error)
	CurriculumStructure(ctx context.Context, grade string) (*models.GradeStructure, error)
	Concepts(ctx context.Context, grade, term, subject string) (*models.ConceptList, error)

	Grade(ctx context.Context, answer string) (json.RawMessage, error)
	Notify(ctx context.Context, n *models.Notification) (json.RawMessage, error)
}

var _ Client = (*HTTPClient)(nil)
