package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
)

// MaxUploadSize is the largest PDF the content service accepts.
const MaxUploadSize = 10 << 20

var (
	ErrNotPDF       = errors.New("only PDF files are allowed")
	ErrFileTooLarge = errors.New("file size must be less than 10MB")
	ErrEmptyText    = errors.New("text is empty")
)

type ContentAPI interface {
	UploadPDF(ctx context.Context, filename string, content io.Reader, description string) error
	UploadedFiles(ctx context.Context) ([]models.UploadedFile, error)
	Ingest(ctx context.Context, text string) (json.RawMessage, error)
	Search(ctx context.Context, text string) (json.RawMessage, error)
}

type ContentService struct {
	api ContentAPI
}

func NewContentService(api ContentAPI) *ContentService {
	return &ContentService{api: api}
}

// UploadPDF sends the file at path. The file is checked locally first: it must
// fit in MaxUploadSize and its content must sniff as a PDF.
func (s *ContentService) UploadPDF(ctx context.Context, path, description string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxUploadSize {
		return ErrFileTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if http.DetectContentType(head[:n]) != "application/pdf" {
		return ErrNotPDF
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %s: %w", path, err)
	}

	return s.api.UploadPDF(ctx, filepath.Base(path), f, description)
}

func (s *ContentService) UploadedFiles(ctx context.Context) ([]models.UploadedFile, error) {
	return s.api.UploadedFiles(ctx)
}

func (s *ContentService) Ingest(ctx context.Context, text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	return s.api.Ingest(ctx, text)
}

func (s *ContentService) Search(ctx context.Context, text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	return s.api.Search(ctx, text)
}
