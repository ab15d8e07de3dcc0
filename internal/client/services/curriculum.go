package services

import (
	"context"
	"errors"
	"strings"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"golang.org/x/text/cases"
)

var ErrIncompleteSelection = errors.New("grade, term and subject are all required")

type CurriculumAPI interface {
	Grades(ctx context.Context) ([]string, error)
	UserCurriculum(ctx context.Context) (*models.CurriculumStructure, error)
	CurriculumStructure(ctx context.Context, grade string) (*models.GradeStructure, error)
	Concepts(ctx context.Context, grade, term, subject string) (*models.ConceptList, error)
}

type CurriculumService struct {
	api CurriculumAPI
}

func NewCurriculumService(api CurriculumAPI) *CurriculumService {
	return &CurriculumService{api: api}
}

func (s *CurriculumService) Grades(ctx context.Context) ([]string, error) {
	return s.api.Grades(ctx)
}

func (s *CurriculumService) UserCurriculum(ctx context.Context) (*models.CurriculumStructure, error) {
	return s.api.UserCurriculum(ctx)
}

func (s *CurriculumService) Structure(ctx context.Context, grade string) (*models.GradeStructure, error) {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return nil, ErrIncompleteSelection
	}
	return s.api.CurriculumStructure(ctx, grade)
}

// Concepts fetches the concepts of one subject. The returned list is
// normalized; check Generating before reporting an empty subject.
func (s *CurriculumService) Concepts(ctx context.Context, grade, term, subject string) (*models.ConceptList, error) {
	grade, term, subject = strings.TrimSpace(grade), strings.TrimSpace(term), strings.TrimSpace(subject)
	if grade == "" || term == "" || subject == "" {
		return nil, ErrIncompleteSelection
	}

	list, err := s.api.Concepts(ctx, grade, term, subject)
	if err != nil {
		return nil, err
	}
	if list.Grade == "" {
		list.Grade, list.Term, list.Subject = grade, term, subject
	}
	list.Normalize()
	return list, nil
}

// FilterConcepts keeps the concepts whose name or description contains term,
// compared case-insensitively. A blank term keeps everything.
func FilterConcepts(concepts []models.Concept, term string) []models.Concept {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return concepts
	}

	var out []models.Concept
	for _, c := range concepts {
		if strings.Contains(fold.String(c.Name), needle) || strings.Contains(fold.String(c.Description), needle) {
			out = append(out, c)
		}
	}
	return out
}
