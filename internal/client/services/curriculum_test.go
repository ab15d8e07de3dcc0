package services

import (
	"context"
	"testing"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCurriculumAPI struct {
	list  *models.ConceptList
	calls int
}

func (f *fakeCurriculumAPI) Grades(context.Context) ([]string, error) {
	return []string{"Grade 1"}, nil
}

func (f *fakeCurriculumAPI) UserCurriculum(context.Context) (*models.CurriculumStructure, error) {
	return &models.CurriculumStructure{Grade: "Grade 1"}, nil
}

func (f *fakeCurriculumAPI) CurriculumStructure(_ context.Context, grade string) (*models.GradeStructure, error) {
	return &models.GradeStructure{Grade: grade}, nil
}

func (f *fakeCurriculumAPI) Concepts(context.Context, string, string, string) (*models.ConceptList, error) {
	f.calls++
	return f.list, nil
}

func TestCurriculum_ConceptsRequiresFullSelection(t *testing.T) {
	api := &fakeCurriculumAPI{}
	s := NewCurriculumService(api)

	_, err := s.Concepts(context.Background(), "Grade 1", " ", "Math")
	require.ErrorIs(t, err, ErrIncompleteSelection)
	_, err = s.Structure(context.Background(), "")
	require.ErrorIs(t, err, ErrIncompleteSelection)
	assert.Zero(t, api.calls)
}

func TestCurriculum_ConceptsNormalized(t *testing.T) {
	api := &fakeCurriculumAPI{list: &models.ConceptList{
		Concepts: []models.Concept{{Name: "Counting"}},
	}}
	s := NewCurriculumService(api)

	list, err := s.Concepts(context.Background(), "Grade 1", "Term 1", "Math")
	require.NoError(t, err)
	want := &models.ConceptMetadata{Grade: "Grade 1", Term: "Term 1", Subject: "Math"}
	if diff := cmp.Diff(want, list.Concepts[0].Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestCurriculum_ConceptsGenerating(t *testing.T) {
	api := &fakeCurriculumAPI{list: &models.ConceptList{
		Grade: "Grade 1", Term: "Term 1", Subject: "Math",
		Concepts: []models.Concept{{Name: models.GeneratingConceptsName}},
	}}
	list, err := NewCurriculumService(api).Concepts(context.Background(), "Grade 1", "Term 1", "Math")
	require.NoError(t, err)
	assert.True(t, list.Generating)
	assert.Empty(t, list.Concepts)
}

func TestFilterConcepts(t *testing.T) {
	concepts := []models.Concept{
		{Name: "Addition", Description: "Adding numbers"},
		{Name: "Vocabulary", Description: "Words"},
		{Name: "Shapes", Description: "Circles and SQUARES"},
	}

	names := func(cs []models.Concept) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Addition"}, names(FilterConcepts(concepts, "ADD")))
	assert.Equal(t, []string{"Shapes"}, names(FilterConcepts(concepts, "squares")))
	assert.Equal(t, []string{"Vocabulary"}, names(FilterConcepts(concepts, "vOcAb")))
	assert.Len(t, FilterConcepts(concepts, "  "), 3)
	assert.Empty(t, FilterConcepts(concepts, "zzz"))
}
