package draft

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	d, err := New(Snapshot{
		Title:       "  Menemen ",
		Ingredients: []string{"2 domates", "", "  "},
		CurrentStep: 2,
		AuthorEmail: "betty@egelibetty.com",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, d.ID())
	assert.Equal(t, "Menemen", d.Title())
	assert.Equal(t, []string{"2 domates"}, d.Ingredients())
	assert.Equal(t, 2, d.CurrentStep())
	assert.Equal(t, "betty@egelibetty.com", d.AuthorEmail())
	assert.False(t, d.UpdatedAt().IsZero())
}

func TestNewDraftDefaultsToFirstStep(t *testing.T) {
	d, err := New(Snapshot{Title: "Çılbır"})
	require.NoError(t, err)
	assert.Equal(t, FirstStep, d.CurrentStep())
}

func TestNewDraftRejectsOutOfRangeStep(t *testing.T) {
	_, err := New(Snapshot{CurrentStep: 5})
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = New(Snapshot{CurrentStep: -1})
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestApplyOverwritesSnapshot(t *testing.T) {
	d, err := New(Snapshot{Title: "Eski", CurrentStep: 1})
	require.NoError(t, err)
	id := d.ID()

	err = d.Apply(Snapshot{
		Title:       "Yeni",
		Steps:       []string{"karıştır", "pişir"},
		Images:      []string{"https://cdn.example.com/a.jpg"},
		CurrentStep: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, id, d.ID(), "apply must not change identity")
	assert.Equal(t, "Yeni", d.Title())
	assert.Equal(t, []string{"karıştır", "pişir"}, d.Steps())
	assert.Equal(t, 3, d.CurrentStep())
	assert.Equal(t, "https://cdn.example.com/a.jpg", d.CoverImage())
}

func TestApplyKeepsAuthorWhenSnapshotOmitsIt(t *testing.T) {
	d, err := New(Snapshot{AuthorEmail: "betty@egelibetty.com"})
	require.NoError(t, err)

	require.NoError(t, d.Apply(Snapshot{Title: "Güncel", CurrentStep: 2}))
	assert.Equal(t, "betty@egelibetty.com", d.AuthorEmail())
}

func TestCoverImageEmpty(t *testing.T) {
	d, err := New(Snapshot{})
	require.NoError(t, err)
	assert.Empty(t, d.CoverImage())
}
