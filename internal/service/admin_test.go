package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/synapz/pkg/models"
)

type fakeGenerator struct {
	facts []models.FactInput
	err   error
	count int
}

func (g *fakeGenerator) GenerateFacts(_ context.Context, _ string, count int) ([]models.FactInput, error) {
	g.count = count
	return g.facts, g.err
}

func longText(s string) string {
	return s + strings.Repeat(" and a bit more detail", 3)
}

func TestAdminGenerate(t *testing.T) {
	e := newTestEnv(t)
	e.fact(t, "Already here")
	gen := &fakeGenerator{facts: []models.FactInput{
		{Title: "Venus day", Text: longText("A day on Venus is longer than its year"), Category: "Space"},
		{Title: "Already here", Text: longText("This title exists in the catalog"), Category: "Science"},
		{Title: "Too short", Text: "short", Category: "Science"},
		{Title: "Odd category", Text: longText("This one uses a category nobody knows"), Category: "Gossip"},
	}}
	admin := NewAdminService(e.deps, gen)

	res, err := admin.Generate(e.ctx, GenerateInput{Topic: "Space", Count: 50})
	require.NoError(t, err)
	assert.Equal(t, 20, gen.count)
	assert.Equal(t, 4, res.Generated)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, []string{"Already here"}, res.DuplicateTitles)
	assert.Equal(t, []FactSummary{{Title: "Venus day", Category: "Space"}}, res.Facts)

	exists, err := e.store.Facts.ExistsByTitle(e.ctx, "Venus day")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = admin.Generate(e.ctx, GenerateInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminGenerate_Failures(t *testing.T) {
	e := newTestEnv(t)

	_, err := NewAdminService(e.deps, nil).Generate(e.ctx, GenerateInput{Topic: "Space"})
	assert.ErrorIs(t, err, ErrUnavailable)

	gen := &fakeGenerator{err: errors.New("boom")}
	_, err = NewAdminService(e.deps, gen).Generate(e.ctx, GenerateInput{Topic: "Space"})
	assert.EqualError(t, err, "failed to generate facts: boom")
	assert.Equal(t, defaultGenerateCount, gen.count)

	gen = &fakeGenerator{facts: []models.FactInput{{Title: "x", Text: "y", Category: "Space"}}}
	_, err = NewAdminService(e.deps, gen).Generate(e.ctx, GenerateInput{Topic: "Space"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminSeed(t *testing.T) {
	e := newTestEnv(t)
	admin := NewAdminService(e.deps, nil)

	res, err := admin.Seed(e.ctx, SeedInput{Facts: []models.FactInput{
		{Title: "Octopus blood", Text: longText("The octopus has blue blood [1] and three hearts")},
		{Title: "", Text: longText("Missing a title")},
		{Title: "Brief", Text: "too short"},
		{Title: strings.Repeat("t", 201), Text: longText("Title is far too long")},
		{Title: "Octopus blood", Text: longText("Same title twice in one batch")},
	}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 5, res.TotalFetched)
	assert.Equal(t, 1, res.TotalAdded)
	assert.Equal(t, 1, res.DuplicatesSkipped)
	assert.Empty(t, res.Errors)

	reasons := make([]string, len(res.Facts))
	for i, f := range res.Facts {
		reasons[i] = f.Reason
	}
	assert.Equal(t, []string{"", "Title missing", "Text length invalid", "Title too long", "Duplicate (title match)"}, reasons)
	assert.Equal(t, "Animals", res.Facts[0].Category)

	page, err := NewFactService(e.deps).List(e.ctx, ListFactsInput{}, "")
	require.NoError(t, err)
	require.Len(t, page.Facts, 1)
	assert.NotContains(t, page.Facts[0].Text, "[1]")

	_, err = admin.Seed(e.ctx, SeedInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminSeed_Fallback(t *testing.T) {
	e := newTestEnv(t)
	admin := NewAdminService(e.deps, nil)

	res, err := admin.Seed(e.ctx, SeedInput{UseFallback: true, Count: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalFetched)
	assert.Equal(t, 3, res.TotalAdded)

	res, err = admin.Seed(e.ctx, SeedInput{UseFallback: true})
	require.NoError(t, err)
	assert.Equal(t, len(fallbackFacts), res.TotalFetched)
	assert.Equal(t, len(fallbackFacts)-3, res.TotalAdded)
	assert.Equal(t, 3, res.DuplicatesSkipped)

	status, err := admin.Status(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, len(fallbackFacts), status.TotalFacts)
	assert.Len(t, status.RecentFacts, recentFactsLimit)
	assert.Equal(t, SuggestedTopics, status.SuggestedTopics)
	sum := 0
	for _, c := range status.FactsByCategory {
		sum += c.Count
	}
	assert.Equal(t, len(fallbackFacts), sum)
}

func TestTextHelpers(t *testing.T) {
	assert.Equal(t, "Water boils at 100 degrees.", cleanText("  Water   boils [2] at\n100 degrees.[citation needed] "))
	assert.Equal(t, textHash("Hello  World"), textHash("hello world"))
	assert.NotEqual(t, textHash("hello"), textHash("world"))

	assert.True(t, textLenOK(strings.Repeat("é", 50)))
	assert.False(t, textLenOK(strings.Repeat("a", 49)))
	assert.False(t, textLenOK(strings.Repeat("a", 501)))

	assert.Equal(t, "Space", categorize("The moon orbit around the planet"))
	assert.Equal(t, "Science", categorize("Nothing matches here"))
	assert.True(t, isCategory("Art"))
	assert.False(t, isCategory("art"))
}
