package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/pkg/models"
)

const (
	defaultGenerateCount = 5
	maxGenerateCount     = 20
	defaultSeedCount     = 50
	recentFactsLimit     = 5
	maxSeedTitleLen      = 200
)

// SuggestedTopics are offered to admins as generation prompts
var SuggestedTopics = []string{
	"Ancient Rome", "Quantum Physics", "Deep Sea Creatures", "Space Exploration", "Famous Inventors",
	"World Wonders", "Human Body", "Natural Disasters", "Ancient Civilizations", "Modern Technology",
}

// FactGenerator produces candidate facts about a topic
type FactGenerator interface {
	GenerateFacts(ctx context.Context, topic string, count int) ([]models.FactInput, error)
}

// GenerateInput asks the generator for facts about a topic
type GenerateInput struct {
	Topic string `json:"topic" validate:"required,max=200"`
	Count int    `json:"count"`
}

// FactSummary names an inserted fact
type FactSummary struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// GenerateResult reports what a generation run inserted
type GenerateResult struct {
	Topic           string        `json:"topic"`
	Requested       int           `json:"requested"`
	Generated       int           `json:"generated"`
	Inserted        int           `json:"inserted"`
	Duplicates      int           `json:"duplicates"`
	Facts           []FactSummary `json:"facts"`
	DuplicateTitles []string      `json:"duplicate_titles,omitempty"`
}

// SeedInput is a batch of facts to import. UseFallback seeds from the built-in set.
type SeedInput struct {
	Facts       []models.FactInput `json:"facts"`
	UseFallback bool               `json:"use_fallback"`
	Count       int                `json:"count"`
}

// SeedFactResult is the outcome for one fact of a seed batch
type SeedFactResult struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Added    bool   `json:"added"`
	Reason   string `json:"reason,omitempty"`
}

// SeedResult reports a seed batch
type SeedResult struct {
	Success           bool             `json:"success"`
	TotalFetched      int              `json:"total_fetched"`
	TotalAdded        int              `json:"total_added"`
	DuplicatesSkipped int              `json:"duplicates_skipped"`
	Facts             []SeedFactResult `json:"facts"`
	Errors            []string         `json:"errors"`
}

// SeedStatus summarises the fact catalog
type SeedStatus struct {
	TotalFacts      int                    `json:"total_facts"`
	FactsByCategory []models.CategoryCount `json:"facts_by_category"`
	RecentFacts     []models.Fact          `json:"recent_facts"`
	SuggestedTopics []string               `json:"suggested_topics"`
}

// AdminService grows the fact catalog
type AdminService struct {
	Deps
	generator FactGenerator
}

// NewAdminService creates an admin service. generator may be nil when no AI backend is configured.
func NewAdminService(deps Deps, generator FactGenerator) *AdminService {
	deps = deps.withDefaults()
	deps.Log = deps.Log.With("service", "admin")
	return &AdminService{Deps: deps, generator: generator}
}

// Generate asks the AI generator for facts and inserts the valid, new ones
func (s *AdminService) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: fact generator is not configured", ErrUnavailable)
	}

	count := in.Count
	switch {
	case count == 0:
		count = defaultGenerateCount
	case count < 1:
		count = 1
	case count > maxGenerateCount:
		count = maxGenerateCount
	}

	s.Log.Info("generating facts", "topic", in.Topic, "count", count)
	generated, err := s.generator.GenerateFacts(ctx, in.Topic, count)
	if err != nil {
		return nil, fmt.Errorf("failed to generate facts: %w", err)
	}

	var valid []models.FactInput
	for _, f := range generated {
		f.Title = strings.TrimSpace(f.Title)
		f.Text = strings.TrimSpace(f.Text)
		f.Category = strings.TrimSpace(f.Category)
		if f.Title == "" || utf8.RuneCountInString(f.Title) > maxFactTitleLen || !textLenOK(f.Text) || !isCategory(f.Category) {
			continue
		}
		valid = append(valid, f)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid facts generated", ErrInvalidInput)
	}

	titles := make([]string, len(valid))
	for i, f := range valid {
		titles[i] = f.Title
	}
	existing, err := s.Store.Facts.ExistingTitles(ctx, titles)
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{Topic: in.Topic, Requested: count, Generated: len(generated), Facts: []FactSummary{}}
	for _, f := range valid {
		if existing[f.Title] {
			res.Duplicates++
			res.DuplicateTitles = append(res.DuplicateTitles, f.Title)
			continue
		}
		if f.Source = strings.TrimSpace(f.Source); f.Source == "" {
			f.Source = "AI Generated"
		}
		if err := s.insert(ctx, f, f.Text); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				res.Duplicates++
				res.DuplicateTitles = append(res.DuplicateTitles, f.Title)
				continue
			}
			return nil, err
		}
		existing[f.Title] = true
		res.Inserted++
		res.Facts = append(res.Facts, FactSummary{Title: f.Title, Category: f.Category})
	}

	s.Log.Info("generated facts stored", "topic", in.Topic, "inserted", res.Inserted, "duplicates", res.Duplicates)
	return res, nil
}

// Seed imports a batch of facts, skipping invalid and duplicate ones
func (s *AdminService) Seed(ctx context.Context, in SeedInput) (*SeedResult, error) {
	facts := in.Facts
	if in.UseFallback {
		facts = s.fallbackSample(in.Count)
	}
	if len(facts) == 0 {
		return nil, fmt.Errorf("%w: no facts to seed", ErrInvalidInput)
	}

	res := &SeedResult{TotalFetched: len(facts), Facts: []SeedFactResult{}, Errors: []string{}}
	for _, f := range facts {
		title := strings.TrimSpace(f.Title)
		text := cleanText(f.Text)
		category := strings.TrimSpace(f.Category)
		if category == "" {
			category = categorize(text)
		}
		item := SeedFactResult{Title: title, Category: category}

		switch {
		case title == "":
			item.Reason = "Title missing"
		case utf8.RuneCountInString(title) > maxSeedTitleLen:
			item.Reason = "Title too long"
		case !textLenOK(text):
			item.Reason = "Text length invalid"
		}
		if item.Reason != "" {
			res.Facts = append(res.Facts, item)
			continue
		}

		exists, err := s.Store.Facts.ExistsByTitle(ctx, title)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to process fact %q: %v", title, err))
			continue
		}
		if exists {
			res.DuplicatesSkipped++
			item.Reason = "Duplicate (title match)"
			res.Facts = append(res.Facts, item)
			continue
		}

		f.Title, f.Category = title, category
		if err := s.insert(ctx, f, text); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				res.DuplicatesSkipped++
				item.Reason = "Database constraint violation (duplicate)"
				res.Facts = append(res.Facts, item)
				continue
			}
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to process fact %q: %v", title, err))
			continue
		}
		item.Added = true
		res.TotalAdded++
		res.Facts = append(res.Facts, item)
	}

	res.Success = res.TotalAdded > 0 || res.TotalFetched > 0
	s.Log.Info("seeded facts", "fetched", res.TotalFetched, "added", res.TotalAdded, "duplicates", res.DuplicatesSkipped, "errors", len(res.Errors))
	return res, nil
}

func (s *AdminService) insert(ctx context.Context, f models.FactInput, text string) error {
	return s.Store.Facts.Create(ctx, &models.Fact{
		Title:       f.Title,
		Text:        text,
		TextHash:    textHash(text),
		Category:    f.Category,
		Source:      strings.TrimSpace(f.Source),
		ImageURL:    strings.TrimSpace(f.ImageURL),
		Keywords:    models.StringList(f.Keywords),
		IsPublished: true,
		CreatedAt:   s.Now(),
	})
}

// fallbackSample returns up to count built-in facts in random order
func (s *AdminService) fallbackSample(count int) []models.FactInput {
	if count <= 0 {
		count = defaultSeedCount
	}
	facts := make([]models.FactInput, len(fallbackFacts))
	copy(facts, fallbackFacts)
	rand.Shuffle(len(facts), func(i, j int) { facts[i], facts[j] = facts[j], facts[i] })
	if count < len(facts) {
		facts = facts[:count]
	}
	return facts
}

// Status summarises the catalog for the admin panel
func (s *AdminService) Status(ctx context.Context) (*SeedStatus, error) {
	total, err := s.Store.Facts.Count(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.Store.Facts.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Store.Facts.Recent(ctx, recentFactsLimit)
	if err != nil {
		return nil, err
	}
	return &SeedStatus{
		TotalFacts:      total,
		FactsByCategory: byCategory,
		RecentFacts:     recent,
		SuggestedTopics: SuggestedTopics,
	}, nil
}
