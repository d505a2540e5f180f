package service

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Categories accepted from the AI generator
var Categories = []string{"Science", "History", "Nature", "Technology", "Geography", "Health", "Space", "Animals", "Food", "Art"}

const (
	minFactTextLen  = 50
	maxFactTextLen  = 500
	maxFactTitleLen = 100
	defaultCategory = "Science"
)

func isCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

var (
	citationRe   = regexp.MustCompile(`\[(?:\d+|citation needed|note \d+)\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// cleanText strips citation markers and collapses whitespace
func cleanText(s string) string {
	s = citationRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// textHash fingerprints fact text for duplicate detection
func textHash(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(cleanText(s))))
	return hex.EncodeToString(sum[:])
}

func textLenOK(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minFactTextLen && n <= maxFactTextLen
}

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"Space", []string{"planet", "star", "galaxy", "nasa", "orbit", "moon", "astronaut", "black hole"}},
	{"Animals", []string{"animal", "species", "bird", "fish", "mammal", "insect", "octopus", "shark"}},
	{"History", []string{"ancient", "century", "empire", "war", "king", "emperor", "dynasty", "bc"}},
	{"Technology", []string{"computer", "software", "internet", "digital", "robot", "algorithm", "machine"}},
	{"Health", []string{"body", "disease", "health", "medicine", "brain", "heart", "vitamin"}},
	{"Food", []string{"food", "cook", "spice", "fruit", "honey", "chocolate", "coffee", "eat"}},
	{"Geography", []string{"country", "river", "mountain", "ocean", "continent", "island", "desert"}},
	{"Nature", []string{"plant", "tree", "forest", "weather", "climate", "flower"}},
	{"Art", []string{"painting", "artist", "museum", "sculpture", "music", "poet"}},
}

// categorize guesses a category from keyword hits, falling back to Science
func categorize(text string) string {
	words := strings.Fields(strings.ToLower(text))
	lower := " " + strings.Join(words, " ") + " "
	best, bestHits := defaultCategory, 0
	for _, ck := range categoryKeywords {
		hits := 0
		for _, w := range ck.words {
			hits += strings.Count(lower, " "+w)
		}
		if hits > bestHits {
			best, bestHits = ck.category, hits
		}
	}
	return best
}
