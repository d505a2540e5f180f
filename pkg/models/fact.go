package models

import "time"

// Fact is a single piece of trivia shown in the feed
type Fact struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Text        string     `json:"text" db:"text"`
	TextHash    string     `json:"-" db:"text_hash"`
	Category    string     `json:"category" db:"category"`
	Source      string     `json:"source" db:"source"`
	ImageURL    string     `json:"image_url,omitempty" db:"image_url"`
	Keywords    StringList `json:"keywords" db:"keywords"`
	AuthorID    *string    `json:"author_id,omitempty" db:"author_id"`
	IsPublished bool       `json:"is_published" db:"is_published"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// FactWithAuthor is a fact joined with the username of its author, if any
type FactWithAuthor struct {
	Fact
	AuthorUsername *string `json:"author_username,omitempty" db:"author_username"`
}

// FactInput is an unsaved fact coming from a user, a spreadsheet or the AI generator
type FactInput struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Text     string   `json:"text" validate:"required"`
	Category string   `json:"category"`
	Source   string   `json:"source"`
	ImageURL string   `json:"image_url" validate:"omitempty,url"`
	Keywords []string `json:"keywords"`
}
