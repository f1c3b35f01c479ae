package models

import (
	"time"

	"gorm.io/datatypes"
)

// Section controls which presentation surface lists a post.
type Section string

const (
	SectionBlog    Section = "blog"
	SectionWork    Section = "work"
	SectionTrading Section = "trading"
)

// DefaultCategory is the sentinel label for posts saved without a category.
const DefaultCategory = "未分類"

// DateLayout is the day-granularity stamp used for createdAt/updatedAt,
// both in storage and on the wire.
const DateLayout = "2006-01-02"

// Post represents a single content entry (article, project or trade log)
type Post struct {
	ID        string                      `json:"id" db:"id" gorm:"type:text;primaryKey;not null"`
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Summary   string                      `json:"summary" db:"summary" gorm:"type:text"`
	Content   string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Category  string                      `json:"category" db:"category" gorm:"type:text"`
	Tags      datatypes.JSONSlice[string] `json:"tags" db:"tags" gorm:"type:text"`
	Section   Section                     `json:"section" db:"section" gorm:"type:text;not null;default:blog"`
	CreatedAt string                      `json:"createdAt" db:"created_at" gorm:"column:created_at;type:text;not null"`
	UpdatedAt string                      `json:"updatedAt" db:"updated_at" gorm:"column:updated_at;type:text;not null"`
}

func (Post) TableName() string {
	return "posts"
}

// NormalizeSection maps unknown or absent section values to SectionBlog.
func NormalizeSection(s Section) Section {
	switch s {
	case SectionBlog, SectionWork, SectionTrading:
		return s
	default:
		return SectionBlog
	}
}

// Normalize applies the documented defaults in place so that every consumer
// observes already-normalized data: non-empty category, non-nil tags and a
// known section value.
func (p *Post) Normalize() {
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	p.Section = NormalizeSection(p.Section)
}

// Today returns the current day stamp in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}

// PostDraft carries the client-supplied fields of a create request.
// Title and Content are required; the rest default per Normalize.
type PostDraft struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Section  string   `json:"section"`
}

// PostPatch carries the fields of an update request. Nil fields keep the
// stored value. Tags distinguishes absent (nil) from explicitly empty.
type PostPatch struct {
	Title    *string   `json:"title"`
	Summary  *string   `json:"summary"`
	Content  *string   `json:"content"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Section  *string   `json:"section"`
}
