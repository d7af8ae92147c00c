// Package entry defines the journal entry record and its partial forms.
package entry

import (
	"time"
)

// Untitled is shown for entries saved without a title.
const Untitled = "Untitled"

// Entry is a single journal record.
type Entry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Mood        Mood      `json:"mood,omitempty"`
	CustomColor string    `json:"customColor,omitempty"`
	TitleFont   string    `json:"titleFont,omitempty"`
	Pinned      bool      `json:"pinned"`
	Locked      bool      `json:"locked"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// Draft is the optional content an editor hands over on first save.
type Draft struct {
	Title       string `json:"title,omitempty"`
	Content     string `json:"content,omitempty"`
	Mood        Mood   `json:"mood,omitempty"`
	CustomColor string `json:"customColor,omitempty"`
	TitleFont   string `json:"titleFont,omitempty"`
}

// Empty reports whether the draft has neither a title nor content.
func (d Draft) Empty() bool {
	return d.Title == "" && d.Content == ""
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	Mood        *Mood   `json:"mood,omitempty"`
	CustomColor *string `json:"customColor,omitempty"`
	TitleFont   *string `json:"titleFont,omitempty"`
}

// PatchFromDraft sets every field of the draft, so the stored entry ends up
// mirroring the editor state exactly.
func PatchFromDraft(d Draft) Patch {
	return Patch{
		Title:       &d.Title,
		Content:     &d.Content,
		Mood:        &d.Mood,
		CustomColor: &d.CustomColor,
		TitleFont:   &d.TitleFont,
	}
}

// New builds an entry from a draft. Timestamps are normalised to UTC without
// a monotonic reading so a stored entry compares equal to its reload.
func New(id string, d Draft, now time.Time) *Entry {
	ts := Timestamp{Time: now.UTC().Round(0)}
	return &Entry{
		ID:          id,
		Title:       d.Title,
		Content:     d.Content,
		Mood:        d.Mood,
		CustomColor: d.CustomColor,
		TitleFont:   d.TitleFont,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Apply merges the patch into the entry.
func (e *Entry) Apply(p Patch) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Mood != nil {
		e.Mood = *p.Mood
	}
	if p.CustomColor != nil {
		e.CustomColor = *p.CustomColor
	}
	if p.TitleFont != nil {
		e.TitleFont = *p.TitleFont
	}
}

// Touch records a mutation.
func (e *Entry) Touch(now time.Time) {
	e.UpdatedAt = Timestamp{Time: now.UTC().Round(0)}
}

// Clone returns an independent copy.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// DisplayTitle returns the title, or Untitled when there is none.
func (e *Entry) DisplayTitle() string {
	if e.Title == "" {
		return Untitled
	}
	return e.Title
}

// Color is the card background: the custom color wins over the mood swatch.
// It returns "" when neither is set.
func (e *Entry) Color() string {
	if e.CustomColor != "" {
		return e.CustomColor
	}
	return e.Mood.Swatch()
}

// Normalize fills fields that older records were written without.
func (e *Entry) Normalize() {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
}
