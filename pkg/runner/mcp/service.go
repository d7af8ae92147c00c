// Package mcp provides the Model Context Protocol server integration for mindful.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/profile"
)

// Service coordinates the journal operations shared by the MCP server.
// Locked entries are only reachable with the locker password.
type Service struct {
	Journal *journal.Store
	Gate    *locker.Gate
	Profile *profile.Profile

	now func() time.Time
}

var (
	// ErrEntryNotFound is returned when an entry cannot be located.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrLocked is returned when a locked entry is requested without the
	// correct locker password.
	ErrLocked = errors.New("entry is locked: the locker password is required")
)

// CreateEntryOptions captures the parameters used to create a new entry.
type CreateEntryOptions struct {
	Title       string
	Content     string
	Mood        string
	CustomColor string
	TitleFont   string
	Pinned      bool
	Locked      bool
}

// UpdateEntryOptions captures a partial edit. Nil fields are left alone.
type UpdateEntryOptions struct {
	ID          string
	Password    string
	Title       *string
	Content     *string
	Mood        *string
	CustomColor *string
	TitleFont   *string
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content,omitempty"`
	Preview     string `json:"preview,omitempty"`
	Mood        string `json:"mood,omitempty"`
	MoodLabel   string `json:"moodLabel,omitempty"`
	Color       string `json:"color,omitempty"`
	CustomColor string `json:"customColor,omitempty"`
	TitleFont   string `json:"titleFont,omitempty"`
	Pinned      bool   `json:"pinned"`
	Locked      bool   `json:"locked"`
	CreatedISO  string `json:"createdAt"`
	UpdatedISO  string `json:"updatedAt"`
	CreatedUnix int64  `json:"createdUnix"`
	UpdatedUnix int64  `json:"updatedUnix"`
}

// SummaryDTO is the dashboard header: who is writing and how much.
type SummaryDTO struct {
	Name       string        `json:"name,omitempty"`
	Background string        `json:"background"`
	HasLocker  bool          `json:"hasLocker"`
	Stats      journal.Stats `json:"stats"`
}

// NewService builds a service over the journal and its locker.
func NewService(j *journal.Store, g *locker.Gate, p *profile.Profile) *Service {
	return &Service{Journal: j, Gate: g, Profile: p, now: time.Now}
}

// ParseView maps a view name onto a journal filter.
func ParseView(view string) (journal.Filter, error) {
	switch strings.ToLower(strings.TrimSpace(view)) {
	case "", "unlocked", "default":
		return journal.Unlocked, nil
	case "locked":
		return journal.Locked, nil
	case "all":
		return journal.All, nil
	}
	return journal.Unlocked, fmt.Errorf("unknown view %q (expected unlocked, locked or all)", view)
}

// Summary reports the profile name and stats over the default view.
func (s *Service) Summary(ctx context.Context) (*SummaryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	out := &SummaryDTO{
		Background: string(profile.BackgroundDefault),
		Stats:      journal.Summarize(s.Journal.List(journal.Unlocked), s.now()),
	}
	if s.Profile != nil {
		out.Name = s.Profile.Name()
		bg := s.Profile.Background()
		out.Background = string(bg.Mode)
		if c := bg.Color(); c != "" {
			out.Background = c
		}
	}
	if s.Gate != nil {
		out.HasLocker = s.Gate.HasSecret()
	}
	return out, nil
}

// ListEntries returns a view in display order. Any view other than the
// default one needs the locker password.
func (s *Service) ListEntries(ctx context.Context, filter journal.Filter, password string) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if filter != journal.Unlocked && !s.verify(password) {
		return nil, ErrLocked
	}
	return toDTOs(s.Journal.List(filter)), nil
}

// CreateEntry stores a new entry.
func (s *Service) CreateEntry(ctx context.Context, opts CreateEntryOptions) (*EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	mood, err := entry.ParseMood(opts.Mood)
	if err != nil {
		return nil, err
	}
	custom, err := normalizeColor(opts.CustomColor)
	if err != nil {
		return nil, err
	}

	e, err := s.Journal.Create(entry.Draft{
		Title:       opts.Title,
		Content:     opts.Content,
		Mood:        mood,
		CustomColor: custom,
		TitleFont:   opts.TitleFont,
	})
	if err != nil {
		return nil, err
	}
	if opts.Pinned {
		if err := s.Journal.TogglePin(e.ID); err != nil {
			return nil, err
		}
	}
	if opts.Locked {
		if err := s.Journal.ToggleLock(e.ID); err != nil {
			return nil, err
		}
	}
	return s.dto(e.ID)
}

// UpdateEntry applies a partial edit.
func (s *Service) UpdateEntry(ctx context.Context, opts UpdateEntryOptions) (*EntryDTO, error) {
	if _, err := s.authorized(opts.ID, opts.Password); err != nil {
		return nil, err
	}

	patch := entry.Patch{
		Title:     opts.Title,
		Content:   opts.Content,
		TitleFont: opts.TitleFont,
	}
	if opts.Mood != nil {
		mood, err := entry.ParseMood(*opts.Mood)
		if err != nil {
			return nil, err
		}
		patch.Mood = &mood
	}
	if opts.CustomColor != nil {
		custom, err := normalizeColor(*opts.CustomColor)
		if err != nil {
			return nil, err
		}
		patch.CustomColor = &custom
	}

	if err := s.Journal.Update(opts.ID, patch); err != nil {
		return nil, err
	}
	return s.dto(opts.ID)
}

// DeleteEntry removes an entry.
func (s *Service) DeleteEntry(ctx context.Context, id, password string) error {
	if _, err := s.authorized(id, password); err != nil {
		return err
	}
	return s.Journal.Delete(id)
}

// TogglePin flips the pinned flag.
func (s *Service) TogglePin(ctx context.Context, id, password string) (*EntryDTO, error) {
	if _, err := s.authorized(id, password); err != nil {
		return nil, err
	}
	if err := s.Journal.TogglePin(id); err != nil {
		return nil, err
	}
	return s.dto(id)
}

// ToggleLock flips the locked flag. Locking is always allowed; unlocking an
// entry needs the password like any other access to it. The returned entry
// is stripped of content once it is locked.
func (s *Service) ToggleLock(ctx context.Context, id, password string) (*EntryDTO, error) {
	if _, err := s.authorized(id, password); err != nil {
		return nil, err
	}
	if err := s.Journal.ToggleLock(id); err != nil {
		return nil, err
	}
	dto, err := s.dto(id)
	if err != nil {
		return nil, err
	}
	if dto.Locked && !s.verify(password) {
		dto.Content, dto.Preview = "", ""
	}
	return dto, nil
}

// SearchEntries matches titles and plain-text content in the default view.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return []EntryDTO{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	results := make([]EntryDTO, 0, limit)
	for _, e := range s.Journal.List(journal.Unlocked) {
		if len(results) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(entry.PlainText(e.Content)), q) {
			results = append(results, toDTO(e))
		}
	}
	return results, nil
}

// EntryByID locates an entry by id and returns the DTO representation.
func (s *Service) EntryByID(ctx context.Context, id, password string) (*EntryDTO, error) {
	e, err := s.authorized(id, password)
	if err != nil {
		return nil, err
	}
	dto := toDTO(e)
	return &dto, nil
}

func (s *Service) ready() error {
	if s.Journal == nil {
		return errors.New("journal is not configured")
	}
	return nil
}

func (s *Service) verify(password string) bool {
	return s.Gate != nil && password != "" && s.Gate.Verify(password)
}

// authorized finds the entry and checks the password if it is locked.
func (s *Service) authorized(id, password string) (*entry.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	e, ok := s.Journal.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if e.Locked && !s.verify(password) {
		return nil, ErrLocked
	}
	return e, nil
}

func (s *Service) dto(id string) (*EntryDTO, error) {
	e, ok := s.Journal.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	dto := toDTO(e)
	return &dto, nil
}

func normalizeColor(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return profile.NormalizeColor(raw)
}

func toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

func toDTO(e *entry.Entry) EntryDTO {
	return EntryDTO{
		ID:          e.ID,
		Title:       e.DisplayTitle(),
		Content:     e.Content,
		Preview:     e.Preview(120),
		Mood:        string(e.Mood),
		MoodLabel:   e.Mood.Label(),
		Color:       e.Color(),
		CustomColor: e.CustomColor,
		TitleFont:   e.TitleFont,
		Pinned:      e.Pinned,
		Locked:      e.Locked,
		CreatedISO:  entry.FormatTime(e.CreatedAt.Time),
		UpdatedISO:  entry.FormatTime(e.UpdatedAt.Time),
		CreatedUnix: e.CreatedAt.Unix(),
		UpdatedUnix: e.UpdatedAt.Unix(),
	}
}
