// Package profile keeps the small per-user preferences: the display name and
// the dashboard background.
package profile

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/mindful/pkg/entry"
	"tableflip.dev/mindful/pkg/store"
)

var (
	ErrEmptyName    = errors.New("profile: name must not be empty")
	ErrInvalidColor = errors.New("profile: invalid color")
)

// BackgroundMode selects the dashboard background.
type BackgroundMode string

const (
	BackgroundDefault BackgroundMode = "default"
	BackgroundCustom  BackgroundMode = "custom"
)

// Background is the dashboard background preference. Custom is only
// meaningful when Mode is BackgroundCustom.
type Background struct {
	Mode   BackgroundMode `json:"mode"`
	Custom string         `json:"custom,omitempty"`
}

// Color is the effective background color, or "" for the default.
func (b Background) Color() string {
	if b.Mode == BackgroundCustom {
		return b.Custom
	}
	return entry.Mood(b.Mode).Swatch()
}

// ParseBackground accepts default, custom or any mood id.
func ParseBackground(raw string) (BackgroundMode, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch v {
	case "", string(BackgroundDefault):
		return BackgroundDefault, nil
	case string(BackgroundCustom):
		return BackgroundCustom, nil
	}
	m, err := entry.ParseMood(v)
	if err != nil || m == entry.MoodNone {
		return BackgroundDefault, fmt.Errorf("profile: unknown background %q", raw)
	}
	return BackgroundMode(m), nil
}

// NormalizeColor validates a color and returns it as #rrggbb.
func NormalizeColor(raw string) (string, error) {
	c, err := colorful.Hex(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrInvalidColor, raw)
	}
	return c.Hex(), nil
}

// Profile reads and writes preferences through the store.
type Profile struct {
	kv store.Persistence
}

// New wraps kv.
func New(kv store.Persistence) *Profile {
	return &Profile{kv: kv}
}

// Name is the display name, or "" when onboarding has not happened.
func (p *Profile) Name() string {
	name, err := p.kv.Read(store.KeyUserName)
	if err != nil {
		return ""
	}
	return name
}

// SetName stores a trimmed, non-empty display name.
func (p *Profile) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return p.kv.Write(store.KeyUserName, name)
}

// Background returns the stored preference; anything unreadable reads as the
// default.
func (p *Profile) Background() Background {
	raw, err := p.kv.Read(store.KeyDashboardBackground)
	if err != nil {
		return Background{Mode: BackgroundDefault}
	}
	mode, err := ParseBackground(raw)
	if err != nil {
		return Background{Mode: BackgroundDefault}
	}
	bg := Background{Mode: mode}
	if mode == BackgroundCustom {
		custom, err := p.kv.Read(store.KeyDashboardCustomBackground)
		if err != nil || custom == "" {
			return Background{Mode: BackgroundDefault}
		}
		bg.Custom = custom
	}
	return bg
}

// SetBackground selects a preset. Choosing a preset clears any custom color.
func (p *Profile) SetBackground(mode BackgroundMode) error {
	if mode == BackgroundCustom {
		return fmt.Errorf("%w: custom background needs a color", ErrInvalidColor)
	}
	if err := p.kv.Write(store.KeyDashboardBackground, string(mode)); err != nil {
		return err
	}
	return p.kv.Write(store.KeyDashboardCustomBackground, "")
}

// SetCustomBackground stores a custom color and switches to it.
func (p *Profile) SetCustomBackground(color string) error {
	hex, err := NormalizeColor(color)
	if err != nil {
		return err
	}
	if err := p.kv.Write(store.KeyDashboardCustomBackground, hex); err != nil {
		return err
	}
	return p.kv.Write(store.KeyDashboardBackground, string(BackgroundCustom))
}
