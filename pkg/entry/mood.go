package entry

import (
	"fmt"
	"strings"
)

// Mood is a cosmetic tag that also picks the default card background.
type Mood string

const (
	MoodNone   Mood = ""
	MoodCalm   Mood = "calm"
	MoodJoy    Mood = "joy"
	MoodFocus  Mood = "focus"
	MoodNature Mood = "nature"
)

// MoodInfo describes how a mood is presented.
type MoodInfo struct {
	Mood   Mood
	Label  string
	Swatch string
}

var moods = []MoodInfo{
	{Mood: MoodCalm, Label: "Calm", Swatch: "#BBDEFB"},
	{Mood: MoodJoy, Label: "Joy", Swatch: "#FFE0B2"},
	{Mood: MoodFocus, Label: "Focus", Swatch: "#E1BEE7"},
	{Mood: MoodNature, Label: "Nature", Swatch: "#C8E6C9"},
}

// Moods lists the selectable moods in palette order.
func Moods() []MoodInfo {
	out := make([]MoodInfo, len(moods))
	copy(out, moods)
	return out
}

// ParseMood accepts a mood id or label, case-insensitively. "" and "none"
// clear the mood.
func ParseMood(raw string) (Mood, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == "none" {
		return MoodNone, nil
	}
	for _, m := range moods {
		if string(m.Mood) == v || strings.ToLower(m.Label) == v {
			return m.Mood, nil
		}
	}
	return MoodNone, fmt.Errorf("entry: unknown mood %q", raw)
}

func (m Mood) info() (MoodInfo, bool) {
	for _, candidate := range moods {
		if candidate.Mood == m {
			return candidate, true
		}
	}
	return MoodInfo{}, false
}

// Label is the human name, or "" for none/unknown.
func (m Mood) Label() string {
	info, _ := m.info()
	return info.Label
}

// Swatch is the background color for the mood, or "".
func (m Mood) Swatch() string {
	info, _ := m.info()
	return info.Swatch
}

func (m Mood) String() string {
	if m == MoodNone {
		return "none"
	}
	return string(m)
}
