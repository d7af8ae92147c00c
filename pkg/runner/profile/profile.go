// Package profile provides the runners behind `mindful profile`.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/commands/prompt"
	"tableflip.dev/mindful/pkg/profile"
)

// Name shows or sets the display name. With no Name and a Prompt it asks,
// like first-run onboarding does.
type Name struct {
	Name   string
	Prompt prompt.Func
	Out    io.Writer

	Profile *profile.Profile
}

func (n *Name) Do(ctx context.Context) error {
	if n.Profile == nil {
		return errors.New("profile is not configured")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	name := n.Name
	if strings.TrimSpace(name) == "" {
		if n.Prompt == nil {
			current := n.Profile.Name()
			if current == "" {
				current = "(not set)"
			}
			_, _ = fmt.Fprintln(out, current)
			return nil
		}
		var err error
		if name, err = n.Prompt("What should we call you? "); err != nil {
			return err
		}
	}
	if err := n.Profile.SetName(name); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintf(out, "Hello, %s.\n", n.Profile.Name())
	return nil
}

// Background shows or sets the dashboard background. Value is default,
// custom, a mood id, or a #rrggbb color which implies custom.
type Background struct {
	Value string
	Out   io.Writer

	Profile *profile.Profile
}

func (n *Background) Do(ctx context.Context) error {
	if n.Profile == nil {
		return errors.New("profile is not configured")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	v := strings.TrimSpace(n.Value)
	switch {
	case v == "":
	case strings.HasPrefix(v, "#"):
		if err := n.Profile.SetCustomBackground(v); err != nil {
			return err
		}
	default:
		mode, err := profile.ParseBackground(v)
		if err != nil {
			return err
		}
		if err := n.Profile.SetBackground(mode); err != nil {
			return err
		}
	}

	bg := n.Profile.Background()
	if c := bg.Color(); c != "" {
		_, _ = fmt.Fprintf(out, "%s %s\n", bg.Mode, c)
	} else {
		_, _ = fmt.Fprintln(out, bg.Mode)
	}
	return nil
}
