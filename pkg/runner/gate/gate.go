// Package gate provides the runners behind the locker commands.
package gate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindful/pkg/commands/prompt"
	"tableflip.dev/mindful/pkg/locker"
)

// DefaultAttempts bounds how often a prompt is repeated after a bad answer.
const DefaultAttempts = 3

// ErrLocked is returned when locked content is needed but nobody can unlock.
var ErrLocked = errors.New("entry is in the locker; unlock it first")

func out(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return color.Output
}

func attempts(n int) int {
	if n <= 0 {
		return DefaultAttempts
	}
	return n
}

func warn(w io.Writer, err error) {
	_, _ = color.New(color.FgYellow).Fprintln(out(w), err.Error())
}

// retryable errors re-prompt instead of aborting.
func retryable(err error) bool {
	return errors.Is(err, locker.ErrTooShort) ||
		errors.Is(err, locker.ErrMismatch) ||
		errors.Is(err, locker.ErrWrongPassword) ||
		errors.Is(err, locker.ErrWrongOldPassword)
}

// Setup asks for a new password twice and stores it.
type Setup struct {
	Gate        *locker.Gate
	Prompt      prompt.Func
	Out         io.Writer
	MaxAttempts int
}

// Do runs the create and confirm prompts until they agree.
func (s *Setup) Do(ctx context.Context) error {
	if s.Gate == nil || s.Prompt == nil {
		return errors.New("locker setup is not configured")
	}
	if s.Gate.HasSecret() {
		return locker.ErrAlreadySet
	}

	flow := s.Gate.NewSetupFlow()
	failures := 0
	for flow.Step() != locker.SetupDone {
		label := "New locker password: "
		if flow.Step() == locker.SetupConfirm {
			label = "Confirm password: "
		}
		answer, err := s.Prompt(label)
		if err != nil {
			return err
		}
		if err := flow.Submit(answer); err != nil {
			if !retryable(err) {
				return err
			}
			failures++
			if failures >= attempts(s.MaxAttempts) {
				return err
			}
			warn(s.Out, err)
		}
	}

	_, _ = color.New(color.FgGreen).Fprintln(out(s.Out), "Locker ready.")
	return nil
}

// Unlock asks for the password until the Gate opens.
type Unlock struct {
	Gate        *locker.Gate
	Prompt      prompt.Func
	Out         io.Writer
	MaxAttempts int
	// Quiet skips the success message, for unlocks done on the way to
	// another command.
	Quiet bool
}

// Do unlocks the Gate. An already visible Gate is left as it is.
func (u *Unlock) Do(ctx context.Context) error {
	if u.Gate == nil || u.Prompt == nil {
		return ErrLocked
	}
	if u.Gate.Visible() {
		return nil
	}
	if !u.Gate.HasSecret() {
		return fmt.Errorf("%w: run `mindful locker setup` first", locker.ErrNoSecret)
	}

	for failures := 0; ; {
		answer, err := u.Prompt("Locker password: ")
		if err != nil {
			return err
		}
		err = u.Gate.Unlock(answer)
		if err == nil {
			break
		}
		if !retryable(err) {
			return err
		}
		failures++
		if failures >= attempts(u.MaxAttempts) {
			return err
		}
		warn(u.Out, err)
	}

	if !u.Quiet {
		_, _ = color.New(color.FgGreen).Fprintln(out(u.Out), "Locker unlocked.")
	}
	return nil
}

// Passwd changes the password: current, new, confirm.
type Passwd struct {
	Gate        *locker.Gate
	Prompt      prompt.Func
	Out         io.Writer
	MaxAttempts int
}

// Do unlocks with the current password, then runs the change flow. The
// current password answers the flow's first step so it is asked only once.
func (p *Passwd) Do(ctx context.Context) (err error) {
	if p.Gate == nil || p.Prompt == nil {
		return errors.New("locker passwd is not configured")
	}
	if !p.Gate.HasSecret() {
		return fmt.Errorf("%w: run `mindful locker setup` first", locker.ErrNoSecret)
	}

	var current string
	unlock := &Unlock{
		Gate:        p.Gate,
		Out:         p.Out,
		MaxAttempts: p.MaxAttempts,
		Quiet:       true,
		Prompt: func(string) (string, error) {
			answer, err := p.Prompt("Current password: ")
			current = answer
			return answer, err
		},
	}
	if err := unlock.Do(ctx); err != nil {
		return err
	}

	flow, err := p.Gate.NewChangeFlow()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = flow.Cancel()
		}
	}()
	if err := flow.Submit(current); err != nil {
		return err
	}

	failures := 0
	for flow.Step() != locker.ChangeDone {
		label := "New password: "
		if flow.Step() == locker.ChangeConfirm {
			label = "Confirm new password: "
		}
		answer, err := p.Prompt(label)
		if err != nil {
			return err
		}
		if err := flow.Submit(answer); err != nil {
			if !retryable(err) {
				return err
			}
			failures++
			if failures >= attempts(p.MaxAttempts) {
				return err
			}
			warn(p.Out, err)
		}
	}

	_, _ = color.New(color.FgGreen).Fprintln(out(p.Out), "Password changed.")
	return nil
}

// Status reports whether a password exists.
type Status struct {
	Gate *locker.Gate
	JSON bool
	Out  io.Writer
}

func (s *Status) Do(ctx context.Context) error {
	if s.Gate == nil {
		return errors.New("locker is not configured")
	}
	has := s.Gate.HasSecret()
	if s.JSON {
		return json.NewEncoder(out(s.Out)).Encode(map[string]any{
			"hasPassword": has,
			"phase":       s.Gate.Open().String(),
		})
	}
	if has {
		_, _ = fmt.Fprintln(out(s.Out), "Locker password is set.")
	} else {
		_, _ = fmt.Fprintln(out(s.Out), "No locker password yet. Run `mindful locker setup`.")
	}
	return nil
}

// Require makes sure locked entries may be shown, calling reveal to unlock
// the Gate when needed.
func Require(ctx context.Context, g *locker.Gate, reveal func(context.Context) error) error {
	if g != nil && g.Visible() {
		return nil
	}
	if reveal == nil {
		return ErrLocked
	}
	if err := reveal(ctx); err != nil {
		return err
	}
	if g != nil && !g.Visible() {
		return ErrLocked
	}
	return nil
}
