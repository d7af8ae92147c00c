package locker

import (
	"unicode/utf8"
)

// SetupStep is where a SetupFlow is in the enter-twice protocol.
type SetupStep int

const (
	SetupCreate SetupStep = iota
	SetupConfirm
	SetupDone
)

// SetupFlow sequences "create, then confirm" prompts over Gate.Setup.
type SetupFlow struct {
	gate  *Gate
	step  SetupStep
	first string
}

// NewSetupFlow starts a setup prompt sequence.
func (g *Gate) NewSetupFlow() *SetupFlow {
	return &SetupFlow{gate: g}
}

func (f *SetupFlow) Step() SetupStep {
	return f.step
}

// Submit feeds the next typed password. A mismatch on confirm starts over.
func (f *SetupFlow) Submit(input string) error {
	switch f.step {
	case SetupCreate:
		if utf8.RuneCountInString(input) < MinLength {
			return ErrTooShort
		}
		f.first = input
		f.step = SetupConfirm
		return nil
	case SetupConfirm:
		if input != f.first {
			f.first = ""
			f.step = SetupCreate
			return ErrMismatch
		}
		if err := f.gate.Setup(f.first); err != nil {
			return err
		}
		f.first = ""
		f.step = SetupDone
		return nil
	default:
		return ErrPhase
	}
}

// ChangeStep is where a ChangeFlow is.
type ChangeStep int

const (
	ChangeOld ChangeStep = iota
	ChangeNew
	ChangeConfirm
	ChangeDone
)

// ChangeFlow sequences "old, new, confirm" prompts over Gate.ChangePassword.
type ChangeFlow struct {
	gate   *Gate
	step   ChangeStep
	oldPw  string
	newPw  string
	closed bool
}

// NewChangeFlow moves the Gate into ChangingPassword. The Gate must be
// unlocked.
func (g *Gate) NewChangeFlow() (*ChangeFlow, error) {
	if err := g.BeginChange(); err != nil {
		return nil, err
	}
	return &ChangeFlow{gate: g}, nil
}

func (f *ChangeFlow) Step() ChangeStep {
	return f.step
}

// Submit feeds the next typed password. Each step re-prompts on failure; a
// mismatched confirmation goes back to choosing the new password.
func (f *ChangeFlow) Submit(input string) error {
	if f.closed {
		return ErrPhase
	}
	switch f.step {
	case ChangeOld:
		if !f.gate.Verify(input) {
			return ErrWrongOldPassword
		}
		f.oldPw = input
		f.step = ChangeNew
		return nil
	case ChangeNew:
		if utf8.RuneCountInString(input) < MinLength {
			return ErrTooShort
		}
		f.newPw = input
		f.step = ChangeConfirm
		return nil
	case ChangeConfirm:
		if input != f.newPw {
			f.newPw = ""
			f.step = ChangeNew
			return ErrMismatch
		}
		if err := f.gate.ChangePassword(f.oldPw, f.newPw); err != nil {
			return err
		}
		f.oldPw, f.newPw = "", ""
		f.step = ChangeDone
		f.closed = true
		return nil
	default:
		return ErrPhase
	}
}

// Cancel abandons the change and returns the Gate to Unlocked.
func (f *ChangeFlow) Cancel() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.oldPw, f.newPw = "", ""
	return f.gate.CancelChange()
}
