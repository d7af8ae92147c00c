// Package locker implements the Access Gate: one local password that controls
// whether locked journal entries may be shown. It is access friction, not
// encryption; entry content is never touched here.
package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"tableflip.dev/mindful/pkg/logging"
	"tableflip.dev/mindful/pkg/store"
)

// MinLength is the shortest accepted password, counted in characters.
const MinLength = 4

var (
	ErrTooShort         = fmt.Errorf("locker: password must be at least %d characters", MinLength)
	ErrWrongPassword    = errors.New("locker: incorrect password")
	ErrWrongOldPassword = errors.New("locker: incorrect old password")
	ErrMismatch         = errors.New("locker: passwords do not match")
	ErrAlreadySet       = errors.New("locker: password already set")
	ErrNoSecret         = errors.New("locker: no password set")
	ErrPhase            = errors.New("locker: not allowed in current phase")
	ErrPersist          = errors.New("locker: password not saved")
)

// Phase drives which prompt the presentation layer shows.
type Phase int

const (
	Uninitialized Phase = iota
	AwaitingSetup
	AwaitingUnlock
	Unlocked
	ChangingPassword
)

func (p Phase) String() string {
	switch p {
	case AwaitingSetup:
		return "awaiting-setup"
	case AwaitingUnlock:
		return "awaiting-unlock"
	case Unlocked:
		return "unlocked"
	case ChangingPassword:
		return "changing-password"
	default:
		return "uninitialized"
	}
}

// Gate is the Locker.
type Gate struct {
	mu     sync.Mutex
	kv     store.Persistence
	codec  Codec
	log    logging.Logger
	phase  Phase
	secret string
	has    bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithCodec selects how the secret is stored and compared.
func WithCodec(c Codec) Option {
	return func(g *Gate) {
		if c != nil {
			g.codec = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

// New reads the persisted secret, if any. An unreadable secret is logged and
// treated as absent.
func New(kv store.Persistence, opts ...Option) (*Gate, error) {
	if kv == nil {
		return nil, errors.New("locker: no persistence configured")
	}
	g := &Gate{
		kv:    kv,
		codec: PlainCodec{},
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With("component", "locker")

	g.loadLocked(context.Background())
	return g, nil
}

// Reload re-reads the secret after another process changed it. The phase is
// kept unless the secret disappeared while the Gate was waiting to unlock.
func (g *Gate) Reload(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loadLocked(ctx)
	if !g.has && g.phase == AwaitingUnlock {
		g.phase = AwaitingSetup
	}
}

func (g *Gate) loadLocked(ctx context.Context) {
	secret, err := g.kv.Read(store.KeyLockerSecret)
	switch {
	case err == nil && secret != "":
		g.secret, g.has = secret, true
	case err == nil || errors.Is(err, store.ErrNotFound):
		g.secret, g.has = "", false
	default:
		g.log.Warn(ctx, "locker secret unreadable, keeping previous state", "err", err)
	}
}

// Phase reports the current phase.
func (g *Gate) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Visible reports whether locked entries may be shown.
func (g *Gate) Visible() bool {
	p := g.Phase()
	return p == Unlocked || p == ChangingPassword
}

// HasSecret reports whether a password has been configured.
func (g *Gate) HasSecret() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.has
}

// Open leaves Uninitialized for the setup or unlock prompt. In any other
// phase it is a no-op.
func (g *Gate) Open() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.openLocked()
	return g.phase
}

func (g *Gate) openLocked() {
	if g.phase != Uninitialized {
		return
	}
	if g.has {
		g.phase = AwaitingUnlock
	} else {
		g.phase = AwaitingSetup
	}
}

// Close hides the Locker again; the next Open starts over.
func (g *Gate) Close() {
	g.mu.Lock()
	g.phase = Uninitialized
	g.mu.Unlock()
}

// Setup stores the first password and unlocks the Gate.
func (g *Gate) Setup(password string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.openLocked()
	if g.has {
		return ErrAlreadySet
	}
	if g.phase != AwaitingSetup {
		return fmt.Errorf("%w: setup from %s", ErrPhase, g.phase)
	}
	if err := g.storeLocked(password); err != nil {
		return err
	}
	g.phase = Unlocked
	return nil
}

// Verify is true iff a secret exists and password matches it exactly.
func (g *Gate) Verify(password string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verifyLocked(password)
}

func (g *Gate) verifyLocked(password string) bool {
	return g.has && g.codec.Match(g.secret, password)
}

// Unlock moves AwaitingUnlock to Unlocked when the password is right. A wrong
// password leaves the phase unchanged; any number of attempts is allowed.
func (g *Gate) Unlock(password string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.openLocked()
	switch g.phase {
	case AwaitingSetup:
		return ErrNoSecret
	case AwaitingUnlock:
	default:
		return fmt.Errorf("%w: unlock from %s", ErrPhase, g.phase)
	}
	if !g.verifyLocked(password) {
		return ErrWrongPassword
	}
	g.phase = Unlocked
	return nil
}

// Relock hides locked entries until the password is entered again.
func (g *Gate) Relock() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != Unlocked && g.phase != ChangingPassword {
		return fmt.Errorf("%w: relock from %s", ErrPhase, g.phase)
	}
	g.phase = AwaitingUnlock
	return nil
}

// BeginChange enters the change-password phase.
func (g *Gate) BeginChange() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != Unlocked {
		return fmt.Errorf("%w: change password from %s", ErrPhase, g.phase)
	}
	g.phase = ChangingPassword
	return nil
}

// CancelChange abandons a password change.
func (g *Gate) CancelChange() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != ChangingPassword {
		return fmt.Errorf("%w: cancel from %s", ErrPhase, g.phase)
	}
	g.phase = Unlocked
	return nil
}

// ChangePassword replaces the secret. Either the secret changes fully or it
// stays as it was. From ChangingPassword a success returns to Unlocked; a
// failure stays put so the caller can retry.
func (g *Gate) ChangePassword(oldPassword, newPassword string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.verifyLocked(oldPassword) {
		return ErrWrongOldPassword
	}
	if err := g.storeLocked(newPassword); err != nil {
		return err
	}
	if g.phase == ChangingPassword {
		g.phase = Unlocked
	}
	return nil
}

// storeLocked validates, encodes and persists password. The cached secret is
// only replaced after the write succeeds.
func (g *Gate) storeLocked(password string) error {
	if utf8.RuneCountInString(password) < MinLength {
		return ErrTooShort
	}
	encoded, err := g.codec.Encode(password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := g.kv.Write(store.KeyLockerSecret, encoded); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	g.secret, g.has = encoded, true
	return nil
}
