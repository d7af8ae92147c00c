package commands

import (
	"context"
	"log/slog"
	"os"

	"tableflip.dev/mindful/pkg/commands/prompt"
	"tableflip.dev/mindful/pkg/config"
	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/logging"
	"tableflip.dev/mindful/pkg/profile"
	"tableflip.dev/mindful/pkg/runner/gate"
	"tableflip.dev/mindful/pkg/store"
)

// env is everything a command needs, loaded once per invocation.
type env struct {
	Config      *config.Config
	Persistence store.Persistence
	Journal     *journal.Store
	Gate        *locker.Gate
	Profile     *profile.Profile
	Log         logging.Logger
}

func logger() logging.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(os.Stderr, level)
}

func loadEnv(opts ...journal.Option) (*env, error) {
	log := logger()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	j, err := journal.New(p, append([]journal.Option{journal.WithLogger(log)}, opts...)...)
	if err != nil {
		return nil, err
	}
	g, err := locker.New(p,
		locker.WithCodec(locker.CodecFor(cfg.LockerCodec)),
		locker.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return &env{
		Config:      cfg,
		Persistence: p,
		Journal:     j,
		Gate:        g,
		Profile:     profile.New(p),
		Log:         log,
	}, nil
}

// passwords reads from the terminal without echo, prompts on stderr.
func passwords() prompt.Func {
	return prompt.Password(os.Stdin, os.Stderr)
}

// reveal unlocks the Gate for one command.
func (e *env) reveal(ctx context.Context) error {
	u := &gate.Unlock{
		Gate:   e.Gate,
		Prompt: passwords(),
		Out:    os.Stderr,
		Quiet:  true,
	}
	return u.Do(ctx)
}
