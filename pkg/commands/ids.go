package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/journal"
)

var errAmbiguous = errors.New("ambiguous id")

// resolveID accepts a full id or any unique prefix of one, like the short
// ids the table view prints.
func resolveID(e *env, raw string) (string, error) {
	return matchID(e.Journal, raw)
}

func matchID(j *journal.Store, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty id", journal.ErrNotFound)
	}
	if _, ok := j.Get(raw); ok {
		return raw, nil
	}
	var found, visible []string
	for _, e := range j.Snapshot() {
		if strings.HasPrefix(e.ID, raw) {
			found = append(found, e.ID)
			if !e.Locked {
				visible = append(visible, e.ID)
			}
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", journal.ErrNotFound, raw)
	case 1:
		return found[0], nil
	}
	// Locked ids stay out of the message.
	sort.Strings(visible)
	msg := strings.Join(visible, ", ")
	if hidden := len(found) - len(visible); hidden > 0 {
		if msg != "" {
			msg += " and "
		}
		msg += fmt.Sprintf("%d in the locker", hidden)
	}
	return "", fmt.Errorf("%w %q matches %s", errAmbiguous, raw, msg)
}

// entryCompletions offers the ids of unlocked entries, with titles as
// descriptions.
func entryCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	e, err := loadEnv()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, en := range e.Journal.List(journal.Unlocked) {
		if strings.HasPrefix(en.ID, toComplete) {
			ids = append(ids, en.ID+"\t"+en.DisplayTitle())
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
