package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/journal"
	"tableflip.dev/mindful/pkg/locker"
	"tableflip.dev/mindful/pkg/runner/gate"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out receives JSON errors; color.Output when nil.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as {"error": ..., "code": ...} when --json is set
// and swallows it, so scripts read one JSON document either way.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
		"code":  ErrorCode(err),
	}
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	w := o.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintln(w, string(b))
	return nil
}

// ErrorCode is a stable name for the errors scripts care about.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, journal.ErrNotFound):
		return "not_found"
	case errors.Is(err, journal.ErrPersist), errors.Is(err, locker.ErrPersist):
		return "not_saved"
	case errors.Is(err, gate.ErrLocked), errors.Is(err, locker.ErrWrongPassword),
		errors.Is(err, locker.ErrNoSecret):
		return "locked"
	default:
		return "error"
	}
}
