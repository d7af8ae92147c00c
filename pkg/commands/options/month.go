package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutMonth      = "2006-1"
	layoutMonthShort = "1"
)

// MonthOptions
type MonthOptions struct {
	MonthString string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVar(&o.MonthString, "month", "",
		`Specify a month, example: --month="2026-2" or --month="2".`)
}

// GetMonth returns the first of the chosen month in now's location, or the
// current month when unset.
func (o *MonthOptions) GetMonth(now time.Time) (time.Time, error) {
	if o.MonthString == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation(layoutMonth, o.MonthString, now.Location())
	if err != nil {
		// Same year as now.
		t, err = time.ParseInLocation(layoutMonthShort, o.MonthString, now.Location())
		if err != nil {
			return time.Time{}, err
		}
		t = time.Date(now.Year(), t.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return t, nil
}
