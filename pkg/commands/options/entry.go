package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindful/pkg/entry"
)

// EntryOptions are the editable fields of an entry.
type EntryOptions struct {
	Title   string
	Content string
	Mood    string
	Color   string
	Font    string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the entry.")
	cmd.Flags().StringVarP(&o.Content, "body", "b", "",
		Wrap80("Body of the entry. Each line becomes a paragraph."))
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		Wrap80("Mood of the entry, see `mindful moods`."))
	cmd.Flags().StringVar(&o.Color, "color", "",
		"Custom card color, example: --color=\"#a3c4f3\".")
	cmd.Flags().StringVar(&o.Font, "font", "",
		"Title font hint.")
}

// Draft turns the flags into a new entry. Positional args are joined into the
// body when --body is not set.
func (o *EntryOptions) Draft(args []string) (entry.Draft, error) {
	mood, err := entry.ParseMood(o.Mood)
	if err != nil {
		return entry.Draft{}, err
	}
	body := o.Content
	if body == "" {
		body = strings.Join(args, " ")
	}
	return entry.Draft{
		Title:       strings.TrimSpace(o.Title),
		Content:     entry.FromParagraphs(body),
		Mood:        mood,
		CustomColor: strings.TrimSpace(o.Color),
		TitleFont:   strings.TrimSpace(o.Font),
	}, nil
}

// Patch only carries the flags that were set on cmd.
func (o *EntryOptions) Patch(cmd *cobra.Command) (entry.Patch, bool, error) {
	var (
		p   entry.Patch
		set bool
	)
	flags := cmd.Flags()
	if flags.Changed("title") {
		t := strings.TrimSpace(o.Title)
		p.Title, set = &t, true
	}
	if flags.Changed("body") {
		c := entry.FromParagraphs(o.Content)
		p.Content, set = &c, true
	}
	if flags.Changed("mood") {
		m, err := entry.ParseMood(o.Mood)
		if err != nil {
			return p, false, err
		}
		p.Mood, set = &m, true
	}
	if flags.Changed("color") {
		c := strings.TrimSpace(o.Color)
		p.CustomColor, set = &c, true
	}
	if flags.Changed("font") {
		f := strings.TrimSpace(o.Font)
		p.TitleFont, set = &f, true
	}
	return p, set, nil
}

// FlagOptions set the pin and lock flags at creation.
type FlagOptions struct {
	Pinned bool
	Locked bool
}

func AddFlagArgs(cmd *cobra.Command, o *FlagOptions) {
	cmd.Flags().BoolVarP(&o.Pinned, "pin", "p", false,
		"Pin the entry to the top of the journal.")
	cmd.Flags().BoolVarP(&o.Locked, "lock", "l", false,
		"Move the entry into the locker.")
}
