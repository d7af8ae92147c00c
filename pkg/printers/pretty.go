package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mindful/pkg/entry"
)

const (
	layoutDay  = "January 2"
	layoutLong = "January 2, 2006 15:04"

	defaultWidth   = 80
	previewColumns = 48
)

type PrettyPrint struct {
	ShowID bool
	// Width wraps entry bodies; 0 means 80 columns.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0f8fad5b-d9cb-469f-a165-70867728950e  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return defaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints one card line per entry, in the order given.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	w := pp.out()
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(w, spacing)
		}
		_, _ = f.Fprint(w, " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	for _, e := range entries {
		if pp.ShowID {
			_, _ = y.Fprint(w, e.ID)
			if pad := len(spacing) - len(e.ID); pad > 0 {
				_, _ = y.Fprint(w, strings.Repeat(" ", pad))
			}
		}
		_, _ = Swatch(e.Color()).Fprint(w, Marker(e))
		_, _ = bold.Fprintf(w, " %s", e.DisplayTitle())
		_, _ = faint.Fprintf(w, "  %s", e.CreatedAt.Local().Format(layoutDay))
		if e.Locked {
			_, _ = faint.Fprint(w, "  locked")
		}
		_, _ = fmt.Fprintln(w, "")
		if preview := e.Preview(previewColumns); preview != "" {
			if pp.ShowID {
				_, _ = fmt.Fprint(w, spacing)
			}
			_, _ = faint.Fprintf(w, "  %s\n", preview)
		}
	}
	_, _ = fmt.Fprintln(w, "")
}

// Show prints a single entry in full.
func (pp *PrettyPrint) Show(e *entry.Entry) {
	w := pp.out()
	faint := color.New(color.Faint)

	title := Swatch(e.Color())
	title.Add(color.Bold, color.Underline)
	_, _ = title.Fprintln(w, e.DisplayTitle())

	meta := []string{e.CreatedAt.Local().Format(layoutLong)}
	if !e.UpdatedAt.Equal(e.CreatedAt.Time) {
		meta = append(meta, "edited "+e.UpdatedAt.Local().Format(layoutLong))
	}
	if e.Mood != entry.MoodNone {
		meta = append(meta, e.Mood.Label())
	}
	if e.Pinned {
		meta = append(meta, "pinned")
	}
	if e.Locked {
		meta = append(meta, "locked")
	}
	_, _ = faint.Fprintln(w, strings.Join(meta, " · "))
	if pp.ShowID {
		_, _ = faint.Fprintln(w, e.ID)
	}
	_, _ = fmt.Fprintln(w, "")

	body := entry.Paragraphs(e.Content)
	if body == "" {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, "(empty)")
	} else {
		_, _ = fmt.Fprintln(w, wordwrap.String(body, pp.width()))
	}
	_, _ = fmt.Fprintln(w, "")
}

// Table prints entries as aligned columns.
func (pp *PrettyPrint) Table(entries ...*entry.Entry) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(previewColumns)
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Title"), bold.Sprint("Mood"), bold.Sprint("Flags"), bold.Sprint("Created"))
	for _, e := range entries {
		id := e.ID
		if !pp.ShowID && len(id) > 8 {
			id = id[:8]
		}
		tbl.AddRow(id, e.DisplayTitle(), e.Mood.Label(), flags(e), e.CreatedAt.Local().Format(layoutDay))
	}

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Marker is the leading glyph of a card line.
func Marker(e *entry.Entry) string {
	if e.Pinned {
		return "★"
	}
	return "•"
}

func flags(e *entry.Entry) string {
	var f []string
	if e.Pinned {
		f = append(f, "pinned")
	}
	if e.Locked {
		f = append(f, "locked")
	}
	return strings.Join(f, ",")
}
