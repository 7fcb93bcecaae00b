// Package output renders human-facing CLI output: styled text on a
// terminal, plain text otherwise.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// Mode selects how output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto  Mode = "auto"  // text on a TTY, plain otherwise
	ModeText  Mode = "text"  // styled text
	ModePlain Mode = "plain" // no ANSI escapes, ASCII tables
)

// Renderer writes command output to out and user-facing messages to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	r := &Renderer{
		out:    out,
		errOut: errOut,
		isTTY:  isTTY,
		mode:   resolveMode(mode, isTTY),
	}
	if r.mode == ModeText {
		r.styles = NewStyles(out)
	} else {
		r.styles = PlainStyles()
	}
	return r
}

func resolveMode(mode Mode, isTTY bool) Mode {
	switch mode {
	case ModeText, ModePlain:
		return mode
	default:
		if isTTY {
			return ModeText
		}
		return ModePlain
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Mode returns the resolved output mode. It is never ModeAuto.
func (r *Renderer) Mode() Mode { return r.mode }

// IsTTY reports whether out is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the styles for the resolved mode.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a level 1 or level 2 header.
func (r *Renderer) Header(level int, text string) {
	if level <= 1 {
		r.Println(r.styles.Header1.Render(text))
		return
	}
	r.Println(r.styles.Header2.Render(text))
}

// Success writes a success line to the output.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.StatusSuccess.String() + " " + msg)
}

// Warning writes a warning line to the output.
func (r *Renderer) Warning(msg string) {
	r.Println(r.styles.Warning.Render("! " + msg))
}

// Error writes an error line to errOut.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.StatusFailed.String()+" "+msg)
}

// Table returns a table writer mirrored to the output. Text mode uses
// box-drawing borders, plain mode ASCII.
func (r *Renderer) Table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	if r.mode == ModeText {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}
