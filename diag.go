package loq

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// LogLevel is the severity of a diagnostic.
type LogLevel int8

const (
	LevelInfo LogLevel = iota
	LevelWarning
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelInfo:
		return "[INFO]"
	case LevelWarning:
		return "[WARN]"
	case LevelError:
		return "[ERROR]"
	default:
		return "[?]"
	}
}

var levelColors = map[LogLevel]*color.Color{
	LevelInfo:    color.New(color.FgCyan),
	LevelWarning: color.New(color.FgYellow),
	LevelError:   color.New(color.FgRed, color.Bold),
}

// Diagnoster reports diagnostics to a writer.
type Diagnoster struct {
	w io.Writer
	// Color enables colored level tags. Colors are still suppressed when
	// color.NoColor is set, e.g. when the output is not a terminal.
	Color bool
}

// NewDiagnoster creates a Diagnoster that writes to w. A nil *Diagnoster
// discards everything.
func NewDiagnoster(w io.Writer) *Diagnoster {
	return &Diagnoster{w: w}
}

// Report writes an error diagnostic for err, which arose from parsing src.
// If err is an InputError, the report includes the offending line of src with
// a caret under the error position. name, if not empty, names the source.
func (d *Diagnoster) Report(name, src string, err error) {
	d.write(render(d.tag(LevelError), name, src, err))
}

// Logf writes a diagnostic message with no source location.
func (d *Diagnoster) Logf(level LogLevel, format string, args ...interface{}) {
	d.write(d.tag(level)+":  "+fmt.Sprintf(format, args...)+"\n")
}

func (d *Diagnoster) tag(level LogLevel) string {
	if d == nil || !d.Color {
		return level.String()
	}
	return levelColors[level].Sprint(level.String())
}

func (d *Diagnoster) write(s string) {
	if d == nil || d.w == nil {
		return
	}
	io.WriteString(d.w, s)
}

// Render formats err as an error diagnostic without color. See
// Diagnoster.Report.
func Render(name, src string, err error) string {
	return render(LevelError.String(), name, src, err)
}

func render(tag, name, src string, err error) string {
	var b strings.Builder
	var ie InputError
	if !errors.As(err, &ie) {
		fmt.Fprintf(&b, "%s:  %v\n", tag, err)
		return b.String()
	}
	pos := ie.Pos()
	lines := strings.Split(src, "\n")
	switch {
	case name != "":
		fmt.Fprintf(&b, "%s %s:%v:  %v\n", tag, name, pos, err)
	case len(lines) > 1:
		fmt.Fprintf(&b, "%s %v:  %v\n", tag, pos, err)
	default:
		fmt.Fprintf(&b, "%s:  %v\n", tag, err)
	}
	if pos.Line < 1 || pos.Line > len(lines) {
		return b.String()
	}
	line := []rune(lines[pos.Line-1])
	col := pos.Col
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	// Tabs in the source line stay tabs under the caret so the caret lines up.
	pad := make([]rune, col)
	for i := range pad {
		if line[i] == '\t' {
			pad[i] = '\t'
		} else {
			pad[i] = ' '
		}
	}
	fmt.Fprintf(&b, "    %s\n", string(line))
	fmt.Fprintf(&b, "    %s^\n", string(pad))
	return b.String()
}
