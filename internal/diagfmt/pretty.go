package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rock/internal/diag"
	"rock/internal/source"
)

// Pretty writes bag's diagnostics as human-readable text: one
// "path:line:col: SEVERITY [CODE]: message" header per diagnostic, a line of
// source context with a caret underline under the primary span, then any
// notes in the same shape. Callers that want stable ordering should call
// bag.Sort() first. Grounded on the teacher's diagfmt.Pretty, trimmed to
// single-line context (Rock's mid-end spans never cross a Rock source line
// the way a multi-line string literal in the teacher's lexer can).
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	infoColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	underlineColor := color.New(color.FgRed, color.Bold)
	noteColor := color.New(color.FgCyan)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w)
		}
		writeOne(w, d.Severity, d.Code, d.Message, d.Primary, fs, opts,
			errorColor, warningColor, infoColor, pathColor, codeColor, underlineColor)
		for _, n := range d.Notes {
			fmt.Fprint(w, "  ")
			writeOne(w, diag.SevInfo, diag.UnknownCode, n.Msg, n.Span, fs, opts,
				noteColor, noteColor, noteColor, pathColor, codeColor, underlineColor)
		}
	}
}

func writeOne(w io.Writer, sev diag.Severity, code diag.Code, msg string, span source.Span, fs *source.FileSet, opts PrettyOpts,
	errorColor, warningColor, infoColor, pathColor, codeColor, underlineColor *color.Color) {
	start, _ := fs.Resolve(span)
	f := fs.Get(span.File)
	path := formatPath(f, fs, opts.PathMode)

	var sevColored string
	switch sev {
	case diag.SevError:
		sevColored = errorColor.Sprint(sev.String())
	case diag.SevWarning:
		sevColored = warningColor.Sprint(sev.String())
	default:
		sevColored = infoColor.Sprint(sev.String())
	}

	header := fmt.Sprintf("%s:%d:%d:", pathColor.Sprint(path), start.Line, start.Col)
	if code != diag.UnknownCode {
		fmt.Fprintf(w, "%s %s %s: %s\n", header, sevColored, codeColor.Sprint(code.ID()), msg)
	} else {
		fmt.Fprintf(w, "%s %s: %s\n", header, sevColored, msg)
	}

	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	underlineLen := runewidth.StringWidth(sliceByCol(line, start.Col, span.Len()))
	if underlineLen < 1 {
		underlineLen = 1
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(sliceByCol(line, 1, uint32(start.Col-1))))
	caret := strings.Repeat("^", underlineLen)
	fmt.Fprintf(w, "  %s%s\n", pad, underlineColor.Sprint(caret))
}

// sliceByCol returns the len bytes of line starting at the 1-based byte
// column col, clamped to line's bounds — used to measure the visual width
// (runewidth.StringWidth accounts for East Asian wide runes; control
// characters such as tabs count as width 0) of the text before and under a
// span, rather than assuming one byte is one column.
func sliceByCol(line string, col uint32, length uint32) string {
	start := int(col) - 1
	if start < 0 {
		start = 0
	}
	if start > len(line) {
		start = len(line)
	}
	end := start + int(length)
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}
