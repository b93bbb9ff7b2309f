package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// detailWidth is the column at which Detail text wraps.
const detailWidth = 70

// palette holds the ANSI sequences used by Format. All fields are empty
// when colors are off.
type palette struct {
	reset, bold, red, yellow, cyan, gray string
}

var (
	ansi    = palette{reset: "\033[0m", bold: "\033[1m", red: "\033[31m", yellow: "\033[33m", cyan: "\033[36m", gray: "\033[90m"}
	plain   = palette{}
	current = ansi
)

// DisableColors turns off ANSI sequences in Format and PrintError.
func DisableColors() { current = plain }

// EnableColors turns ANSI sequences back on.
func EnableColors() { current = ansi }

func (p palette) paint(style, text string) string {
	if style == "" {
		return text
	}
	return style + text + p.reset
}

// Format renders the error for a terminal:
//
//	ERROR E101: Protocol version mismatch
//
//	  <reason, or the wrapped error>
//
//	  key: value            (one line per field, sorted)
//
//	  <detail, wrapped>
//
//	  Hint: <suggestion>
func (e *NetError) Format() string {
	p := current
	var b strings.Builder

	title := e.Message
	if e.Code != "" {
		title = e.Code + ": " + title
	}
	fmt.Fprintf(&b, "\n%s %s\n\n", p.paint(p.red+p.bold, "ERROR"), p.paint(p.bold, title))

	cause := e.Reason
	if cause == "" && e.Wrapped != nil {
		cause = e.Wrapped.Error()
	}
	if cause != "" {
		fmt.Fprintf(&b, "  %s\n\n", p.paint(p.yellow, cause))
	}

	if keys := e.fieldKeys(); len(keys) > 0 {
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s %s\n", p.paint(p.gray, k+":"), p.paint(p.cyan, e.Fields[k]))
		}
		b.WriteByte('\n')
	}

	if lines := wrapText(e.Detail, detailWidth); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteByte('\n')
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s %s\n\n", p.paint(p.cyan, "Hint:"), e.Suggestion)
	}
	return b.String()
}

func (e *NetError) fieldKeys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatJSON renders the error as one JSON object, for tools that parse
// CLI output.
func (e *NetError) FormatJSON() string {
	out := struct {
		Code       string            `json:"code,omitempty"`
		Category   Category          `json:"category"`
		Message    string            `json:"message"`
		Reason     string            `json:"reason,omitempty"`
		Detail     string            `json:"detail,omitempty"`
		Suggestion string            `json:"suggestion,omitempty"`
		Fields     map[string]string `json:"fields,omitempty"`
		Cause      string            `json:"cause,omitempty"`
	}{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Reason:     e.Reason,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		Fields:     e.Fields,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText breaks text into lines of at most width bytes, splitting on
// whitespace. A single word longer than width gets a line to itself.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// PrintError writes err to stderr, using Format for a NetError.
func PrintError(err error) {
	fprintError(os.Stderr, err)
}

func fprintError(w io.Writer, err error) {
	var ne *NetError
	if errors.As(err, &ne) {
		fmt.Fprint(w, ne.Format())
		return
	}
	p := current
	fmt.Fprintf(w, "\n%s %s\n\n", p.paint(p.red+p.bold, "ERROR"), err.Error())
}
