package actions

import (
	"fmt"
	"io"
	"strings"
)

// Annotator emits workflow commands that the runner turns into annotations.
// A disabled annotator writes nothing.
type Annotator struct {
	w       io.Writer
	enabled bool
}

// NewAnnotator returns an annotator writing to w when enabled.
func NewAnnotator(w io.Writer, enabled bool) *Annotator {
	return &Annotator{w: w, enabled: enabled}
}

func (a *Annotator) Warning(msg string) { a.command("warning", msg) }
func (a *Annotator) Error(msg string)   { a.command("error", msg) }
func (a *Annotator) Notice(msg string)  { a.command("notice", msg) }

func (a *Annotator) command(name, msg string) {
	if a == nil || !a.enabled {
		return
	}
	fmt.Fprintf(a.w, "::%s::%s\n", name, escapeData(msg))
}

func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
