package actions

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// OutputWriter appends step outputs to the runner's output file.
type OutputWriter struct {
	fs   afero.Fs
	path string
}

// NewOutputWriter creates a writer for the output file at path.
func NewOutputWriter(fs afero.Fs, path string) *OutputWriter {
	return &OutputWriter{fs: fs, path: path}
}

// Write appends every variable, sorted by name. Multi-line values use the
// heredoc form with a random delimiter.
func (w *OutputWriter) Write(vars map[string]string) (err error) {
	f, err := w.fs.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	for _, k := range slices.Sorted(maps.Keys(vars)) {
		if err := writeOutput(f, k, vars[k]); err != nil {
			return fmt.Errorf("writing output %s: %w", k, err)
		}
	}
	return nil
}

func writeOutput(w io.Writer, name, value string) error {
	if !strings.ContainsAny(value, "\r\n") {
		_, err := fmt.Fprintf(w, "%s=%s\n", name, value)
		return err
	}

	delim, err := delimiter()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s<<%s\n%s\n%s\n", name, delim, value, delim)
	return err
}

func delimiter() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "ghadelimiter_" + hex.EncodeToString(b), nil
}
