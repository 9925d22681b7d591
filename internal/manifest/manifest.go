// Package manifest reads and rewrites the version field of a JSON manifest
// such as package.json, keeping every other key and value as written.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ErrNoVersion is returned by Version when the manifest has no string version field.
var ErrNoVersion = errors.New("manifest has no version field")

const versionKey = "version"

// Document is a JSON object whose member order and raw member values are
// preserved across a read/write cycle.
type Document struct {
	keys            []string
	values          map[string]json.RawMessage
	trailingNewline bool
}

// Parse decodes a JSON object.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("parsing manifest: top-level value is not an object")
	}

	doc := &Document{
		values:          make(map[string]json.RawMessage),
		trailingNewline: bytes.HasSuffix(data, []byte("\n")),
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing manifest: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing manifest: unexpected token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing manifest member %q: %w", key, err)
		}
		if _, dup := doc.values[key]; !dup {
			doc.keys = append(doc.keys, key)
		}
		// Last duplicate wins, as with JSON.parse.
		doc.values[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if _, err := dec.Token(); err == nil {
		return nil, errors.New("parsing manifest: unexpected data after top-level object")
	}

	return doc, nil
}

// Version returns the version member.
func (d *Document) Version() (string, error) {
	raw, ok := d.values[versionKey]
	if !ok {
		return "", ErrNoVersion
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%w: version is not a string", ErrNoVersion)
	}
	return v, nil
}

// SetVersion replaces the version member, appending it when absent.
func (d *Document) SetVersion(version string) {
	raw, _ := marshalString(version)
	if _, ok := d.values[versionKey]; !ok {
		d.keys = append(d.keys, versionKey)
	}
	d.values[versionKey] = raw
}

// Keys returns the member names in document order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Marshal renders the document with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(d.values[k])
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}
	if d.trailingNewline {
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

func marshalString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Read loads and parses the manifest at path.
func Read(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Write renders doc and replaces the file at path, keeping its permissions.
func Write(fs afero.Fs, path string, doc *Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := afero.WriteFile(fs, path, data, perm); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
