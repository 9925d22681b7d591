package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source selects which pull request fields become candidate strings.
type Source int

const (
	SourceTitle Source = iota
	SourceLabel
)

func (s Source) String() string {
	switch s {
	case SourceTitle:
		return "title"
	case SourceLabel:
		return "label"
	default:
		return "unknown"
	}
}

// ParseSource parses a source name. The empty string selects the title.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "title":
		return SourceTitle, nil
	case "label", "labels":
		return SourceLabel, nil
	default:
		return SourceTitle, fmt.Errorf("invalid source %q: expected title or label", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Source.
func (s *Source) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	parsed, err := ParseSource(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
