package script

import (
	"fmt"
	"os"
	"strings"
)

// Script is an append-only text buffer for one generated file.
type Script struct {
	name      string
	buf       strings.Builder
	fragments int
}

// New creates an empty script that will be written as name.
func New(name string) *Script {
	return &Script{name: name}
}

// Name returns the file name the script is written as.
func (s *Script) Name() string {
	return s.name
}

// Append adds a fragment to the end of the script.
func (s *Script) Append(fragment string) {
	s.buf.WriteString(fragment)
	s.fragments++
}

// Fragments returns how many fragments were appended.
func (s *Script) Fragments() int {
	return s.fragments
}

// Len returns the script length in bytes.
func (s *Script) Len() int {
	return s.buf.Len()
}

func (s *Script) String() string {
	return s.buf.String()
}

// WriteFile writes the script contents to path, replacing any existing file.
func (s *Script) WriteFile(path string, perm os.FileMode) error {
	if err := os.WriteFile(path, []byte(s.buf.String()), perm); err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}
