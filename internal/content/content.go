// Package content loads treasure hunt content tables from YAML and keeps
// track of which table new sessions should use.
package content

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/playperu/treasurehunt/internal/hunt"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrUnknownVersion is returned for a content version the library does not
// hold.
var ErrUnknownVersion = errors.New("unknown content version")

// Parse decodes and validates a content table. Unknown fields are rejected.
// JSON input is accepted too, being valid YAML.
func Parse(data []byte) (*hunt.Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c hunt.Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("content is empty")
		}
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}

	sum := sha256.Sum256(data)
	c.Version = hex.EncodeToString(sum[:6])
	return &c, nil
}

// Load reads a content table from a file.
func Load(path string) (*hunt.Content, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in content table.
func Default() (*hunt.Content, error) {
	return Parse(defaultYAML)
}

// Library holds every content table loaded during the process lifetime.
// Sessions stay bound to the version they started with; Current is what
// new sessions get.
type Library struct {
	mu       sync.RWMutex
	versions map[string]*hunt.Content
	current  string
}

func NewLibrary(initial *hunt.Content) *Library {
	return &Library{
		versions: map[string]*hunt.Content{initial.Version: initial},
		current:  initial.Version,
	}
}

func (l *Library) Current() *hunt.Content {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.versions[l.current]
}

func (l *Library) Get(version string) (*hunt.Content, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.versions[version]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
	return c, nil
}

// Publish makes c the table for new sessions. Older versions stay
// available to sessions already bound to them.
func (l *Library) Publish(c *hunt.Content) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.versions[c.Version] = c
	l.current = c.Version
}
