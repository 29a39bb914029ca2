package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

//go:embed messages.yaml
var defaultMessages []byte

// Entry is a predefined toast.
type Entry struct {
	Message    string         `yaml:"message"`
	Category   toast.Category `yaml:"category"`
	Persistent bool           `yaml:"persistent"`
}

// Shower is implemented by *toast.Queue.
type Shower interface {
	Show(message string, category toast.Category, opts ...toast.ShowOption) (int, error)
}

// Catalog maps keys to predefined toasts. It is immutable after creation
// and safe for concurrent use.
type Catalog struct {
	entries map[string]Entry
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(bytes.NewReader(defaultMessages))
	if err != nil {
		panic(fmt.Sprintf("embedded toast catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML mapping of key to Entry and validates every entry.
func Parse(r io.Reader) (*Catalog, error) {
	entries := make(map[string]Entry)
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrDecode, err)
	}

	for key, e := range entries {
		if strings.TrimSpace(e.Message) == "" {
			return nil, fmt.Errorf("%w: %q has no message", ErrInvalidEntry, key)
		}
		if !e.Category.Valid() {
			return nil, fmt.Errorf("%w: %q has unknown category %q", ErrInvalidEntry, key, e.Category)
		}
	}
	return &Catalog{entries: entries}, nil
}

// Merge returns a catalog with the entries of c overridden by those of other.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := maps.Clone(c.entries)
	maps.Copy(merged, other.entries)
	return &Catalog{entries: merged}
}

// Lookup returns the entry for key.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Keys returns all keys in lexical order.
func (c *Catalog) Keys() []string {
	return slices.Sorted(maps.Keys(c.entries))
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Format renders the message for key with args. The number of args must
// match the verbs of the message.
func (c *Catalog) Format(key string, args ...any) (string, Entry, error) {
	e, ok := c.entries[key]
	if !ok {
		return "", Entry{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if want := verbs(e.Message); want != len(args) {
		return "", Entry{}, fmt.Errorf("%w: %q takes %d, got %d", ErrArgCount, key, want, len(args))
	}
	return fmt.Sprintf(e.Message, args...), e, nil
}

// verbs counts the formatting verbs in format; "%%" is a literal percent.
func verbs(format string) int {
	n := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}

// Show formats the message for key and shows it on s with the entry's
// category and persistence. It returns what s.Show returns.
func (c *Catalog) Show(s Shower, key string, args ...any) (int, error) {
	msg, e, err := c.Format(key, args...)
	if err != nil {
		return 0, err
	}
	return s.Show(msg, e.Category, toast.PersistentIf(e.Persistent))
}
