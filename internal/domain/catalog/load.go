package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
)

//go:embed apps.yaml
var builtinApps []byte

// FilePattern selects catalog files inside a catalog directory
const FilePattern = "**/*.{yaml,yml}"

type appFile struct {
	Apps []appEntry `yaml:"apps"`
}

type appEntry struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Icon   string `yaml:"icon"`
	Header string `yaml:"header,omitempty"`
	Body   string `yaml:"body,omitempty"`
	Init   string `yaml:"init,omitempty"`
}

// Builtin returns the embedded catalog
func Builtin() (*Catalog, error) {
	c := &Catalog{index: make(map[string]int)}
	if err := c.merge("apps.yaml", builtinApps, false); err != nil {
		return nil, err
	}
	return c, nil
}

// Load returns the embedded catalog extended by every catalog file under
// dir. Entries from dir replace built-in apps with the same id; files are
// applied in lexical path order. An empty dir yields the built-in catalog.
func Load(ctx context.Context, dir string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return c, nil
	}

	paths, err := findFiles(ctx, dir)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		if err := c.merge(p, data, true); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Parse decodes a single catalog file
func Parse(name string, data []byte) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int)}
	if err := c.merge(name, data, false); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) merge(name string, data []byte, override bool) error {
	var file appFile
	if err := yaml.UnmarshalWithOptions(data, &file, yaml.Strict()); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}

	seen := make(map[string]bool, len(file.Apps))
	for _, e := range file.Apps {
		if seen[e.ID] {
			return fmt.Errorf("%s: %w: %s", name, ErrDuplicateApp, e.ID)
		}
		seen[e.ID] = true

		d, err := e.descriptor()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := c.add(d, override); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (e appEntry) descriptor() (Descriptor, error) {
	body := SanitizeBody(e.Body)
	d := Descriptor{
		ID:          e.ID,
		DisplayName: e.Name,
		IconRef:     e.Icon,
		HeaderText:  e.Header,
		Body:        body,
		Summary:     Summarize(body),
	}
	if e.Init != "" {
		script, err := CompileScript(e.ID, e.Init)
		if err != nil {
			return Descriptor{}, err
		}
		d.Initializer = script
	}
	return d, nil
}

// findFiles walks dir and returns catalog files sorted by path
func findFiles(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog dir %s is not a directory", dir)
	}

	var (
		mu    sync.Mutex
		paths []string
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, dir, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(FilePattern, filepath.ToSlash(rel)); !ok {
			return nil
		}

		mu.Lock()
		paths = append(paths, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk catalog dir: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Dump renders the catalog as YAML in file format. Initializer sources are
// not retained and are omitted.
func (c *Catalog) Dump() ([]byte, error) {
	file := appFile{Apps: make([]appEntry, 0, len(c.apps))}
	for _, d := range c.apps {
		file.Apps = append(file.Apps, appEntry{
			ID:     d.ID,
			Name:   d.DisplayName,
			Icon:   d.IconRef,
			Header: d.HeaderText,
			Body:   d.Body,
		})
	}
	var buf bytes.Buffer
	if err := yaml.NewEncoder(&buf).Encode(file); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
