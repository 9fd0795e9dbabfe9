package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/PocketOS/internal/shared/types"
	"github.com/GriffinCanCode/PocketOS/internal/shared/utils"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrDuplicateApp = errors.New("duplicate app id")
	ErrReservedID   = errors.New("reserved app id")
	ErrInvalidApp   = errors.New("invalid app definition")
)

// Env is what an initializer may touch on the device
type Env interface {
	Notify(title, message string)
	SetStatus(appID, status string)
	Setting(key string) string
}

// Initializer runs once for an app when the device starts
type Initializer interface {
	Init(ctx context.Context, env Env) error
}

// InitFunc adapts a function to Initializer
type InitFunc func(ctx context.Context, env Env) error

// Init calls f
func (f InitFunc) Init(ctx context.Context, env Env) error { return f(ctx, env) }

// Descriptor is one catalog entry
type Descriptor struct {
	ID          string
	DisplayName string
	IconRef     string
	HeaderText  string
	Body        string
	Summary     string
	Initializer Initializer
}

// AppSummary converts d to the API shape
func (d Descriptor) AppSummary() types.AppSummary {
	return types.AppSummary{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		IconRef:     d.IconRef,
		HeaderText:  d.HeaderText,
		Summary:     d.Summary,
	}
}

// Catalog is the ordered, immutable set of apps. Safe for concurrent reads.
type Catalog struct {
	apps  []Descriptor
	index map[string]int
}

// New builds a catalog from descriptors, in order
func New(apps ...Descriptor) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(apps))}
	for _, d := range apps {
		if err := c.add(d, false); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is New for fixed descriptor lists
func MustNew(apps ...Descriptor) *Catalog {
	c, err := New(apps...)
	if err != nil {
		panic(err)
	}
	return c
}

// add appends d, or replaces the entry with the same id when override is set
func (c *Catalog) add(d Descriptor, override bool) error {
	if d.ID == "" || d.DisplayName == "" {
		return fmt.Errorf("%w: id and name are required", ErrInvalidApp)
	}
	if err := utils.ValidateID(d.ID, "app id"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}
	if err := utils.ValidateName(d.DisplayName, "app name", utils.MaxNameLength); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}
	if d.ID == types.HomeScreen || types.IsSyntheticView(d.ID) {
		return fmt.Errorf("%w: %s", ErrReservedID, d.ID)
	}
	if i, ok := c.index[d.ID]; ok {
		if !override {
			return fmt.Errorf("%w: %s", ErrDuplicateApp, d.ID)
		}
		c.apps[i] = d
		return nil
	}
	c.index[d.ID] = len(c.apps)
	c.apps = append(c.apps, d)
	return nil
}

// Lookup returns the descriptor for id
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	i, ok := c.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return c.apps[i], true
}

// Has reports whether id is a catalog app
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// All returns every descriptor in catalog order
func (c *Catalog) All() []Descriptor {
	return append([]Descriptor(nil), c.apps...)
}

// Len returns the number of apps
func (c *Catalog) Len() int {
	return len(c.apps)
}

// Summaries returns the API view of every app in catalog order
func (c *Catalog) Summaries() []types.AppSummary {
	out := make([]types.AppSummary, 0, len(c.apps))
	for _, d := range c.apps {
		out = append(out, d.AppSummary())
	}
	return out
}

var bodyPolicy = bluemonday.UGCPolicy()

// SanitizeBody strips scripts and unsafe attributes from app markup
func SanitizeBody(body string) string {
	return strings.TrimSpace(bodyPolicy.Sanitize(body))
}

const summaryLimit = 120

// Summarize returns the first summaryLimit characters of the body's text
func Summarize(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	// Block boundaries would otherwise run words together
	doc.Find("p, h1, h2, h3, h4, li, div, br, td").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if utf8.RuneCountInString(text) <= summaryLimit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:summaryLimit-1])) + "…"
}
