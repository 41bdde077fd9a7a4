// Package i18n provides localized client messages for chatguard error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// BaseLocale is the fallback locale when no better match exists.
const BaseLocale = "en-US"

// Code aliases string so catalogs stay decoupled from the errors package,
// which imports this one.
type Code = string

// Catalog maps error codes to message templates for a single locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var supportedTags = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

var (
	catalogsMu sync.RWMutex
	// catalogs holds the built-in and registered catalogs by locale.
	catalogs = map[string]*Catalog{}
)

// GetCatalog returns the catalog whose locale best matches the requested one.
// Falls back to en-US when the locale is empty, malformed, or unsupported.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	if c, ok := lookupCatalog(requested); ok {
		return c
	}

	resolved := matchLocale(requested)
	if c, ok := lookupCatalog(resolved); ok {
		return c
	}
	if c, ok := lookupCatalog(BaseLocale); ok {
		return c
	}

	// No catalogs registered at all; Format falls back to raw codes.
	return NewCatalog(BaseLocale, nil)
}

// matchLocale resolves a requested locale to the nearest supported one.
func matchLocale(requested string) string {
	tag, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return BaseLocale
	}
	return supportedTags[idx].String()
}

// Locale returns the locale this catalog serves.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code with the given metadata. Unknown
// codes render as the code itself, and template failures fall back to the
// raw template text, so a catalog gap never hides the underlying error.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	rendered, ok := render(tmpl, metadata)
	if !ok {
		return tmpl
	}
	return rendered
}

// render executes one message template. Nil metadata still renders, with
// missing keys shown as placeholders, so every code formats to something.
func render(tmpl string, metadata map[string]string) (string, bool) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	parsed, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := parsed.Execute(&buf, metadata); err != nil {
		return "", false
	}
	return buf.String(), true
}

// RegisterCatalog registers a catalog for the given locale, replacing any
// existing one. Built-in catalogs register themselves during init.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a catalog from a message map. The map is copied so
// later caller mutations cannot reach the registered catalog.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cat := &Catalog{locale: locale, messages: make(map[Code]string, len(messages))}
	for code, tmpl := range messages {
		cat.messages[code] = tmpl
	}
	return cat
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}
