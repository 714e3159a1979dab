// Package i18n renders the user-facing strings of the document list in the
// supported languages. Message files are embedded TOML.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driving"
)

//go:embed locales/*.toml
var locales embed.FS

// Ensure Catalog implements the interface.
var _ driving.Localizer = (*Catalog)(nil)

// columnMessages maps column keys to their header message.
var columnMessages = map[string]string{
	"type": "fileType",
	"name": "name",
	"size": "fileSize",
}

// Catalog looks up localised messages.
type Catalog struct {
	bundle  *goi18n.Bundle
	matcher language.Matcher

	mu         sync.Mutex
	localizers map[domain.Language]*goi18n.Localizer
}

// New loads the embedded message files.
func New() (*Catalog, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	tags := make([]language.Tag, 0, len(domain.SupportedLanguages()))
	for _, lang := range domain.SupportedLanguages() {
		path := fmt.Sprintf("locales/active.%s.toml", lang)
		if _, err := bundle.LoadMessageFileFS(locales, path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		tags = append(tags, language.Make(lang.String()))
	}

	return &Catalog{
		bundle:     bundle,
		matcher:    language.NewMatcher(tags),
		localizers: make(map[domain.Language]*goi18n.Localizer),
	}, nil
}

// Match picks the supported language closest to the given BCP 47 tags,
// such as the value of $LANG or an Accept-Language header.
func (c *Catalog) Match(tags ...string) domain.Language {
	parsed := make([]language.Tag, 0, len(tags))
	for _, t := range tags {
		if tag, err := language.Parse(t); err == nil {
			parsed = append(parsed, tag)
		}
	}
	_, idx, conf := c.matcher.Match(parsed...)
	if conf == language.No {
		return domain.DefaultLanguage
	}
	return domain.SupportedLanguages()[idx]
}

// T renders a message. Unknown ids render as the id itself.
func (c *Catalog) T(lang domain.Language, id string, data map[string]any) string {
	return c.localize(lang, &goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Plural renders a message with plural forms for count.
func (c *Catalog) Plural(lang domain.Language, id string, count int) string {
	return c.localize(lang, &goi18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

// Column returns the localised header of a column.
func (c *Catalog) Column(lang domain.Language, col domain.Column) string {
	id, ok := columnMessages[col.Key]
	if !ok {
		return col.Name
	}
	return c.T(lang, id, nil)
}

// SelectionSummary renders the selection line of the document list.
func (c *Catalog) SelectionSummary(lang domain.Language, s domain.SelectionSummary) string {
	switch s.Count {
	case 0:
		return c.T(lang, domain.MsgNoSelectedItems, nil)
	case 1:
		return c.T(lang, domain.MsgSelectedItems, map[string]any{"Filename": s.Filename})
	default:
		return c.T(lang, domain.MsgSelectedMoreItems, map[string]any{"Count": s.Count})
	}
}

// Announcement renders a listing announcement.
func (c *Catalog) Announcement(lang domain.Language, a domain.Announcement) string {
	switch a.MessageID {
	case domain.AnnounceItemsAfterFilter:
		count, _ := a.Data["Count"].(int)
		return c.Plural(lang, a.MessageID, count)
	case domain.AnnounceSortedAscending, domain.AnnounceSortedDescending:
		data := map[string]any{"Column": a.Data["Column"]}
		if key, ok := a.Data["Key"].(string); ok {
			data["Column"] = c.Column(lang, domain.Column{Key: key, Name: fmt.Sprint(a.Data["Column"])})
		}
		return c.T(lang, a.MessageID, data)
	default:
		return c.T(lang, a.MessageID, a.Data)
	}
}

func (c *Catalog) localize(lang domain.Language, cfg *goi18n.LocalizeConfig) string {
	s, err := c.localizer(lang).Localize(cfg)
	if err != nil {
		return cfg.MessageID
	}
	return s
}

func (c *Catalog) localizer(lang domain.Language) *goi18n.Localizer {
	if !lang.IsValid() {
		lang = domain.DefaultLanguage
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.localizers[lang]
	if !ok {
		l = goi18n.NewLocalizer(c.bundle, lang.String())
		c.localizers[lang] = l
	}
	return l
}
