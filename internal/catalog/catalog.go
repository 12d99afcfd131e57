package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Conceptual-Machines/cogito-api/internal/models"
	"github.com/Conceptual-Machines/cogito-api/pkg/embedded"
)

// Catalog is the read-only question content: language → category title → questions.
// It is built once by Load and never modified afterwards, so it is safe for
// concurrent use without locking.
type Catalog struct {
	content map[string]map[string][]models.Question
}

// LoadEmbedded loads the catalog from the content compiled into the binary
func LoadEmbedded() (*Catalog, error) {
	return Load(embedded.QuestionsFS, contentFiles)
}

// Load reads one JSON file per language from fsys. files maps language keys to paths.
func Load(fsys fs.FS, files map[string]string) (*Catalog, error) {
	c := &Catalog{content: make(map[string]map[string][]models.Question, len(files))}
	for lang, path := range files {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read content for %s: %w", lang, err)
		}
		var byCategory map[string][]models.Question
		if err := json.Unmarshal(raw, &byCategory); err != nil {
			return nil, fmt.Errorf("parse content for %s: %w", lang, err)
		}
		c.content[lang] = byCategory
	}
	return c, nil
}

// Languages returns the supported languages in display order
func (c *Catalog) Languages() []models.Language {
	out := make([]models.Language, len(languages))
	copy(out, languages)
	return out
}

// ResolveLanguage finds a language by key ("Englisch") or label ("English"), ignoring case
func (c *Catalog) ResolveLanguage(s string) (models.Language, error) {
	s = strings.TrimSpace(s)
	for _, l := range languages {
		if strings.EqualFold(l.Key, s) || strings.EqualFold(l.Label, s) {
			return l, nil
		}
	}
	return models.Language{}, fmt.Errorf("%w: %q", ErrLanguageNotFound, s)
}

// Categories returns the localized categories of a language in fixed order
func (c *Catalog) Categories(lang string) ([]models.Category, error) {
	l, err := c.ResolveLanguage(lang)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(models.CategoryOrder))
	for _, key := range models.CategoryOrder {
		title := localizedTitle(l.Key, key)
		out = append(out, models.Category{
			Key:         key,
			Title:       title,
			Description: localizedDescription(l.Key, title),
		})
	}
	return out, nil
}

// Title returns the localized title of a category
func (c *Catalog) Title(lang string, key models.CategoryKey) (string, error) {
	l, err := c.ResolveLanguage(lang)
	if err != nil {
		return "", err
	}
	if !isKnownCategory(key) {
		return "", fmt.Errorf("%w: %q", ErrCategoryNotFound, key)
	}
	return localizedTitle(l.Key, key), nil
}

// ResolveCategory finds a category by key ("love") or any localized title
// ("Liebe und Beziehung"), ignoring case
func (c *Catalog) ResolveCategory(lang, s string) (models.CategoryKey, error) {
	l, err := c.ResolveLanguage(lang)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	for _, key := range models.CategoryOrder {
		if strings.EqualFold(string(key), s) {
			return key, nil
		}
		for _, alias := range categoryAliases[l.Key][key] {
			if strings.EqualFold(alias, s) {
				return key, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrCategoryNotFound, s)
}

// Questions returns the questions of one category in stable order.
// The returned slice is a copy; a known category without content yields an empty slice.
func (c *Catalog) Questions(lang string, key models.CategoryKey) ([]models.Question, error) {
	l, err := c.ResolveLanguage(lang)
	if err != nil {
		return nil, err
	}
	if !isKnownCategory(key) {
		return nil, fmt.Errorf("%w: %q", ErrCategoryNotFound, key)
	}

	data := c.content[l.Key]
	for _, alias := range categoryAliases[l.Key][key] {
		if qs, ok := data[alias]; ok {
			out := make([]models.Question, len(qs))
			copy(out, qs)
			return out, nil
		}
	}
	return []models.Question{}, nil
}

// Deck returns the questions of a category as a deck, shuffled through rng when requested
func (c *Catalog) Deck(lang string, key models.CategoryKey, shuffle bool, rng RNG) (models.Deck, error) {
	qs, err := c.Questions(lang, key)
	if err != nil {
		return models.Deck{}, err
	}
	l, _ := c.ResolveLanguage(lang)
	title, _ := c.Title(l.Key, key)

	if shuffle {
		qs = Shuffle(qs, rng)
	}

	return models.Deck{
		Language:  l.Key,
		Category:  key,
		Title:     title,
		Shuffled:  shuffle,
		Questions: qs,
	}, nil
}
