package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/Conceptual-Machines/cogito-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deterministicRNG returns values from a pre-set sequence.
type deterministicRNG struct {
	values []int
	idx    int
}

func (r *deterministicRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func loadEmbedded(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadEmbedded()
	require.NoError(t, err)
	return c
}

func TestLoadEmbeddedCoversEveryLanguageAndCategory(t *testing.T) {
	c := loadEmbedded(t)

	for _, lang := range c.Languages() {
		for _, key := range models.CategoryOrder {
			qs, err := c.Questions(lang.Key, key)
			require.NoError(t, err, "%s/%s", lang.Key, key)
			assert.NotEmpty(t, qs, "%s/%s has no questions", lang.Key, key)
			for _, q := range qs {
				assert.NotEmpty(t, q.Text)
			}
		}
	}
}

func TestLanguagesOrder(t *testing.T) {
	c := loadEmbedded(t)

	langs := c.Languages()
	require.Len(t, langs, 6)
	assert.Equal(t, LangEnglish, langs[0].Key)
	assert.Equal(t, "English", langs[0].Label)
	assert.Equal(t, LangPortuguese, langs[5].Key)

	// Returned slice is a copy
	langs[0].Key = "changed"
	assert.Equal(t, LangEnglish, c.Languages()[0].Key)
}

func TestResolveLanguage(t *testing.T) {
	c := loadEmbedded(t)

	tests := []struct {
		input string
		want  string
	}{
		{"Englisch", LangEnglish},
		{"english", LangEnglish},
		{" Deutsch ", LangGerman},
		{"Español", LangSpanish},
		{"türkçe", LangTurkish},
		{"FRANÇAIS", LangFrench},
		{"Portugiesisch", LangPortuguese},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l, err := c.ResolveLanguage(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Key)
		})
	}

	_, err := c.ResolveLanguage("Klingon")
	assert.ErrorIs(t, err, ErrLanguageNotFound)
}

func TestCategoriesFixedOrderAndLocalizedTitles(t *testing.T) {
	c := loadEmbedded(t)

	cats, err := c.Categories(LangGerman)
	require.NoError(t, err)
	require.Len(t, cats, 4)

	keys := make([]models.CategoryKey, len(cats))
	for i, cat := range cats {
		keys[i] = cat.Key
	}
	assert.Equal(t, models.CategoryOrder, keys)
	assert.Equal(t, "Freundschaft", cats[0].Title)
	assert.Equal(t, "Liebe und Beziehung", cats[1].Title)
	assert.Contains(t, cats[0].Description, "„Freundschaft“")

	_, err = c.Categories("nope")
	assert.ErrorIs(t, err, ErrLanguageNotFound)
}

func TestQuestionsResolvesAliases(t *testing.T) {
	c := loadEmbedded(t)

	// The German content file uses the second alias "Ziele & Gesellschaft"
	qs, err := c.Questions(LangGerman, models.CategoryGoals)
	require.NoError(t, err)
	require.NotEmpty(t, qs)
	assert.Equal(t, "Was ist dein größtes Ziel?", qs[0].Text)

	title, err := c.Title(LangGerman, models.CategoryGoals)
	require.NoError(t, err)
	assert.Equal(t, "Ziele und Gesellschaft", title)
}

func TestQuestionsStableOrderAndCopy(t *testing.T) {
	c := loadEmbedded(t)

	first, err := c.Questions(LangEnglish, models.CategoryFriendship)
	require.NoError(t, err)
	assert.Equal(t, "What makes a friendship last?", first[0].Text)
	assert.NotEmpty(t, first[0].Reason)

	first[0].Text = "mutated"
	second, err := c.Questions(LangEnglish, models.CategoryFriendship)
	require.NoError(t, err)
	assert.Equal(t, "What makes a friendship last?", second[0].Text)
}

func TestQuestionsUnknownCategory(t *testing.T) {
	c := loadEmbedded(t)

	_, err := c.Questions(LangEnglish, models.CategoryKey("sports"))
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = c.Title(LangEnglish, models.CategoryKey("sports"))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestQuestionsKnownCategoryWithoutContent(t *testing.T) {
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`{"Friendship": [{"text": "Q1"}]}`)},
	}
	c, err := Load(fsys, map[string]string{LangEnglish: "en.json"})
	require.NoError(t, err)

	qs, err := c.Questions(LangEnglish, models.CategoryLove)
	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)

	// Language is supported but has no content file at all
	qs, err = c.Questions(LangGerman, models.CategoryLove)
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(fstest.MapFS{}, map[string]string{LangEnglish: "missing.json"})
	assert.Error(t, err)

	fsys := fstest.MapFS{"bad.json": {Data: []byte(`[not json`)}}
	_, err = Load(fsys, map[string]string{LangEnglish: "bad.json"})
	assert.Error(t, err)
}

func TestDeckOrdered(t *testing.T) {
	c := loadEmbedded(t)

	deck, err := c.Deck("English", models.CategoryLove, false, nil)
	require.NoError(t, err)
	assert.Equal(t, LangEnglish, deck.Language)
	assert.Equal(t, models.CategoryLove, deck.Category)
	assert.Equal(t, "Love and Relationship", deck.Title)
	assert.False(t, deck.Shuffled)
	assert.Equal(t, "What does love mean to you?", deck.Questions[0].Text)
}

func TestDeckShuffledIsPermutation(t *testing.T) {
	c := loadEmbedded(t)

	ordered, err := c.Questions(LangEnglish, models.CategoryIdentity)
	require.NoError(t, err)

	// Always swapping with index 0 rotates the first element to the end
	rng := &deterministicRNG{values: []int{0}}
	deck, err := c.Deck(LangEnglish, models.CategoryIdentity, true, rng)
	require.NoError(t, err)
	assert.True(t, deck.Shuffled)
	assert.ElementsMatch(t, ordered, deck.Questions)
	assert.NotEqual(t, ordered, deck.Questions)
}

func TestResolveCategory(t *testing.T) {
	c := loadEmbedded(t)

	tests := []struct {
		lang, input string
		want        models.CategoryKey
	}{
		{LangEnglish, "love", models.CategoryLove},
		{LangEnglish, " Friendship ", models.CategoryFriendship},
		{LangGerman, "liebe und beziehung", models.CategoryLove},
		{LangGerman, "Ziele & Gesellschaft", models.CategoryGoals},
		{LangGerman, "GOALS", models.CategoryGoals},
	}
	for _, tt := range tests {
		key, err := c.ResolveCategory(tt.lang, tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, key, tt.input)
	}

	_, err := c.ResolveCategory(LangEnglish, "sports")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = c.ResolveCategory(LangEnglish, "")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = c.ResolveCategory("Klingon", "love")
	assert.ErrorIs(t, err, ErrLanguageNotFound)
}
