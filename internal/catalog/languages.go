package catalog

import (
	"fmt"

	"github.com/Conceptual-Machines/cogito-api/internal/models"
)

// Language keys as used by the content files and the UI
const (
	LangEnglish    = "Englisch"
	LangGerman     = "Deutsch"
	LangSpanish    = "Spanisch"
	LangTurkish    = "Türkisch"
	LangFrench     = "Französisch"
	LangPortuguese = "Portugiesisch"

	// DefaultLanguage is the language the UI starts with
	DefaultLanguage = LangEnglish
)

var languages = []models.Language{
	{Key: LangEnglish, Label: "English", Flag: "🇬🇧"},
	{Key: LangGerman, Label: "Deutsch", Flag: "🇩🇪"},
	{Key: LangSpanish, Label: "Español", Flag: "🇪🇸"},
	{Key: LangTurkish, Label: "Türkçe", Flag: "🇹🇷"},
	{Key: LangFrench, Label: "Français", Flag: "🇫🇷"},
	{Key: LangPortuguese, Label: "Português", Flag: "🇵🇹"},
}

// contentFiles maps language keys to their JSON file inside the embedded FS
var contentFiles = map[string]string{
	LangEnglish:    "data/questions/en.json",
	LangGerman:     "data/questions/de.json",
	LangSpanish:    "data/questions/es.json",
	LangTurkish:    "data/questions/tr.json",
	LangFrench:     "data/questions/fr.json",
	LangPortuguese: "data/questions/pt.json",
}

// categoryAliases lists the titles a category may appear under in the content
// files. The first alias is the display title.
var categoryAliases = map[string]map[models.CategoryKey][]string{
	LangEnglish: {
		models.CategoryFriendship: {"Friendship"},
		models.CategoryLove:       {"Love and Relationship", "Love & Relationship"},
		models.CategoryIdentity:   {"Identity & Life", "Identity and Life"},
		models.CategoryGoals:      {"Goals and Society", "Goals & Society"},
	},
	LangGerman: {
		models.CategoryFriendship: {"Freundschaft"},
		models.CategoryLove:       {"Liebe und Beziehung", "Liebe & Beziehung", "Liebe und Beziehungen"},
		models.CategoryIdentity:   {"Identität & Leben", "Identität und Leben"},
		models.CategoryGoals:      {"Ziele und Gesellschaft", "Ziele & Gesellschaft", "Ziele ud Gesellschaft"},
	},
	LangSpanish: {
		models.CategoryFriendship: {"Amistad"},
		models.CategoryLove:       {"Amor y Relaciones", "Amor & Relaciones"},
		models.CategoryIdentity:   {"Identidad y Vida"},
		models.CategoryGoals:      {"Metas y Sociedad"},
	},
	LangTurkish: {
		models.CategoryFriendship: {"Arkadaşlık", "Arkadaslik"},
		models.CategoryLove:       {"Aşk ve İlişkiler", "Ask ve Iliskiler"},
		models.CategoryIdentity:   {"Kimlik ve Yaşam", "Kimlik ve yasam"},
		models.CategoryGoals:      {"Hedefler ve Toplum"},
	},
	LangFrench: {
		models.CategoryFriendship: {"Amitié", "Amitie"},
		models.CategoryLove:       {"Amour & Relations", "Amour et Relations"},
		models.CategoryIdentity:   {"Identité & Vie", "Identite & Vie", "Identité et Vie"},
		models.CategoryGoals:      {"Objectifs & Société", "Objectifs et Société", "Objectifs & Societe"},
	},
	LangPortuguese: {
		models.CategoryFriendship: {"Amizade"},
		models.CategoryLove:       {"Amor e Relacionamentos", "Amor & Relacionamentos"},
		models.CategoryIdentity:   {"Identidade e Vida"},
		models.CategoryGoals:      {"Metas e Sociedade"},
	},
}

var descriptionTemplates = map[string]string{
	LangEnglish:    "Prompts and questions about “%s” — great for deeper conversations.",
	LangGerman:     "Fragen und Impulse rund um „%s“ – ideal für tiefere Gespräche.",
	LangSpanish:    "Preguntas e ideas sobre «%s», perfectas para conversaciones más profundas.",
	LangTurkish:    "“%s” üzerine sorular ve düşünce kıvılcımları — derin sohbetler için ideal.",
	LangFrench:     "Questions et inspirations autour de « %s » — parfait pour des échanges plus profonds.",
	LangPortuguese: "Perguntas e ideias sobre “%s” — ideal para conversas mais profundas.",
}

// localizedTitle returns the display title of a category, falling back to the key
func localizedTitle(lang string, key models.CategoryKey) string {
	if list := categoryAliases[lang][key]; len(list) > 0 {
		return list[0]
	}
	return string(key)
}

func localizedDescription(lang, title string) string {
	tmpl, ok := descriptionTemplates[lang]
	if !ok {
		tmpl = descriptionTemplates[DefaultLanguage]
	}
	return fmt.Sprintf(tmpl, title)
}

func isKnownCategory(key models.CategoryKey) bool {
	for _, k := range models.CategoryOrder {
		if k == key {
			return true
		}
	}
	return false
}
