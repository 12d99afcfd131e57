package models

// CategoryKey identifies a topical category independent of language
type CategoryKey string

const (
	CategoryFriendship CategoryKey = "friendship"
	CategoryLove       CategoryKey = "love"
	CategoryIdentity   CategoryKey = "identity"
	CategoryGoals      CategoryKey = "goals"
)

// CategoryOrder is the fixed display order of categories
var CategoryOrder = []CategoryKey{CategoryFriendship, CategoryLove, CategoryIdentity, CategoryGoals}

// Language describes one supported content language
type Language struct {
	Key   string `json:"key"`   // e.g. "Englisch"
	Label string `json:"label"` // e.g. "English"
	Flag  string `json:"flag"`
}

// Category is a localized category entry
type Category struct {
	Key         CategoryKey `json:"key"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}

// Question is one prompt card. Reason is shown on the back of the card.
type Question struct {
	Text   string `json:"text"`
	Reason string `json:"reason,omitempty"`
}

// Deck is an ordered or shuffled sequence of questions for one language/category pair
type Deck struct {
	Language  string      `json:"language"`
	Category  CategoryKey `json:"category"`
	Title     string      `json:"title"`
	Shuffled  bool        `json:"shuffled"`
	Questions []Question  `json:"questions"`
}

// Card is one position in an ordered deck. Next equals Index on the last card.
type Card struct {
	Index    int      `json:"index"`
	Next     int      `json:"next"`
	Total    int      `json:"total"`
	Last     bool     `json:"last"`
	Question Question `json:"question"`
}
