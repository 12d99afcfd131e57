package embedded

import (
	"embed"
)

// Embed prompt and content data files
//
//go:embed data/system_prompt.txt
var SystemPromptTxt []byte

// QuestionsFS holds one JSON file per content language under data/questions/
//
//go:embed data/questions/*.json
var QuestionsFS embed.FS
