package catalog

import "errors"

var (
	ErrLanguageNotFound = errors.New("language not found")
	ErrCategoryNotFound = errors.New("category not found")
)
