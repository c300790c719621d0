package domain

import "errors"

var (
	// ErrEmptyCatalog is returned when the question file contains no questions.
	ErrEmptyCatalog = errors.New("question catalog is empty")
	// ErrInvalidQuestion indicates a catalog entry without a type or text.
	ErrInvalidQuestion = errors.New("question entry missing type or text")
)
