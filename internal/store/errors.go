package store

import "errors"

var (
	// ErrMissingFrontmatter is returned when a document carries no `dida:`
	// frontmatter mapping to build criteria from.
	ErrMissingFrontmatter = errors.New("document has no dida frontmatter")

	// ErrInvalidFrontmatter is returned when the `dida:` mapping exists but a
	// field value cannot be interpreted.
	ErrInvalidFrontmatter = errors.New("invalid dida frontmatter")
)
