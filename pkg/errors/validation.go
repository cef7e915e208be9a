package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// projectIDRegex matches the project ids minted by the authoring tool
// (e.g. "PRJ-4F2K1", "onboarding-v2"). Conservative on purpose: ids travel
// through filenames and cache keys.
var projectIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateProjectID validates a project identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No path separators or traversal sequences (ids become filenames)
//   - Maximum length of 128 characters
func ValidateProjectID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidProject, "project id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidProject, "project id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProject, "project id contains control characters")
		}
	}

	if !projectIDRegex.MatchString(id) {
		return New(ErrCodeInvalidProject, "invalid project id: %q", id)
	}

	return nil
}

// ValidateNodeID validates a node identifier supplied by a collaborator.
// Node ids are author-visible and flow through the interchange files, so the
// rules only exclude what would corrupt a row: empties, control characters,
// and the "|" used to join parallel-group member lists.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains control characters")
		}
	}

	if strings.Contains(id, "|") {
		return New(ErrCodeInvalidInput, `node id cannot contain "|"`)
	}

	return nil
}

// ValidateOutputPath validates a destination path for an export file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "output path cannot contain path traversal sequences (..)")
	}

	return nil
}
