package handlers

import (
	"fmt"
	"unicode/utf8"

	"fiches/internal/models"
)

// Validation limits for document payloads.
const (
	maxTitleLen  = 300
	maxValueLen  = 100_000
	maxListItems = 1_000
	maxFields    = 200
)

// validateTitle checks a document title and returns the error message, or
// "" when valid. Blank titles are allowed; they get the default title.
func validateTitle(title string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateData checks the size of document data values.
func validateData(data map[string]any) string {
	if len(data) > maxFields {
		return fmt.Sprintf("Too many fields (max %d).", maxFields)
	}
	for key, v := range data {
		switch val := v.(type) {
		case string:
			if utf8.RuneCountInString(val) > maxValueLen {
				return fmt.Sprintf("Field %q is too long (max 100,000 characters).", key)
			}
		case []any:
			if len(val) > maxListItems {
				return fmt.Sprintf("Field %q has too many items (max %d).", key, maxListItems)
			}
			for _, item := range val {
				if s, ok := item.(string); ok && utf8.RuneCountInString(s) > maxValueLen {
					return fmt.Sprintf("Field %q is too long (max 100,000 characters).", key)
				}
			}
		}
	}
	return ""
}

// validateStyles rejects styles for more fields than a template can have.
func validateStyles(styles map[string]models.FieldStyle) string {
	if len(styles) > maxFields {
		return fmt.Sprintf("Too many styles (max %d).", maxFields)
	}
	return ""
}

// firstError returns the first non-empty message.
func firstError(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}
