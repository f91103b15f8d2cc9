package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for project, template, and slide fields.
const (
	maxProjectNameLen  = 200
	maxTemplateNameLen = 200
	maxHeadlineLen     = 300
	maxBodyTextLen     = 2_000
	maxCTALen          = 300
	maxColorLen        = 20
	maxPromptLen       = 2_000
	maxSlidesPerDeck   = 50
	maxZonesPerSlide   = 12
)

// validateName checks a project or template display name and returns
// the first error found.
func validateName(name string, maxLen int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxLen {
		return "Name is too long."
	}
	return ""
}

// validateSlideField checks the value for one editable slide field.
func validateSlideField(field, value string) string {
	var limit int
	switch field {
	case "headline":
		limit = maxHeadlineLen
	case "body":
		limit = maxBodyTextLen
	case "cta":
		limit = maxCTALen
	case "background_color":
		limit = maxColorLen
	case "visual_prompt":
		limit = maxPromptLen
	default:
		return "Unknown field."
	}
	if utf8.RuneCountInString(value) > limit {
		return "Value is too long."
	}
	return ""
}
