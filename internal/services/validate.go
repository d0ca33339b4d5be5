package services

import (
	"net/mail"
	"strings"
)

func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrValidation(field, field+" is required")
	}
	return trimmed, nil
}

func requireEmail(field, value string) (string, error) {
	trimmed, err := requireText(field, value)
	if err != nil {
		return "", err
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrValidation(field, field+" must be a valid email address")
	}
	return strings.ToLower(trimmed), nil
}

func oneOf(field, value string, allowed []string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, trimmed) {
			return candidate, nil
		}
	}
	return "", ErrValidation(field, field+" must be one of "+strings.Join(allowed, ", "))
}

// optionalText trims the value and maps blank strings to nil.
func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func valueOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func cleanList(items []string) []string {
	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		value := strings.TrimSpace(item)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		cleaned = append(cleaned, value)
	}
	return cleaned
}

// CleanTags trims, de-duplicates and caps blog tags.
func CleanTags(tags []string) []string {
	cleaned := cleanList(tags)
	if len(cleaned) > 12 {
		cleaned = cleaned[:12]
	}
	return cleaned
}
