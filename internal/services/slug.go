package services

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lower-cases value, folds diacritics and joins word runs with '-'.
func Slugify(value string) string {
	folded, _, err := transform.String(foldMarks, strings.TrimSpace(value))
	if err != nil {
		folded = value
	}
	lower := strings.ToLower(folded)
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug
}

// ResolveBlogSlug returns base, or base-2, base-3... for the first slug not
// used by a blog other than excludeID.
func ResolveBlogSlug(ctx context.Context, db *sqlx.DB, base, excludeID string) (string, error) {
	candidate := base
	counter := 2
	for {
		taken, err := slugTaken(ctx, db, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(counter)
		counter++
	}
}

func slugTaken(ctx context.Context, db *sqlx.DB, slug, excludeID string) (bool, error) {
	return exists(ctx, db, `SELECT 1 FROM blogs WHERE slug = ? AND id <> ?`, slug, excludeID)
}
