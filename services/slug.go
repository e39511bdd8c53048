package services

import (
	"context"
	"errors"
	"fmt"

	"newsroom-api/utils"
)

// maxSlugAttempts bounds how often a write is retried after the unique
// index rejected a slug that the lookup believed was free.
const maxSlugAttempts = 5

type slugLookup func(ctx context.Context, slug string) (bool, error)

// uniqueSlug derives the slug for title and tries base, base-1, base-2, ...
// until it finds one that is not taken.
func uniqueSlug(ctx context.Context, title, fallback string, exists slugLookup) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = fallback
	}
	for n := 0; ; n++ {
		candidate := utils.SlugCandidate(base, n)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("look up slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
}

// writeWithSlug runs write with a freshly generated slug, regenerating and
// retrying when storage reports ErrDuplicateSlug.
func writeWithSlug(ctx context.Context, title, fallback string, exists slugLookup, write func(slug string) error) error {
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := uniqueSlug(ctx, title, fallback, exists)
		if err != nil {
			return err
		}
		err = write(slug)
		if !errors.Is(err, ErrDuplicateSlug) {
			return err
		}
	}
	return fmt.Errorf("%w: could not allocate a unique slug for %q after %d attempts", ErrConflict, title, maxSlugAttempts)
}

// writeWithFixedSlug runs write with a caller chosen slug; a collision is a conflict.
func writeWithFixedSlug(slug string, write func(slug string) error) error {
	err := write(slug)
	if errors.Is(err, ErrDuplicateSlug) {
		return fmt.Errorf("%w: slug %q is already in use", ErrConflict, slug)
	}
	return err
}
