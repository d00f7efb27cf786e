package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/podryad/podryad/internal/slug"
)

const maxSlugAttempts = 20

// uniqueSlug derives a URL slug from the title, probing with numeric
// suffixes until it is free. After too many collisions it falls back to a
// random suffix.
func uniqueSlug(ctx context.Context, title string, exists func(context.Context, string) (bool, error)) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "item"
	}

	candidate := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}
