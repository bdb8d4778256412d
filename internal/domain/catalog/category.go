package catalog

import (
	"regexp"
	"strings"

	"github.com/decora/storefront/internal/domain/shared"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Category groups products under a display name and a URL-safe slug.
// Items is a display label such as "24 items".
type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Items       string `json:"items"`
}

// Validate checks name and slug
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	if !slugPattern.MatchString(c.Slug) {
		return shared.NewDomainError("INVALID_CATEGORY", "Category slug must be lowercase letters, digits and hyphens")
	}
	return nil
}
