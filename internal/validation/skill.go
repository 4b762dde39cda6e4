package validation

import (
	"fmt"
	"strings"

	"skillswap/internal/models"
)

// ValidateSkillName checks a skill name for length and content.
func ValidateSkillName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 {
		return fmt.Errorf("skill name must be at least 2 characters long")
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("skill name must not exceed 100 characters")
	}
	return nil
}

// ValidateSkillCategory checks that a category is one of the known values.
// An empty category is allowed and treated as "other" downstream.
func ValidateSkillCategory(category string) error {
	if category == "" {
		return nil
	}
	for _, c := range models.SkillCategories {
		if c == category {
			return nil
		}
	}
	return fmt.Errorf("unknown skill category %q", category)
}
