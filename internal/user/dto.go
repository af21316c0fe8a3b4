package user

import (
	"regexp"
	"strings"

	errors "github.com/splitmate/splitmate/internal"
)

var nonDialable = regexp.MustCompile(`[^0-9+]`)

// NormalizeMobile strips separators so the same contact entered with
// spaces or dashes maps to one stored number.
func NormalizeMobile(mobile string) string {
	return nonDialable.ReplaceAllString(strings.TrimSpace(mobile), "")
}

type InviteUserDTO struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Avatar string `json:"avatar,omitempty"`
}

func (dto InviteUserDTO) Validate() error {
	if dto.Name == "" {
		return errors.NewValidationFieldError("name", "name is required", errors.ErrCodeValidationFailed)
	}
	if NormalizeMobile(dto.Mobile) == "" {
		return errors.NewValidationFieldError("mobile", "mobile is required", errors.ErrCodeValidationFailed)
	}
	return nil
}
