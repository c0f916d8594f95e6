package service

import (
	"strings"
	"unicode/utf8"

	"github.com/dafibh/mandataire/mandataire-backend/internal/domain"
	"github.com/dafibh/mandataire/mandataire-backend/internal/util"
)

// validateName trims a required name and checks its length
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

// normalizeRequiredPhone validates a mandatory phone number and returns it in E.164
func normalizeRequiredPhone(phone, region string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", domain.ErrPhoneRequired
	}
	normalized, err := util.NormalizePhone(phone, region)
	if err != nil {
		return "", domain.ErrInvalidPhone
	}
	return normalized, nil
}

// normalizeOptionalPhone is normalizeRequiredPhone for nullable numbers. Blank clears the number.
func normalizeOptionalPhone(phone *string, region string) (*string, error) {
	phone = util.TrimOptional(phone)
	if phone == nil {
		return nil, nil
	}
	normalized, err := util.NormalizePhone(*phone, region)
	if err != nil {
		return nil, domain.ErrInvalidPhone
	}
	return &normalized, nil
}
