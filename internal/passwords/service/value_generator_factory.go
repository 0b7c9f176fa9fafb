package service

import (
	"github.com/allisson/onetimepassgen/internal/passwords/domain"
)

// NewValueGenerator creates a generator for format. length only applies to the
// alphanumeric format.
func NewValueGenerator(format domain.FormatType, length int) (ValueGenerator, error) {
	switch format {
	case domain.FormatUUID:
		return NewUUIDGenerator(), nil
	case domain.FormatAlphanumeric:
		return NewAlphanumericGenerator(length)
	default:
		return nil, domain.ErrInvalidFormatType
	}
}
