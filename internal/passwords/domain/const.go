package domain

// FormatType selects how generated values are produced.
type FormatType string

const (
	FormatUUID         FormatType = "uuid"
	FormatAlphanumeric FormatType = "alphanumeric"
)

// Column limits of the generated_passwords table.
const (
	MaxOwnerIDLength = 64
	MaxValueLength   = 64
)

// Validate checks if the format type is supported.
func (f FormatType) Validate() error {
	switch f {
	case FormatUUID, FormatAlphanumeric:
		return nil
	default:
		return ErrInvalidFormatType
	}
}
