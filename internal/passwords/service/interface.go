// Package service provides the generators that produce one-time password values.
package service

// ValueGenerator produces opaque password values.
type ValueGenerator interface {
	Generate() (string, error)
}
