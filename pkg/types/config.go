package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Config selects the persistence backend passed to Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend" validate:"required,oneof=xml sqlite"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendXML    = "xml"
	BackendSQLite = "sqlite"
)

// DefaultBackend is used when no backend is configured.
const DefaultBackend = BackendXML

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the Config is well-formed. It returns ErrBackendEmpty
// or ErrBackendUnknown on failure.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Field() != "Backend" {
			continue
		}
		if fe.Tag() == "required" {
			return ErrBackendEmpty
		}
		return ErrBackendUnknown
	}
	return err
}
