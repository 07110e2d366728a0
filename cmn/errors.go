package cmn

import "github.com/pkg/errors"

// Error kinds the router/cache/server layer distinguishes.
// Each wraps an underlying cause, reachable through Unwrap; its Error text,
// prefixed with the kind, is what the router puts into a 500 response body.
type (
	// ParamErr signals a malformed URL the URLCleaner or ParameterExtractor
	// could not make sense of.
	ParamErr struct{ cause error }

	// StoreErr wraps any error the DataStore accessor returned.
	StoreErr struct{ cause error }

	// SerializationErr signals a JSON/XML render failure.
	SerializationErr struct{ cause error }

	// TemplateErr signals a missing or broken docs/stats template.
	TemplateErr struct{ cause error }

	// FileOpenErr signals a missing static asset.
	FileOpenErr struct{ cause error }
)

func (e *ParamErr) Error() string         { return "parameter error: " + e.cause.Error() }
func (e *StoreErr) Error() string         { return "data store error: " + e.cause.Error() }
func (e *SerializationErr) Error() string { return "serialization error: " + e.cause.Error() }
func (e *TemplateErr) Error() string      { return "template error: " + e.cause.Error() }
func (e *FileOpenErr) Error() string      { return "file open error: " + e.cause.Error() }

func (e *ParamErr) Unwrap() error         { return e.cause }
func (e *StoreErr) Unwrap() error         { return e.cause }
func (e *SerializationErr) Unwrap() error { return e.cause }
func (e *TemplateErr) Unwrap() error      { return e.cause }
func (e *FileOpenErr) Unwrap() error      { return e.cause }

func NewParamErr(cause error) error         { return &ParamErr{cause} }
func NewStoreErr(cause error) error         { return &StoreErr{cause} }
func NewSerializationErr(cause error) error { return &SerializationErr{cause} }
func NewTemplateErr(cause error) error      { return &TemplateErr{cause} }
func NewFileOpenErr(cause error) error      { return &FileOpenErr{cause} }

// Wrap is a thin re-export of errors.Wrap so callers elsewhere in this
// module don't need a second import for the common case.
func Wrap(err error, msg string) error { return errors.Wrap(err, msg) }
