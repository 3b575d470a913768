package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrStorage      = errors.New("fallo de almacenamiento")
)

// ValidationError señala un campo requerido ausente o malformado.
// Envuelve ErrInvalidInput para poder chequear con errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entrada inválida: campo %q %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError con campo y motivo.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError señala que la clave/factura/línea referenciada no existe.
// Envuelve ErrNotFound para poder chequear con errors.Is.
type NotFoundError struct {
	Resource string // stock, indent_stock, job_indents
	Key      string
	Invoice  string
}

func (e *NotFoundError) Error() string {
	if e.Invoice != "" {
		return fmt.Sprintf("%s: no existe registro para clave %q y factura %q", e.Resource, e.Key, e.Invoice)
	}
	return fmt.Sprintf("%s: no existe registro para %q", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StorageError señala un fallo del backend de persistencia: transitorio, el
// caller puede reintentar. Envuelve ErrStorage y el error del driver, ambos
// inspeccionables con errors.Is.
type StorageError struct {
	Op  string // operación que falló, p. ej. "obtener stock"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }

// NewStorageError construye un StorageError para la operación dada.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsValidation indica si el error proviene de entrada inválida del caller.
func IsValidation(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsNotFound indica si el error es por un recurso inexistente.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsStorage indica si el error proviene del backend de persistencia.
func IsStorage(err error) bool { return errors.Is(err, ErrStorage) }
