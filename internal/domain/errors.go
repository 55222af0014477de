package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrFileFormat   = errors.New("formato de archivo no soportado")
)

// FileFormatError describe un archivo (libro Excel o CSV) que no se pudo leer
// o que no contiene filas. Es fatal para la importación en curso.
type FileFormatError struct {
	Source string // "catalog" | "sales"
	Reason string
	Err    error
}

// NewFileFormatError construye el error con la causa opcional del parser.
func NewFileFormatError(source, reason string, cause error) *FileFormatError {
	return &FileFormatError{Source: source, Reason: reason, Err: cause}
}

func (e *FileFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

// Unwrap expone la causa del parser.
func (e *FileFormatError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrFileFormat).
func (e *FileFormatError) Is(target error) bool { return target == ErrFileFormat }
