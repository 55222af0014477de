// Package csvsource lee los exports diarios de ventas en CSV.
package csvsource

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/jhoicas/promo-tracker/internal/domain"
	"github.com/jhoicas/promo-tracker/internal/domain/promo"
)

const source = "sales"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader convierte un CSV con fila de encabezado en filas indexadas por columna.
type Reader struct {
	legacy encoding.Encoding
}

// NewReader construye el lector. legacyCharset (nombre WHATWG, ej. "windows-1252")
// se usa solo cuando el archivo no es UTF-8 válido; vacío deshabilita la conversión.
func NewReader(legacyCharset string) (*Reader, error) {
	r := &Reader{}
	if legacyCharset == "" {
		return r, nil
	}
	enc, err := htmlindex.Get(legacyCharset)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", legacyCharset, err)
	}
	r.legacy = enc
	return r, nil
}

// ReadRows lee todo el archivo. Las líneas en blanco se omiten y las filas más
// cortas que el encabezado completan con "". Un archivo vacío, sin encabezado o
// mal formado devuelve FileFormatError.
func (r *Reader) ReadRows(in io.Reader) ([]promo.Row, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, domain.NewFileFormatError(source, "leer archivo", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) && r.legacy != nil {
		decoded, _, err := transform.Bytes(r.legacy.NewDecoder(), data)
		if err != nil {
			return nil, domain.NewFileFormatError(source, "decodificar charset", err)
		}
		data = decoded
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewFileFormatError(source, "archivo vacío", nil)
	}
	if err != nil {
		return nil, domain.NewFileFormatError(source, "CSV mal formado", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []promo.Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewFileFormatError(source, "CSV mal formado", err)
		}
		if blank(rec) {
			continue
		}
		row := make(promo.Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, domain.NewFileFormatError(source, "el archivo no tiene filas de datos", nil)
	}
	return rows, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
