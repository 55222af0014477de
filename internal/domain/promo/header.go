package promo

import (
	"strconv"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// HeaderScanRows filas máximas que se revisan buscando el encabezado.
const HeaderScanRows = 100

// Palabras clave normalizadas (minúsculas, sin tildes, solo [a-z0-9]).
// Los catálogos suelen venir en vietnamita o inglés, con títulos antes del encabezado.
var (
	DefaultBarcodeKeywords = []string{
		"barcode", "mavach", "mahang", "code", "id", "upc", "ean", "sku", "masp", "mabarcode", "ma",
	}
	DefaultNameKeywords = []string{
		"tensanpham", "itemname", "productname", "tenhang", "name", "tensp",
		"description", "desc", "tenhanghoa", "ten",
	}
)

// Grid hoja de cálculo como matriz de celdas; las filas pueden tener largos distintos.
type Grid [][]any

// Cell devuelve la celda (r, c) o nil si está fuera de rango.
func (g Grid) Cell(r, c int) any {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return nil
	}
	return g[r][c]
}

// HeaderMap fila del encabezado y columnas de barcode y nombre (base 0).
type HeaderMap struct {
	Row        int
	BarcodeCol int
	NameCol    int
}

// combiningMarks marcas diacríticas combinantes U+0300–U+036F que quedan tras NFD.
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
})

// NormalizeHeader pasa un encabezado a minúsculas, sin tildes, con "đ" → "d",
// y elimina todo lo que no sea [a-z0-9]. "Mã vạch" → "mavach".
func NormalizeHeader(v any) string {
	s := strings.ToLower(strings.TrimSpace(cellText(v)))
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == 'đ':
			return 'd'
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return -1
		}
	}, folded)
}

// ResolveHeader busca, en las primeras HeaderScanRows filas, la primera fila que
// tenga una columna de barcode y una de nombre. En cada fila se toma la primera
// columna cuyo valor normalizado es igual a, o contiene, alguna palabra clave.
// Devuelve false si ninguna fila del rango tiene ambas columnas.
func ResolveHeader(grid Grid, barcodeKeywords, nameKeywords []string) (HeaderMap, bool) {
	barcodeKeys := cleanKeywords(barcodeKeywords)
	nameKeys := cleanKeywords(nameKeywords)
	if len(barcodeKeys) == 0 || len(nameKeys) == 0 {
		return HeaderMap{}, false
	}

	limit := len(grid)
	if limit > HeaderScanRows {
		limit = HeaderScanRows
	}
	for r := 0; r < limit; r++ {
		barcodeCol, nameCol := -1, -1
		for c, cell := range grid[r] {
			h := NormalizeHeader(cell)
			if h == "" {
				continue
			}
			if barcodeCol == -1 && matchesAny(h, barcodeKeys) {
				barcodeCol = c
			}
			if nameCol == -1 && matchesAny(h, nameKeys) {
				nameCol = c
			}
		}
		if barcodeCol != -1 && nameCol != -1 {
			return HeaderMap{Row: r, BarcodeCol: barcodeCol, NameCol: nameCol}, true
		}
	}
	return HeaderMap{}, false
}

func matchesAny(h string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(h, k) {
			return true
		}
	}
	return false
}

// cleanKeywords normaliza las palabras clave y descarta las vacías
// (una clave vacía coincidiría con cualquier celda).
func cleanKeywords(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if n := NormalizeHeader(k); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// cellText representación textual de una celda para comparar encabezados.
func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		if s, ok := v.(interface{ String() string }); ok {
			return s.String()
		}
		return ""
	}
}
