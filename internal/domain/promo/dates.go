// Package promo contiene el núcleo de ingesta y agregación de eventos promocionales:
// normalización de fechas y celdas, detección de encabezados en catálogos Excel,
// construcción de registros de venta desde CSV y el reporte acumulado por evento.
//
// Todas las funciones son puras: no leen estado global ni hacen I/O.
package promo

import (
	"regexp"
	"strings"
)

var (
	canonicalDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// Tres grupos numéricos separados por "/" o "-" (se admiten separadores mezclados).
	threePartDateRe = regexp.MustCompile(`^(\d{1,4})[/-](\d{1,2})[/-](\d{1,4})$`)
	compactDateRe   = regexp.MustCompile(`^\d{8}$`)
)

// NormalizeDate convierte una fecha del export a la forma canónica YYYY-MM-DD.
//
// Orden de prueba:
//  1. ya canónica → se devuelve igual;
//  2. tres partes con "/" o "-": si la primera tiene 4 dígitos es Y-M-D, si no D-M-Y;
//  3. compacta YYYYMMDD;
//  4. cualquier otra cosa → el texto recortado sin cambios.
//
// Nunca falla: la validación posterior decide qué hacer con valores no canónicos.
func NormalizeDate(raw string) string {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return ""
	}
	if canonicalDateRe.MatchString(clean) {
		return clean
	}
	if m := threePartDateRe.FindStringSubmatch(clean); m != nil {
		first, month, last := m[1], m[2], m[3]
		if len(first) == 4 {
			return first + "-" + pad2(month) + "-" + pad2(last)
		}
		return last + "-" + pad2(month) + "-" + pad2(first)
	}
	if compactDateRe.MatchString(clean) {
		return clean[0:4] + "-" + clean[4:6] + "-" + clean[6:8]
	}
	return clean
}

// IsCanonicalDate indica si s cumple YYYY-MM-DD (comparable lexicográficamente).
func IsCanonicalDate(s string) bool {
	return canonicalDateRe.MatchString(s)
}

func pad2(s string) string {
	if len(s) < 2 {
		return strings.Repeat("0", 2-len(s)) + s
	}
	return s
}
