package promo

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CleanValue convierte una celda en texto recortado apto para barcode o nombre.
//
// Los números se escriben como decimal completo, sin separadores de miles ni
// fracción, y lo mismo ocurre con textos en notación científica ("8.936123456789E+12"),
// que es como las hojas de cálculo guardan barcodes largos convertidos a número.
// nil o vacío devuelven "".
func CleanValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return cleanString(val)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case decimal.Decimal:
		return val.Round(0).String()
	case interface{ String() string }:
		return cleanString(val.String())
	default:
		return ""
	}
}

func cleanString(s string) string {
	str := strings.TrimSpace(s)
	if str == "" {
		return ""
	}
	if strings.Contains(strings.ToLower(str), "e+") {
		if d, err := decimal.NewFromString(str); err == nil {
			return d.Round(0).String()
		}
	}
	return str
}

// formatFloat expande el float sin notación científica. NaN e infinitos no
// representan un barcode y se tratan como celda vacía.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return decimal.NewFromFloat(f).Round(0).String()
}
