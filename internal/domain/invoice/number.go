package invoice

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseNumber interpreta la entrada de un campo numérico del formulario (tarifa o cantidad).
// Toma el prefijo decimal más largo válido tras quitar espacios iniciales ("12abc" → 12,
// ".5" → 0.5, "1e2" → 100). Cualquier entrada sin prefijo numérico devuelve cero; nunca falla.
// Los negativos se aceptan tal cual. Los valores fuera del rango de float64 (o que
// se redondean a cero en float64) valen cero, igual que Infinity.
func ParseNumber(raw string) decimal.Decimal {
	prefix := numericPrefix(strings.TrimLeftFunc(raw, unicode.IsSpace))
	if prefix == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(f, 0) || f == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix devuelve el prefijo de s con forma [signo]dígitos[.dígitos][e[signo]dígitos]
// normalizado para decimal.NewFromString, o "" si no hay al menos un dígito en la mantisa.
func numericPrefix(s string) string {
	var b strings.Builder
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			b.WriteByte('-')
		}
		i++
	}

	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intPart := s[intStart:i]

	fracPart := ""
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracPart = s[i+1 : j]
		if intPart != "" || fracPart != "" {
			i = j
		}
	}
	if intPart == "" && fracPart == "" {
		return ""
	}

	if intPart == "" {
		intPart = "0"
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	// Exponente: solo cuenta si le sigue al menos un dígito.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		sign := ""
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			if s[j] == '-' {
				sign = "-"
			}
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			b.WriteByte('e')
			b.WriteString(sign)
			b.WriteString(s[expStart:j])
		}
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
