package typescript

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// quoteString renders s as a double-quoted JavaScript string literal.
// Control characters, quotes, backslashes, line separators and every
// non-ASCII code unit are escaped, so the output is plain ASCII.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	runes := []rune(s)
	for i, r := range runes {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\b':
			b.WriteString(`\b`)
		case 0:
			if i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
				b.WriteString(`\x00`)
			} else {
				b.WriteString(`\0`)
			}
		default:
			switch {
			case r < 0x20:
				writeUTF16Escape(&b, r)
			case r < 0x80:
				b.WriteRune(r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				writeUTF16Escape(&b, hi)
				writeUTF16Escape(&b, lo)
			default:
				writeUTF16Escape(&b, r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeUTF16Escape(b *strings.Builder, r rune) {
	fmt.Fprintf(b, `\u%04X`, r)
}

// formatNumber renders f the way JavaScript's Number#toString does for the
// values that can appear in a literal type.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + string(sign) + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
