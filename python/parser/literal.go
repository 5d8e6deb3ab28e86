package parser

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Bytes is the value of a bytes literal.
type Bytes string

// Ellipsis is the value of the "..." constant.
type Ellipsis struct{}

func (Ellipsis) String() string {
	return "Ellipsis"
}

// parseNumber decodes a numeric literal. It returns nil when the literal is
// malformed for the given version.
func parseNumber(lit string, v LanguageVersion) any {
	s := strings.ReplaceAll(lit, "_", "")
	lower := strings.ToLower(s)

	if strings.HasSuffix(lower, "j") {
		f, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return nil
		}
		return complex(0, f)
	}

	long := false
	if strings.HasSuffix(lower, "l") {
		if !FeatureLongIntegers.Enabled(v, 0) {
			return nil
		}
		long = true
		s = s[:len(s)-1]
		lower = lower[:len(lower)-1]
	}

	base := 10
	digits := s
	switch {
	case strings.HasPrefix(lower, "0x"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(lower, "0o"):
		base, digits = 8, s[2:]
	case strings.HasPrefix(lower, "0b"):
		base, digits = 2, s[2:]
	case len(s) > 1 && s[0] == '0' && isAllDigits(s):
		if strings.Trim(s, "0") != "" {
			if !FeatureOctalLegacy.Enabled(v, 0) {
				return nil
			}
			base, digits = 8, s[1:]
		}
	case strings.ContainsAny(lower, ".e"):
		if long {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
				return f
			}
			return nil
		}
		return f
	}

	if digits == "" {
		return nil
	}
	if !long {
		if n, err := strconv.ParseInt(digits, base, 64); err == nil {
			return n
		}
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil
	}
	return n
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// stringPrefix describes the letters in front of a string literal.
type stringPrefix struct {
	raw     bool
	bytes   bool
	unicode bool
}

func parseStringPrefix(p string) (stringPrefix, bool) {
	var sp stringPrefix
	for _, c := range strings.ToLower(p) {
		switch c {
		case 'r':
			if sp.raw {
				return sp, false
			}
			sp.raw = true
		case 'b':
			if sp.bytes || sp.unicode {
				return sp, false
			}
			sp.bytes = true
		case 'u':
			if sp.bytes || sp.unicode || sp.raw {
				return sp, false
			}
			sp.unicode = true
		default:
			return sp, false
		}
	}
	return sp, true
}

// decodeString interprets the escape sequences of a literal body. Unknown
// escapes are kept verbatim.
func decodeString(body string, sp stringPrefix, unicodeEscapes bool) string {
	if sp.raw || !strings.Contains(body, "\\") {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			i++
			continue
		}
		e := body[i+1]
		i += 2
		switch e {
		case '\n':
		case '\r':
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := int(e - '0')
			for k := 0; k < 2 && i < len(body) && body[i] >= '0' && body[i] <= '7'; k++ {
				n = n*8 + int(body[i]-'0')
				i++
			}
			writeCode(&b, n, sp.bytes)
		case 'x':
			if n, ok := hexValue(body, i, 2); ok {
				writeCode(&b, n, sp.bytes)
				i += 2
			} else {
				b.WriteString("\\x")
			}
		case 'u', 'U':
			width := 4
			if e == 'U' {
				width = 8
			}
			if !unicodeEscapes || sp.bytes {
				b.WriteByte('\\')
				b.WriteByte(e)
				continue
			}
			if n, ok := hexValue(body, i, width); ok && utf8.ValidRune(rune(n)) {
				b.WriteRune(rune(n))
				i += width
			} else {
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexValue(s string, at, width int) (int, bool) {
	if at+width > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[at:at+width], 16, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// literalBytes maps the decoded source text of a bytes literal back to one
// byte per character. ok is false when a character does not fit in a byte.
func literalBytes(body string) (string, bool) {
	var b strings.Builder
	b.Grow(len(body))
	ok := true
	for _, r := range body {
		if r > 0xFF {
			ok = false
			b.WriteRune(r)
			continue
		}
		b.WriteByte(byte(r))
	}
	return b.String(), ok
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func writeCode(b *strings.Builder, n int, raw bool) {
	if raw || n < utf8.RuneSelf {
		b.WriteByte(byte(n))
		return
	}
	b.WriteRune(rune(n))
}
