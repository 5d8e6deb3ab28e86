package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var codingComment = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// Encoding describes how the source bytes were decoded.
type Encoding struct {
	// Name is the normalized codec name.
	Name string
	// BOM is set when the input started with a UTF-8 byte order mark.
	BOM bool
	// Declared is the name found in a coding comment, if any.
	Declared string
}

// DefaultEncoding is used when neither a BOM nor a coding comment is present.
// It maps every byte to the code point of the same value, so arbitrary bytes
// survive decoding.
const DefaultEncoding = "latin-1"

var encodingAliases = map[string]string{
	"utf-8":      "utf-8",
	"utf8":       "utf-8",
	"u8":         "utf-8",
	"utf":        "utf-8",
	"utf-8-sig":  "utf-8",
	"latin-1":    "latin-1",
	"latin1":     "latin-1",
	"latin":      "latin-1",
	"l1":         "latin-1",
	"iso-8859-1": "latin-1",
	"iso8859-1":  "latin-1",
	"8859":       "latin-1",
	"cp819":      "latin-1",
	"ascii":      "ascii",
	"us-ascii":   "ascii",
	"646":        "ascii",
}

// normalizeEncoding lowercases a codec name and folds the spellings of the
// common codecs together. emacs-style suffixes like "-unix" are dropped.
func normalizeEncoding(name string) string {
	n := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	for _, suffix := range []string{"-unix", "-dos", "-mac"} {
		n = strings.TrimSuffix(n, suffix)
	}
	if alias, ok := encodingAliases[n]; ok {
		return alias
	}
	for _, prefix := range []string{"utf-8-", "latin-1-", "iso-8859-1-"} {
		if strings.HasPrefix(n, prefix) {
			return encodingAliases[strings.TrimSuffix(prefix, "-")]
		}
	}
	return n
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case "utf-8":
		return unicode.UTF8, nil
	case "latin-1", "ascii":
		return charmap.ISO8859_1, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// declaredEncoding returns the codec named by a coding comment on one of the
// first two lines.
func declaredEncoding(data []byte) string {
	rest := data
	for line := 0; line < 2 && len(rest) > 0; line++ {
		end := bytes.IndexAny(rest, "\r\n")
		current := rest
		if end >= 0 {
			current = rest[:end]
			if rest[end] == '\r' && end+1 < len(rest) && rest[end+1] == '\n' {
				end++
			}
			rest = rest[end+1:]
		} else {
			rest = nil
		}
		if m := codingComment.FindSubmatch(current); m != nil {
			return string(m[1])
		}
		if trimmed := bytes.TrimLeft(current, " \t\f"); len(trimmed) > 0 && trimmed[0] != '#' {
			return ""
		}
	}
	return ""
}

// ResolveEncoding decides how to decode a source file and returns its text.
// Conflicts and unknown codecs are reported to sink as fatal diagnostics and
// decoding falls back to a safe codec.
func ResolveEncoding(data []byte, sink ErrorSink) (string, Encoding) {
	if sink == nil {
		sink = nullSink{}
	}
	var enc Encoding
	if bytes.HasPrefix(data, utf8BOM) {
		enc.BOM = true
		data = data[len(utf8BOM):]
	}
	enc.Declared = declaredEncoding(data)

	name := DefaultEncoding
	switch {
	case enc.BOM:
		name = "utf-8"
		if enc.Declared != "" && normalizeEncoding(enc.Declared) != "utf-8" {
			sink.Add("file has both Unicode marker and PEP-263 file encoding. You can only use \"utf-8\" as the encoding name when a BOM is present.",
				nil, 0, 0, SyntaxError|NoCaret, SeverityFatal)
		}
	case enc.Declared != "":
		name = normalizeEncoding(enc.Declared)
	}

	codec, err := lookupEncoding(name)
	if err != nil {
		sink.Add(fmt.Sprintf("unknown encoding: %s", enc.Declared), nil, 0, 0, SyntaxError|NoCaret, SeverityFatal)
		name = DefaultEncoding
		codec = charmap.ISO8859_1
	}
	enc.Name = name

	text, err := codec.NewDecoder().Bytes(data)
	if err != nil {
		// fall back to a byte-for-rune mapping so offsets stay usable
		text, _ = charmap.ISO8859_1.NewDecoder().Bytes(data)
		enc.Name = DefaultEncoding
	}
	return string(text), enc
}
