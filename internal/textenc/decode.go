// Package textenc turns raw decision files into UTF-8 text.
package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var legacyCharsets = map[string]*charmap.Charmap{
	"latin-1":      charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"latin-2":      charmap.ISO8859_2,
	"windows-1250": charmap.Windows1250,
	"cp1250":       charmap.Windows1250,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

// Lookup resolves a legacy charset name. An empty name means latin-1.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "latin-1"
	}
	cm, ok := legacyCharsets[key]
	if !ok {
		return nil, fmt.Errorf("textenc: unsupported legacy encoding %q", name)
	}
	return cm, nil
}

// Decode strips a UTF-8 byte order mark and returns valid UTF-8 input unchanged.
// Anything else is decoded with the legacy charset.
func Decode(b []byte, legacy string) (string, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b), nil
	}

	enc, err := Lookup(legacy)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("textenc: decoding %s: %w", legacy, err)
	}
	return string(out), nil
}
