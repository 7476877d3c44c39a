package lexer

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadSource loads a program file. UTF-8 is assumed; a byte order mark
// switches decoding to UTF-16 LE/BE and is stripped either way.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source %s: %w", path, err)
	}
	return DecodeSource(data)
}

// DecodeSource applies the same decoding as ReadSource to in-memory bytes.
func DecodeSource(data []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decoding source: %w", err)
	}
	return string(decoded), nil
}
