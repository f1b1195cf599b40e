package asc

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrNotSchematic reports that the input does not look like an LTspice
// schematic: every .asc file starts with a "Version" header, so the first
// byte is 'V' in an 8-bit encoding or 'V' 0x00 in UTF-16LE.
var ErrNotSchematic = errors.New("asc: not an LTspice schematic")

// DecodeBytes sniffs the file encoding from the first two bytes, decodes
// the content to UTF-8 and normalizes the micro sign to a plain 'u' so
// values like "3µ" survive any later ASCII handling.
//
// Sniffing follows the upstream file format: 'V' 'e' means an 8-bit
// encoding (UTF-8 first, then Mac-Roman, then Windows-1250), 'V' 0x00 means
// UTF-16LE. Anything else is not a schematic.
func DecodeBytes(raw []byte) (string, error) {
	if len(raw) < 2 || raw[0] != 'V' {
		return "", ErrNotSchematic
	}

	var text string
	switch raw[1] {
	case 'e':
		text = decode8Bit(raw)
	case 0x00:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		decoded, err := decodeWith(dec, raw)
		if err != nil {
			return "", fmt.Errorf("asc: decode utf-16le: %w", err)
		}
		text = decoded
	default:
		return "", ErrNotSchematic
	}

	return normalizeMicro(text), nil
}

func decode8Bit(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	for _, cm := range []*charmap.Charmap{charmap.Macintosh, charmap.Windows1250} {
		if decoded, err := decodeWith(cm.NewDecoder(), raw); err == nil {
			return decoded
		}
	}
	// Unreachable in practice: the charmap decoders accept every byte.
	return string(raw)
}

func decodeWith(dec *encoding.Decoder, raw []byte) (string, error) {
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func normalizeMicro(s string) string {
	return strings.ReplaceAll(s, "µ", "u")
}
