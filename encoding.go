package csfix

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

type textEncoding int

const (
	encUTF8 textEncoding = iota
	encUTF8BOM
	encUTF16LE
	encUTF16BE
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// docCodec remembers how a file was stored so the transformed document can be
// written back the same way. An untouched document re-encodes byte-for-byte,
// which is what keeps the change gate honest for BOM'd and CRLF files.
type docCodec struct {
	enc  textEncoding
	crlf bool
}

// decodeDocument sniffs the BOM and line endings and returns the document as
// newline-normalized UTF-8 text plus the codec needed to encode it back.
func decodeDocument(raw []byte) (string, docCodec, error) {
	c := docCodec{enc: detectEncoding(raw)}

	var text string
	switch c.enc {
	case encUTF8BOM:
		text = string(raw[len(utf8BOM):])
	case encUTF16LE, encUTF16BE:
		decoded, err := utf16Encoding(c.enc).NewDecoder().Bytes(raw)
		if err != nil {
			return "", c, fmt.Errorf("utf-16 decode: %w", err)
		}
		text = string(decoded)
	default:
		text = string(raw)
	}

	if strings.Contains(text, "\r\n") {
		c.crlf = true
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text, c, nil
}

func (c docCodec) encode(text string) ([]byte, error) {
	if c.crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}

	switch c.enc {
	case encUTF8BOM:
		return append(append(make([]byte, 0, len(utf8BOM)+len(text)), utf8BOM...), text...), nil
	case encUTF16LE, encUTF16BE:
		out, err := utf16Encoding(c.enc).NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("utf-16 encode: %w", err)
		}
		return out, nil
	default:
		return []byte(text), nil
	}
}

func detectEncoding(raw []byte) textEncoding {
	switch {
	case bytes.HasPrefix(raw, utf8BOM):
		return encUTF8BOM
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return encUTF16BE
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return encUTF16LE
	default:
		return encUTF8
	}
}

func utf16Encoding(enc textEncoding) encoding.Encoding {
	endian := unicode.LittleEndian
	if enc == encUTF16BE {
		endian = unicode.BigEndian
	}
	return unicode.UTF16(endian, unicode.UseBOM)
}
