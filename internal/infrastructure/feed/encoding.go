package feed

import (
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// fallbackEncodings is the ordered list tried when the declared charset is
// absent or wrong. Windows-1252 first: it is the most common mislabeling of
// West African news sites, and it decodes every byte sequence.
var fallbackEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// DecodeText converts raw feed bytes to a UTF-8 string. It tries the declared
// encoding, then the fallback list, then a lossy universal decode. It never
// fails on malformed bytes.
func DecodeText(raw []byte, declared string) string {
	if declared != "" {
		if enc, err := htmlindex.Get(declared); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(raw); err == nil && utf8.Valid(decoded) {
				return string(decoded)
			}
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	for _, enc := range fallbackEncodings {
		if decoded, err := enc.NewDecoder().Bytes(raw); err == nil && utf8.Valid(decoded) {
			return string(decoded)
		}
	}

	return strings.ToValidUTF8(string(raw), "�")
}

// charsetFromContentType extracts the charset parameter of a Content-Type
// header, if any.
func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		return params["charset"]
	}
	return ""
}
