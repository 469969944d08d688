// This file handles non-ASCII config-string values. Grounded on
// repparser.cString/koreanString: try UTF-8 first, and when the bytes are
// not valid UTF-8, re-decode as EUC-KR rather than emit the replacement
// character (some Dm3-era servers put Latin-1/EUC-KR bytes into player-name
// and server-info cs values).
package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// decodeConfigStringValue returns raw unchanged if it is already valid
// UTF-8; otherwise it is re-decoded as EUC-KR.
func decodeConfigStringValue(raw string) string {
	if utf8.ValidString(raw) {
		return raw
	}
	decoded, _, err := transform.String(korean.EUCKR.NewDecoder(), raw)
	if err != nil {
		return raw
	}
	return strings.ReplaceAll(decoded, "�", "")
}
