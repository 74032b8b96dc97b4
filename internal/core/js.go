package core

import (
	"bytes"
	"encoding/json"
)

// QuoteJS returns s as a double-quoted JavaScript string literal. JSON
// escaping also covers U+2028/U+2029 and "</script>" sequences.
func QuoteJS(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	_ = enc.Encode(s)
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
