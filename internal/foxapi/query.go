package foxapi

import (
	"strings"
)

// param is one query parameter. Order is preserved on the wire.
type param struct {
	key   string
	value string
}

type params []param

func (p params) add(key, value string) params {
	return append(p, param{key: key, value: value})
}

// encode builds the query string the way the service's reference SDK does:
// each value is component-encoded, then the whole pair is query-encoded
// again. ASCII values are unchanged; non-ASCII text is percent-encoded twice.
func (p params) encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(queryEncode(kv.key))
		b.WriteByte('=')
		b.WriteString(queryEncode(componentEncode(kv.value)))
	}
	return b.String()
}

// get returns the first value for key.
func (p params) get(key string) (string, bool) {
	for _, kv := range p {
		if kv.key == key {
			return kv.value, true
		}
	}
	return "", false
}

const upperhex = "0123456789ABCDEF"

func isComponentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// componentEncode percent-encodes every byte outside the URI component
// unreserved set.
func componentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// queryEncode is componentEncode with a handful of characters restored and
// spaces written as '+'.
func queryEncode(s string) string {
	encoded := componentEncode(s)
	replacer := strings.NewReplacer(
		"%3A", ":",
		"%24", "$",
		"%2C", ",",
		"%20", "+",
		"%5B", "[",
		"%5D", "]",
	)
	return replacer.Replace(encoded)
}
