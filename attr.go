package sxmlc

import "strings"

// ParseAttribute decodes one 'name="value"' shaped fragment. The name ends
// at '=' or whitespace; a quoted value runs to the matching unescaped quote,
// an unquoted one to the next whitespace, '/' or '>'. The value is passed
// through Unescape before being returned.
//
// When a value opens with a quote but does not close with one, the decoded
// attribute is returned together with ErrQuoteMismatch.
func ParseAttribute(s string) (Attr, error) {
	var attr Attr

	n0 := 0
	for n0 < len(s) && s[n0] != '=' && !isSpace(s[n0]) {
		n0++
	}
	if n0 == 0 {
		return attr, ErrMalformedTag
	}
	n1 := n0
	for n1 < len(s) && isSpace(s[n1]) {
		n1++
	}
	if n1 >= len(s) || s[n1] != '=' {
		return attr, ErrMalformedTag
	}
	n1++
	for n1 < len(s) && isSpace(s[n1]) {
		n1++
	}

	attr.Name = s[:n0]
	attr.Active = true

	val := s[n1:]
	var mismatch bool
	if strings.HasPrefix(val, `"`) {
		val = val[1:]
		if strings.HasSuffix(val, `"`) && !strings.HasSuffix(val, `\"`) {
			val = val[:len(val)-1]
		} else {
			mismatch = true
		}
		val = strings.ReplaceAll(val, `\"`, `"`)
	}
	attr.Value = Unescape(val)

	if mismatch {
		return attr, ErrQuoteMismatch
	}
	return attr, nil
}
