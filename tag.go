package sxmlc

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// TagKind identifies what a classified tag token denotes.
type TagKind int

const (
	TagNone    TagKind = iota // zero value, not a valid classification
	TagFather                 // <name ...>, an element that may own children
	TagSelf                   // <name .../>, a self-closing element
	TagEnd                    // </name>
	TagInstr                  // <? ... ?>
	TagComment                // <!-- ... -->
	TagCData                  // <![CDATA[ ... ]]/>
	TagDoctype                // <!DOCTYPE ... >
)

// TagUser is the first kind available to RegisterUserTag. Kinds below it are
// reserved.
const TagUser TagKind = 100

// specialTag is a (start-delimiter, end-delimiter) pair whose payload is
// stored verbatim in the node's Tag field.
type specialTag struct {
	kind  TagKind
	start string
	end   string
}

var builtinTags = [...]specialTag{
	{TagInstr, "<?", "?>"},
	{TagComment, "<!--", "-->"},
	{TagCData, "<![CDATA[", "]]/>"},
}

// User-registered tags. Registration is guarded; classification and printing
// only read.
var userTags struct {
	sync.RWMutex
	tags []specialTag
}

// RegisterUserTag appends a delimiter pair to the process-wide registry so
// that tags shaped "start...end" classify as kind. The kind must be at least
// TagUser, start must begin with '<' and end must finish with '>'.
func RegisterUserTag(kind TagKind, start, end string) error {
	if kind < TagUser {
		return fmt.Errorf("user tag kind %d is below the reserved threshold %d", kind, TagUser)
	}
	if !strings.HasPrefix(start, "<") || !strings.HasSuffix(end, ">") {
		return fmt.Errorf("user tag delimiters %q %q must be shaped \"<...>\"", start, end)
	}
	userTags.Lock()
	defer userTags.Unlock()
	userTags.tags = append(userTags.tags, specialTag{kind, start, end})
	return nil
}

func userTagDelims(kind TagKind) (specialTag, bool) {
	userTags.RLock()
	defer userTags.RUnlock()
	for _, t := range userTags.tags {
		if t.kind == kind {
			return t, true
		}
	}
	return specialTag{}, false
}

// matchSpecial tries one delimiter pair against s. It returns TagNone when
// the start delimiter does not match, and errPartialTag when the start
// matches but the end delimiter is not at the tail (the tag likely contains
// a literal '>' and needs more input).
func matchSpecial(s string, t specialTag, node *Node) (TagKind, error) {
	if !strings.HasPrefix(s, t.start) {
		return TagNone, nil
	}
	if len(s) < len(t.start)+len(t.end) || !strings.HasSuffix(s, t.end) {
		return TagNone, errPartialTag
	}
	node.Tag = s[len(t.start) : len(s)-len(t.end)]
	node.Kind = t.kind
	return t.kind, nil
}

// classifyTag reads one tag token like '<tag (attr="value")* [/]>', '</tag>'
// or any registered special form, and fills node with the result. Partial
// special tags report errPartialTag so the caller can append more input and
// retry.
func classifyTag(s string, node *Node) (TagKind, error) {
	if len(s) < 2 || s[0] != '<' || s[len(s)-1] != '>' {
		return TagNone, ErrMalformedTag
	}

	for _, t := range builtinTags {
		kind, err := matchSpecial(s, t, node)
		if err != nil {
			return TagNone, err
		}
		if kind != TagNone {
			return kind, nil
		}
	}

	// "<!DOCTYPE" ends with "]>" instead of ">" when a '[' opens an internal
	// subset inside it.
	if strings.HasPrefix(s, "<!DOCTYPE") {
		body := s[len("<!DOCTYPE") : len(s)-1]
		if strings.IndexByte(body, '[') >= 0 {
			if !strings.HasSuffix(s, "]>") {
				return TagNone, errPartialTag
			}
			body = body[:len(body)-1]
		}
		node.Tag = body
		node.Kind = TagDoctype
		return TagDoctype, nil
	}

	userTags.RLock()
	tags := userTags.tags
	userTags.RUnlock()
	for _, t := range tags {
		kind, err := matchSpecial(s, t, node)
		if err != nil {
			return TagNone, err
		}
		if kind != TagNone {
			return kind, nil
		}
	}

	return classifyElement(s, node)
}

// classifyElement handles the generic element grammar: '</name>',
// '<name ... />' and '<name ...>'.
func classifyElement(s string, node *Node) (TagKind, error) {
	end := 0
	if s[1] == '/' {
		end = 1
	}

	// The name stops at the first whitespace, '/' or '>'.
	n := 1 + end
	for n < len(s) && s[n] != '>' && s[n] != '/' && !isSpace(s[n]) {
		n++
	}
	if n == 1+end {
		return TagNone, ErrMalformedTag
	}
	node.Tag = s[1+end : n]
	if end == 1 {
		node.Kind = TagEnd
		return TagEnd, nil
	}

	for n < len(s) {
		for n < len(s) && isSpace(s[n]) {
			n++
		}
		if s[n] == '>' {
			node.Kind = TagFather
			return TagFather, nil
		}
		if s[n:] == "/>" {
			node.Kind = TagSelf
			return TagSelf, nil
		}

		// Attribute fragment: find where its value stops so the fragment can
		// be handed to ParseAttribute. A backslash-escaped quote does not
		// terminate a quoted value.
		eq := strings.IndexByte(s[n:], '=')
		if eq < 0 {
			return TagNone, ErrMalformedTag
		}
		p := n + eq + 1
		for p < len(s) && isSpace(s[p]) {
			p++
		}
		var nn int
		if p < len(s) && s[p] == '"' {
			nn = p + 1
			for nn < len(s) && s[nn] != '"' {
				if s[nn] == '\\' {
					nn++
				}
				nn++
			}
			nn++
		} else {
			nn = p
			for nn < len(s) && !isSpace(s[nn]) && s[nn] != '/' && s[nn] != '>' {
				nn++
			}
		}
		if nn > len(s) {
			nn = len(s)
		}

		attr, err := ParseAttribute(s[n:nn])
		if err != nil && !errors.Is(err, ErrQuoteMismatch) {
			return TagNone, err
		}
		node.Attrs = append(node.Attrs, attr)
		n = nn
	}

	// Ran past the closing '>' without finding the element end.
	return TagNone, ErrMalformedTag
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
