package sxmlc

import "strings"

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var unescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// Escape replaces the five standard XML entities in s.
func Escape(s string) string { return escaper.Replace(s) }

// Unescape is the inverse of Escape.
func Unescape(s string) string { return unescaper.Replace(s) }
