package view

import "strings"

// LineBreak replaces literal newlines in escaped text.
const LineBreak = "<br>"

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape neutralizes &, < and > and then turns newlines into LineBreak.
// Escaping runs first so the inserted break is never itself escaped and
// the ampersands it produces are never escaped twice.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(escaper.Replace(s), "\n", LineBreak)
}
