// Package sanitize turns foreign identifiers into valid target identifiers.
package sanitize

import (
	"strings"
	"unicode"
)

// RawPrefix marks a raw identifier that would otherwise be a keyword.
const RawPrefix = "r#"

// Name is a sanitized identifier. Original holds the foreign spelling when it
// differs from Ident, so the printer can route the binding to it.
type Name struct {
	Ident    string
	Original string
}

// Changed reports whether sanitizing altered the identifier.
func (n Name) Changed() bool {
	return n.Original != ""
}

// Bare returns the identifier without a raw prefix.
func (n Name) Bare() string {
	return strings.TrimPrefix(n.Ident, RawPrefix)
}

// reserved words that cannot even be raw identifiers get a suffix instead.
var unrawable = map[string]bool{
	"self":  true,
	"super": true,
	"crate": true,
	"Self":  true,
}

var keywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "else": true,
	"enum": true, "extern": true, "false": true, "fn": true, "for": true,
	"if": true, "impl": true, "in": true, "let": true, "loop": true,
	"match": true, "mod": true, "move": true, "mut": true, "pub": true,
	"ref": true, "return": true, "static": true, "struct": true, "trait": true,
	"true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true, "async": true, "await": true, "dyn": true, "abstract": true,
	"become": true, "box": true, "do": true, "final": true, "macro": true,
	"override": true, "priv": true, "typeof": true, "unsized": true,
	"virtual": true, "yield": true, "try": true,
}

// IsKeyword reports whether s is reserved in the target language.
func IsKeyword(s string) bool {
	return keywords[s] || unrawable[s]
}

// Ident maps a raw foreign identifier to a valid target identifier.
//
// Runs of capitals are folded to match the host binding crates, so
// "HTMLElement" becomes "HtmlElement" and "getID" becomes "getId"; names that
// are entirely upper case are kept. Characters that cannot appear in an
// identifier become underscores, and keywords become raw identifiers.
func Ident(raw string) Name {
	ident := convert(raw)
	if ident == raw {
		return Name{Ident: ident}
	}
	return Name{Ident: ident, Original: raw}
}

// Prefixed sanitizes prefix + Ident(raw), as used for accessor names such as
// get_foo. The original is always the unprefixed raw name.
func Prefixed(prefix, raw string) Name {
	inner := Ident(raw).Bare()
	return Name{Ident: convert(prefix + inner), Original: raw}
}

// Scope sanitizes a scope (module) name, which is never a raw identifier.
func Scope(raw string) string {
	s := fold(clean(raw))
	if IsKeyword(s) {
		return s + "_rs"
	}
	return s
}

func convert(raw string) string {
	if unrawable[raw] {
		return raw + "_rs"
	}
	s := fold(clean(raw))
	if unrawable[s] {
		return s + "_rs"
	}
	if keywords[s] {
		return RawPrefix + s
	}
	return s
}

func clean(raw string) string {
	var sb strings.Builder
	for i, r := range raw {
		switch {
		case r == '_' || unicode.IsLetter(r):
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	s := sb.String()
	if s == "" || s == "_" {
		return "_rs"
	}
	return s
}

// fold lowers an upper-case letter that follows an upper-case letter or digit
// and precedes another upper-case letter or the end of the name.
func fold(s string) string {
	runes := []rune(s)
	allUpper := true
	for _, r := range runes {
		if isASCIIAlpha(r) && !isASCIIUpper(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return s
	}

	out := make([]rune, len(runes))
	prevCap := false
	for i, r := range runes {
		nextUpperOrEnd := i+1 == len(runes) || isASCIIUpper(runes[i+1])
		if prevCap && nextUpperOrEnd {
			out[i] = unicode.ToLower(r)
		} else {
			out[i] = r
		}
		prevCap = isASCIIUpper(r) || (r >= '0' && r <= '9')
	}
	return string(out)
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
