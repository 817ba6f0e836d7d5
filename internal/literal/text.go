package literal

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Escape escapes s for the body of a double-quoted Ruby literal closed by
// delim. Ruby's String#inspect rules apply: `\n`-style escapes for the
// common control characters, `\uXXXX` for the rest, `\xNN` for invalid
// UTF-8, and `\#` where `#` would start an interpolation.
func Escape(s string, delim byte) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, `\x%02X`, s[i])
			i++
			continue
		}
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '\v':
			sb.WriteString(`\v`)
		case '\b':
			sb.WriteString(`\b`)
		case '\a':
			sb.WriteString(`\a`)
		case 0x1b:
			sb.WriteString(`\e`)
		case '#':
			if i+1 < len(s) && strings.IndexByte("{$@", s[i+1]) >= 0 {
				sb.WriteString(`\#`)
			} else {
				sb.WriteByte('#')
			}
		default:
			switch {
			case r < 0x80 && byte(r) == delim:
				sb.WriteByte('\\')
				sb.WriteByte(delim)
			case r < 0x20 || r == 0x7f:
				fmt.Fprintf(&sb, `\u%04X`, r)
			default:
				sb.WriteString(s[i : i+size])
			}
		}
		i += size
	}
	return sb.String()
}

// String returns s as a double-quoted literal.
func String(s string) string {
	return `"` + Escape(s, '"') + `"`
}

// IsBareSymbol reports whether :name lexes as a symbol without quotes.
func IsBareSymbol(name string) bool {
	return IsMethodName(name) || IsVariableName(name) || IsOperator(name)
}

// Symbol returns the symbol literal for name: `:foo`, `:[]=`, `:"A B"`.
func Symbol(name string) string {
	if IsBareSymbol(name) {
		return ":" + name
	}
	return ":" + String(name)
}

// Label returns the `name:` hash key form for a symbol key, if name
// allows it.
func Label(name string) (string, bool) {
	if !IsIdentifier(name) {
		return "", false
	}
	return name + ":", true
}

// Regexp option characters in canonical order: flags, then the encoding.
var (
	regexpFlags     = "imxo"
	regexpEncodings = "nesu"
)

// RegexpOptions returns the canonical flag suffix for regopt names.
// Unknown options are rejected.
func RegexpOptions(opts []string) (string, error) {
	var flags []byte
	encoding := byte(0)
	for _, o := range opts {
		if len(o) != 1 {
			return "", fmt.Errorf("unknown regexp option %q", o)
		}
		switch c := o[0]; {
		case strings.IndexByte(regexpFlags, c) >= 0:
			flags = append(flags, c)
		case strings.IndexByte(regexpEncodings, c) >= 0:
			encoding = c
		default:
			return "", fmt.Errorf("unknown regexp option %q", o)
		}
	}
	sort.Slice(flags, func(i, j int) bool {
		return strings.IndexByte(regexpFlags, flags[i]) < strings.IndexByte(regexpFlags, flags[j])
	})
	out := dedupe(flags)
	if encoding != 0 {
		out += string(encoding)
	}
	return out, nil
}

func dedupe(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 && b[i-1] == c {
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// RegexpDelimiters picks the delimiters for a regexp whose literal
// source parts are given: `/` unless a part holds an unescaped slash, in
// which case `%r{` `}` when the braces balance. The last result reports
// whether slashes must be escaped instead.
func RegexpDelimiters(parts []string) (open, close string, escapeSlash bool) {
	hasSlash := false
	depth := 0
	balanced := true
	for _, p := range parts {
		for i := 0; i < len(p); i++ {
			switch p[i] {
			case '\\':
				i++
			case '/':
				hasSlash = true
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					balanced = false
				}
			}
		}
	}
	if !hasSlash {
		return "/", "/", false
	}
	if balanced && depth == 0 {
		return "%r{", "}", false
	}
	return "/", "/", true
}

// RegexpBody returns a literal regexp source part, escaping unescaped
// slashes when escapeSlash is set. Backslash escapes are kept as written.
func RegexpBody(s string, escapeSlash bool) string {
	if !escapeSlash || !strings.Contains(s, "/") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
			if i+1 < len(s) {
				i++
				sb.WriteByte(s[i])
			}
		case '/':
			sb.WriteString(`\/`)
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
