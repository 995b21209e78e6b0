package pybindgen

import (
	"strings"
	"unicode"
)

// ExportedName returns an UpperCamelCase Python identifier for a WIT name,
// suitable for type, dataclass, and enum names.
//
// Grounded on the donor Go backend's wit/bindgen.ExportedName, adapted to
// escape identifiers that would otherwise begin with a digit rather than
// relying on Go's own identifier rules.
func ExportedName(name string) string {
	var b strings.Builder
	for _, word := range words(name) {
		if s, ok := commonWords[word]; ok {
			b.WriteString(s)
			continue
		}
		if initialisms[word] {
			b.WriteString(strings.ToUpper(word))
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return escapeLeadingDigit(b.String())
}

// FieldName returns a snake_case Python identifier for a WIT name,
// suitable for record fields, function and parameter names.
func FieldName(name string) string {
	return escapeLeadingDigit(strings.Join(words(name), "_"))
}

// ShoutyName returns a SHOUTY_SNAKE_CASE Python identifier for a WIT name,
// suitable for enum cases and flag names.
func ShoutyName(name string) string {
	ws := words(name)
	for i, w := range ws {
		ws[i] = strings.ToUpper(w)
	}
	return escapeLeadingDigit(strings.Join(ws, "_"))
}

// ModuleName returns a lowercase, underscore-joined Python module name for a
// WIT interface or world name.
func ModuleName(name string) string {
	return strings.Join(words(name), "_")
}

// escapeLeadingDigit prepends an underscore to name if it would otherwise
// begin with a digit, per spec.md's name-sanitizer escape rule.
func escapeLeadingDigit(name string) string {
	if name == "" {
		return name
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "_" + name
	}
	return name
}

func words(name string) []string {
	return strings.FieldsFunc(strings.ToLower(name), notLetterDigit)
}

func notLetterDigit(c rune) bool {
	return !unicode.IsLetter(c) && !unicode.IsDigit(c)
}

// commonWords maps common WASI/component-model words to opinionated,
// readable casings, mirroring the donor's CommonWords table.
var commonWords = map[string]string{
	"cabi":     "CABI",
	"datetime": "DateTime",
	"filesize": "FileSize",
	"ipv4":     "IPv4",
	"ipv6":     "IPv6",
}

// initialisms is a set of common initialisms kept fully upper-cased,
// mirroring the donor's internal/go/gen.Initialisms table.
var initialisms = mapWords(
	"abi", "acl", "api", "ascii", "cabi", "cpu", "css", "cwd", "dns", "eof",
	"fifo", "guid", "html", "http", "https", "id", "imap", "io", "ip", "js",
	"json", "lhs", "mime", "posix", "qps", "ram", "rhs", "rpc", "sla", "smtp",
	"sql", "ssh", "tcp", "tls", "ttl", "tty", "udp", "ui", "uid", "uuid",
	"uri", "url", "utf8", "vm", "xml", "xmpp", "xsrf", "xss",
)

func mapWords(ws ...string) map[string]bool {
	m := make(map[string]bool, len(ws))
	for _, w := range ws {
		m[w] = true
	}
	return m
}

// IsReservedPython returns true if name is a Python keyword or a builtin
// name that would shadow an intrinsic or runtime symbol if reused as a
// generated identifier.
func IsReservedPython(name string) bool {
	return pythonReserved[name]
}

// UniqueName appends underscores to name until it no longer collides with
// any filter, mirroring the donor's internal/go/gen.UniqueName.
func UniqueName(name string, taken func(string) bool) string {
	for taken(name) {
		name += "_"
	}
	return name
}

var pythonReserved = mapWords(
	// Keywords
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield", "match", "case",
	// Commonly-shadowed builtins relevant to generated code
	"int", "float", "str", "bool", "bytes", "list", "tuple", "dict", "set",
	"len", "type", "object", "self",
)
