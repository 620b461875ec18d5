// Name conversion from API identifiers to valid Go identifiers, including
// reserved word escaping and PascalCase conversion.

package generator

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// goReservedWords contains Go keywords that cannot be used as identifiers.
// Predeclared identifiers like "error" are deliberately absent: they can be
// shadowed and are common as type names.
var goReservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// titleCaser capitalizes the first letter of a word without lowering the
// rest, so camelCase identifiers keep their interior capitals.
var titleCaser = cases.Title(language.English, cases.NoLower)

// escapeReservedWord appends an underscore when a name collides with a Go
// keyword. Case-insensitive because PascalCase names like "Type" should
// still be escaped.
func escapeReservedWord(name string) string {
	if goReservedWords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// toTypeName converts an API name to a valid Go type name (PascalCase).
func toTypeName(s string) string {
	if s == "" {
		return "Type"
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, w := range words {
		b.WriteString(titleCaser.String(w))
	}
	name := b.String()
	if name == "" {
		return "Type"
	}

	// Ensure starts with a letter
	if !unicode.IsLetter(rune(name[0])) {
		name = "T" + name
	}
	return escapeReservedWord(name)
}

// toMethodName converts an operationId to a valid exported Go method name.
func toMethodName(s string) string {
	if s == "" {
		return "Call"
	}
	return toTypeName(s)
}

// toFieldName converts a property name to a valid Go field name.
func toFieldName(s string) string {
	return toTypeName(s)
}

// serviceFileName builds the generated file name for a controller,
// e.g. "TestController" -> "test_controller_service.go".
func serviceFileName(controller string) string {
	var b strings.Builder
	for i, r := range controller {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "default"
	}
	return name + "_service.go"
}
