package typeref

import "strings"

// TypeName is a validated dotted-or-simple type identifier.
type TypeName string

// NewTypeName validates and returns a TypeName. Blank names are rejected.
func NewTypeName(name string) (TypeName, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrBlankName
	}
	return TypeName(name), nil
}

// IsQualified reports whether the name carries a package qualifier.
func (n TypeName) IsQualified() bool {
	return strings.Contains(string(n), ".")
}

// Simple returns the last dot-separated segment of the name.
func (n TypeName) Simple() string {
	s := string(n)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Qualifier returns the package prefix of a qualified name, or "" for simple names.
func (n TypeName) Qualifier() string {
	s := string(n)
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return s[:idx]
	}
	return ""
}

func (n TypeName) String() string {
	return string(n)
}
