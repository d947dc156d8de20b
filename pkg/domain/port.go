package domain

import "github.com/dshills/domainlens-mcp/pkg/typeref"

// PortMethod is a single method signature on a port: a return type (nil for void)
// and ordered parameter types.
type PortMethod struct {
	Name       string
	Returns    typeref.TypeRef
	Parameters []typeref.TypeRef
}

// Port describes a driven port (typically a repository interface) whose method
// signatures are inspected for repository-port detection.
type Port struct {
	Name          string
	QualifiedName string
	Methods       []PortMethod
}
