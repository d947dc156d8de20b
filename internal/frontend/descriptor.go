package frontend

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/domainlens-mcp/pkg/domain"
)

// Descriptor load errors.
var (
	ErrNoTypes     = errors.New("descriptor declares no types")
	ErrUnknownKind = errors.New("unknown type kind")
)

// Descriptor is the YAML document exported by the extractor.
type Descriptor struct {
	Model ModelInfo        `yaml:"model"`
	Types []TypeDescriptor `yaml:"types"`
	Ports []PortDescriptor `yaml:"ports"`
}

// ModelInfo names the analyzed model.
type ModelInfo struct {
	Name string `yaml:"name"`
}

// TypeDescriptor is one domain type as exported.
type TypeDescriptor struct {
	Name        string               `yaml:"name"` // qualified name
	Kind        string               `yaml:"kind"` // optional pre-classification
	Annotations []string             `yaml:"annotations"`
	Properties  []PropertyDescriptor `yaml:"properties"`
}

// PropertyDescriptor is one property with its type expression.
type PropertyDescriptor struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"` // source-level type expression
	Annotations []string `yaml:"annotations"`
}

// PortDescriptor is one driven port with its method signatures.
type PortDescriptor struct {
	Name          string             `yaml:"name"`
	QualifiedName string             `yaml:"qualifiedName"`
	Methods       []MethodDescriptor `yaml:"methods"`
}

// MethodDescriptor is one port method signature. An empty or "void" return
// stands for no return value.
type MethodDescriptor struct {
	Name       string   `yaml:"name"`
	Returns    string   `yaml:"returns"`
	Parameters []string `yaml:"parameters"`
}

var kindNames = map[string]domain.TypeKind{
	"":               domain.TypeKindUnspecified,
	"unspecified":    domain.TypeKindUnspecified,
	"entity":         domain.TypeKindEntity,
	"aggregate_root": domain.TypeKindAggregateRoot,
	"value_object":   domain.TypeKindValueObject,
	"identifier":     domain.TypeKindIdentifier,
}

// ParseDescriptor unmarshals and validates a descriptor document.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	if len(desc.Types) == 0 {
		return nil, ErrNoTypes
	}
	for _, td := range desc.Types {
		if _, ok := kindNames[td.Kind]; !ok {
			return nil, fmt.Errorf("type %s: %w %q", td.Name, ErrUnknownKind, td.Kind)
		}
	}
	return &desc, nil
}

// LoadDescriptor reads and parses a descriptor file.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	return ParseDescriptor(data)
}
