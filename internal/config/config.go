// Package config loads the optional analysis configuration: explicitly declared
// aggregate roots and per-property relationship overrides. Configured facts rank
// below explicit source annotations and above every heuristic during
// classification.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/domainlens-mcp/pkg/domain"
)

// RelationshipOverride declares the relationship of one property by hand.
type RelationshipOverride struct {
	Type           string `yaml:"type"`     // owning type, qualified name
	Property       string `yaml:"property"` // property name
	Kind           string `yaml:"kind"`     // one_to_one, one_to_many, many_to_one
	Target         string `yaml:"target"`   // target type, qualified name
	InterAggregate bool   `yaml:"interAggregate"`
}

// Config is the analysis configuration document.
type Config struct {
	// AggregateRoots lists qualified names of types declared as aggregate roots.
	AggregateRoots []string `yaml:"aggregateRoots"`
	// Relationships lists per-property relationship declarations.
	Relationships []RelationshipOverride `yaml:"relationships"`
}

var validKinds = map[string]domain.RelationshipKind{
	"one_to_one":  domain.RelationshipOneToOne,
	"one_to_many": domain.RelationshipOneToMany,
	"many_to_one": domain.RelationshipManyToOne,
}

// Parse unmarshals and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	for i, rel := range cfg.Relationships {
		if strings.TrimSpace(rel.Type) == "" || strings.TrimSpace(rel.Property) == "" {
			return nil, fmt.Errorf("relationship %d: type and property are required", i)
		}
		if _, ok := validKinds[rel.Kind]; !ok {
			return nil, fmt.Errorf("relationship %d: unknown kind %q", i, rel.Kind)
		}
	}

	return &cfg, nil
}

// LoadFromPath reads and parses a configuration file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// IsAggregateRoot reports whether the qualified name is declared as an aggregate
// root.
func (c *Config) IsAggregateRoot(qualifiedName string) bool {
	if c == nil {
		return false
	}
	for _, name := range c.AggregateRoots {
		if name == qualifiedName {
			return true
		}
	}
	return false
}

// RelationshipFor returns the declared override for a type/property pair, if any.
func (c *Config) RelationshipFor(typeName, property string) (*RelationshipOverride, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Relationships {
		rel := &c.Relationships[i]
		if rel.Type == typeName && rel.Property == property {
			return rel, true
		}
	}
	return nil, false
}

// Metadata converts an override into relationship metadata.
func (o *RelationshipOverride) Metadata() domain.RelationshipMetadata {
	return domain.RelationshipMetadata{
		Kind:                validKinds[o.Kind],
		TargetQualifiedName: o.Target,
		InterAggregate:      o.InterAggregate,
	}
}
