package frontend

import (
	"fmt"

	"github.com/dshills/domainlens-mcp/internal/resolver"
	"github.com/dshills/domainlens-mcp/pkg/domain"
)

// Builder turns descriptors into domain models, resolving every type expression
// through the shared resolver.
type Builder struct {
	resolver *resolver.Resolver
}

// NewBuilder creates a builder with the default nullability policy.
func NewBuilder() *Builder {
	return &Builder{resolver: resolver.New()}
}

// Build converts a descriptor into a domain model and its ports. Property
// annotations double as use-site annotations for nullability resolution.
func (b *Builder) Build(desc *Descriptor) (*domain.Model, []domain.Port, error) {
	model := domain.NewModel()

	for _, td := range desc.Types {
		dt, err := domain.NewDomainType(td.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("type %s: %w", td.Name, err)
		}
		dt.Kind = kindNames[td.Kind]
		dt.Annotations = domain.NewAnnotationSet(td.Annotations...)

		for _, pd := range td.Properties {
			prop, err := b.buildProperty(td.Name, pd)
			if err != nil {
				return nil, nil, err
			}
			dt.Properties = append(dt.Properties, prop)
		}

		if err := model.AddType(dt); err != nil {
			return nil, nil, fmt.Errorf("type %s: %w", td.Name, err)
		}
	}

	ports, err := b.buildPorts(desc.Ports)
	if err != nil {
		return nil, nil, err
	}
	return model, ports, nil
}

func (b *Builder) buildProperty(owner string, pd PropertyDescriptor) (*domain.DomainProperty, error) {
	mirror, err := ParseTypeExpr(pd.Type)
	if err != nil {
		return nil, fmt.Errorf("property %s.%s: %w", owner, pd.Name, err)
	}
	annotations := domain.NewAnnotationSet(pd.Annotations...)
	mirror.Annotations = annotations

	return &domain.DomainProperty{
		Name:        pd.Name,
		Type:        b.resolver.Resolve(mirror),
		Annotations: annotations,
	}, nil
}

func (b *Builder) buildPorts(descs []PortDescriptor) ([]domain.Port, error) {
	ports := make([]domain.Port, 0, len(descs))
	for _, pd := range descs {
		port := domain.Port{Name: pd.Name, QualifiedName: pd.QualifiedName}
		for _, md := range pd.Methods {
			method, err := b.buildMethod(pd.Name, md)
			if err != nil {
				return nil, err
			}
			port.Methods = append(port.Methods, method)
		}
		ports = append(ports, port)
	}
	return ports, nil
}

func (b *Builder) buildMethod(port string, md MethodDescriptor) (domain.PortMethod, error) {
	method := domain.PortMethod{Name: md.Name}

	if md.Returns != "" && md.Returns != "void" {
		mirror, err := ParseTypeExpr(md.Returns)
		if err != nil {
			return domain.PortMethod{}, fmt.Errorf("port %s, method %s return: %w", port, md.Name, err)
		}
		method.Returns = b.resolver.Resolve(mirror)
	}

	for i, expr := range md.Parameters {
		mirror, err := ParseTypeExpr(expr)
		if err != nil {
			return domain.PortMethod{}, fmt.Errorf("port %s, method %s parameter %d: %w", port, md.Name, i, err)
		}
		method.Parameters = append(method.Parameters, b.resolver.Resolve(mirror))
	}
	return method, nil
}
