package domain

// AnnotationIndex answers O(1) membership queries over a type's or property's
// annotation set by fully-qualified name. It is a narrow capability interface so
// the classification engine stays decoupled from how annotations are extracted
// from source.
type AnnotationIndex interface {
	// Has reports whether the fully-qualified annotation name is present.
	Has(name string) bool
	// HasAny reports whether any of the given names is present.
	HasAny(names ...string) bool
}

// AnnotationSet is a map-backed AnnotationIndex.
type AnnotationSet map[string]struct{}

// NewAnnotationSet builds an AnnotationSet from fully-qualified names.
func NewAnnotationSet(names ...string) AnnotationSet {
	set := make(AnnotationSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s AnnotationSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s AnnotationSet) HasAny(names ...string) bool {
	for _, name := range names {
		if s.Has(name) {
			return true
		}
	}
	return false
}

// Names returns the annotation names in unspecified order.
func (s AnnotationSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
