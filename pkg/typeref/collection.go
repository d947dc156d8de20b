package typeref

// CollectionKind names the recognized collection families.
type CollectionKind string

const (
	CollectionKindList       CollectionKind = "list"
	CollectionKindSet        CollectionKind = "set"
	CollectionKindCollection CollectionKind = "collection"
	CollectionKindMap        CollectionKind = "map"
)

// collectionKinds maps recognized java.util qualified names to their kind.
var collectionKinds = map[TypeName]CollectionKind{
	"java.util.List":          CollectionKindList,
	"java.util.ArrayList":     CollectionKindList,
	"java.util.LinkedList":    CollectionKindList,
	"java.util.Set":           CollectionKindSet,
	"java.util.HashSet":       CollectionKindSet,
	"java.util.LinkedHashSet": CollectionKindSet,
	"java.util.TreeSet":       CollectionKindSet,
	"java.util.Collection":    CollectionKindCollection,
	"java.util.Map":           CollectionKindMap,
	"java.util.HashMap":       CollectionKindMap,
	"java.util.LinkedHashMap": CollectionKindMap,
	"java.util.TreeMap":       CollectionKindMap,
}

// CollectionMetadata describes a parameterized collection reference. It is derived
// on demand and never stored on the ref itself.
type CollectionMetadata struct {
	Kind    CollectionKind
	Element TypeRef // element type for list/set/collection kinds
	Key     TypeRef // key type for map kinds
	Value   TypeRef // value type for map kinds
}

// IsCollectionName reports whether name is a recognized collection or map
// qualified name.
func IsCollectionName(name TypeName) bool {
	_, ok := collectionKinds[name]
	return ok
}

// IsCollection reports whether t is a declared reference (raw or parameterized) to
// a recognized collection or map type.
func IsCollection(t TypeRef) bool {
	name, ok := DeclaredName(t)
	return ok && IsCollectionName(name)
}

// CollectionOf derives collection metadata from a parameterized collection ref.
// A raw (unparameterized) collection yields no metadata, as does a map reference
// with fewer than two type arguments or an element collection with none.
func CollectionOf(t TypeRef) (CollectionMetadata, bool) {
	p, ok := t.(Parameterized)
	if !ok {
		return CollectionMetadata{}, false
	}
	kind, ok := collectionKinds[p.raw.name]
	if !ok {
		return CollectionMetadata{}, false
	}

	args := p.TypeArguments()
	if kind == CollectionKindMap {
		if len(args) < 2 {
			return CollectionMetadata{}, false
		}
		return CollectionMetadata{Kind: kind, Key: args[0], Value: args[1]}, true
	}
	if len(args) < 1 {
		return CollectionMetadata{}, false
	}
	return CollectionMetadata{Kind: kind, Element: args[0]}, true
}
