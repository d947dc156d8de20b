package classifier

// Fully-qualified names of the annotations the classifiers recognize.
const (
	// jMolecules DDD markers.
	AnnotationAggregateRoot = "org.jmolecules.ddd.annotation.AggregateRoot"
	AnnotationEntity        = "org.jmolecules.ddd.annotation.Entity"
	AnnotationValueObject   = "org.jmolecules.ddd.annotation.ValueObject"
	AnnotationIdentity      = "org.jmolecules.ddd.annotation.Identity"
	AnnotationAssociation   = "org.jmolecules.ddd.annotation.Association"

	// Persistence markers. The JPA entity markers are weak signals: alone they
	// say "persisted", not "root". The Mongo document marker implies root-level
	// persistence and counts as strong.
	AnnotationJavaxEntity   = "javax.persistence.Entity"
	AnnotationJakartaEntity = "jakarta.persistence.Entity"
	AnnotationMongoDocument = "org.springframework.data.mongodb.core.mapping.Document"
)

// strongAggregateAnnotations unambiguously mark a type as an aggregate root.
var strongAggregateAnnotations = []string{
	AnnotationAggregateRoot,
	AnnotationMongoDocument,
}

// weakEntityAnnotations mark a persisted entity without settling root status.
var weakEntityAnnotations = []string{
	AnnotationJavaxEntity,
	AnnotationJakartaEntity,
}
