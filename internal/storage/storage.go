package storage

import (
	"context"
	"time"
)

// Storage persists enrichment results: analyses, classified types, property
// relationships, and diagnostics.
type Storage interface {
	// Analysis operations
	CreateAnalysis(ctx context.Context, analysis *Analysis) error
	GetAnalysis(ctx context.Context, modelName string) (*Analysis, error)
	GetAnalysisByID(ctx context.Context, analysisID int64) (*Analysis, error)
	UpdateAnalysis(ctx context.Context, analysis *Analysis) error

	// Type operations
	UpsertType(ctx context.Context, record *TypeRecord) error
	GetType(ctx context.Context, analysisID int64, qualifiedName string) (*TypeRecord, error)
	ListTypes(ctx context.Context, analysisID int64) ([]*TypeRecord, error)
	SearchTypes(ctx context.Context, analysisID int64, query string, limit int) ([]*TypeRecord, error)
	DeleteTypesByAnalysis(ctx context.Context, analysisID int64) error

	// Property operations
	UpsertProperty(ctx context.Context, record *PropertyRecord) error
	ListPropertiesByType(ctx context.Context, typeID int64) ([]*PropertyRecord, error)

	// Diagnostic operations
	InsertDiagnostic(ctx context.Context, record *DiagnosticRecord) error
	ListDiagnostics(ctx context.Context, analysisID int64) ([]*DiagnosticRecord, error)
	DeleteDiagnosticsByAnalysis(ctx context.Context, analysisID int64) error

	// Status operations
	GetStatus(ctx context.Context, analysisID int64) (*AnalysisStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx is a transactional view of the storage.
type Tx interface {
	Commit() error
	Rollback() error
	Storage
}

// Analysis is one enrichment pass over a model descriptor.
type Analysis struct {
	ID                int64
	ModelName         string
	DescriptorPath    string
	AnalyzerVersion   string
	TypesCount        int
	AggregateCount    int
	RelationshipCount int
	DiagnosticCount   int
	DurationMS        int64
	LastAnalyzedAt    time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TypeRecord is a classified domain type.
type TypeRecord struct {
	ID             int64
	AnalysisID     int64
	QualifiedName  string
	SimpleName     string
	PackagePath    string
	Kind           string
	EvidenceKind   string
	EvidenceDetail string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PropertyRecord is a property with its classified relationship, if any. The
// relationship columns are empty when classification yielded no evidence.
type PropertyRecord struct {
	ID                 int64
	TypeID             int64
	Name               string
	RenderedType       string
	RelationshipKind   string
	RelationshipTarget string
	InterAggregate     bool
	EvidenceSource     string
	EvidenceDetail     string
	CreatedAt          time.Time
}

// DiagnosticRecord is a persisted modeling-violation warning.
type DiagnosticRecord struct {
	ID         int64
	AnalysisID int64
	Code       string
	Severity   string
	Message    string
	OwnerType  string
	Property   string
	TargetType string
	CreatedAt  time.Time
}

// AnalysisStatus summarizes one stored analysis.
type AnalysisStatus struct {
	Analysis           *Analysis
	TypesCount         int
	PropertiesCount    int
	RelationshipsCount int
	DiagnosticsCount   int
	DatabaseSizeMB     float64
	Health             HealthStatus
}

// HealthStatus reports on the database itself.
type HealthStatus struct {
	DatabaseAccessible bool
	FTSIndexesBuilt    bool
}
