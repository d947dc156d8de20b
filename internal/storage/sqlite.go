package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTx) querier() querier {
	return t.tx
}

func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Analysis operations

func (s *SQLiteStorage) createAnalysisWithQuerier(ctx context.Context, q querier, analysis *Analysis) error {
	query := `
		INSERT INTO analyses (model_name, descriptor_path, analyzer_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		analysis.ModelName, analysis.DescriptorPath, analysis.AnalyzerVersion, now, now)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	analysis.ID = id
	analysis.CreatedAt = now
	analysis.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateAnalysis(ctx context.Context, analysis *Analysis) error {
	return s.createAnalysisWithQuerier(ctx, s.querier(), analysis)
}

const analysisColumns = `id, model_name, descriptor_path, analyzer_version,
		       types_count, aggregate_count, relationship_count, diagnostic_count,
		       duration_ms, last_analyzed_at, created_at, updated_at`

func scanAnalysis(row *sql.Row) (*Analysis, error) {
	var analysis Analysis
	var descriptorPath sql.NullString
	var lastAnalyzedAt sql.NullTime
	err := row.Scan(
		&analysis.ID, &analysis.ModelName, &descriptorPath, &analysis.AnalyzerVersion,
		&analysis.TypesCount, &analysis.AggregateCount, &analysis.RelationshipCount,
		&analysis.DiagnosticCount, &analysis.DurationMS, &lastAnalyzedAt,
		&analysis.CreatedAt, &analysis.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if descriptorPath.Valid {
		analysis.DescriptorPath = descriptorPath.String
	}
	if lastAnalyzedAt.Valid {
		analysis.LastAnalyzedAt = lastAnalyzedAt.Time
	}
	return &analysis, nil
}

func (s *SQLiteStorage) getAnalysisWithQuerier(ctx context.Context, q querier, modelName string) (*Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE model_name = ?`
	return scanAnalysis(q.QueryRowContext(ctx, query, modelName))
}

func (s *SQLiteStorage) GetAnalysis(ctx context.Context, modelName string) (*Analysis, error) {
	return s.getAnalysisWithQuerier(ctx, s.querier(), modelName)
}

func (s *SQLiteStorage) getAnalysisByIDWithQuerier(ctx context.Context, q querier, analysisID int64) (*Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = ?`
	return scanAnalysis(q.QueryRowContext(ctx, query, analysisID))
}

func (s *SQLiteStorage) GetAnalysisByID(ctx context.Context, analysisID int64) (*Analysis, error) {
	return s.getAnalysisByIDWithQuerier(ctx, s.querier(), analysisID)
}

func (s *SQLiteStorage) updateAnalysisWithQuerier(ctx context.Context, q querier, analysis *Analysis) error {
	query := `
		UPDATE analyses
		SET descriptor_path = ?, analyzer_version = ?, types_count = ?, aggregate_count = ?,
		    relationship_count = ?, diagnostic_count = ?, duration_ms = ?,
		    last_analyzed_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		analysis.DescriptorPath, analysis.AnalyzerVersion, analysis.TypesCount,
		analysis.AggregateCount, analysis.RelationshipCount, analysis.DiagnosticCount,
		analysis.DurationMS, analysis.LastAnalyzedAt, now, analysis.ID)
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	analysis.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateAnalysis(ctx context.Context, analysis *Analysis) error {
	return s.updateAnalysisWithQuerier(ctx, s.querier(), analysis)
}

// Type operations

func (s *SQLiteStorage) upsertTypeWithQuerier(ctx context.Context, q querier, record *TypeRecord) error {
	query := `
		INSERT INTO domain_types (analysis_id, qualified_name, simple_name, package_path, kind, evidence_kind, evidence_detail, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(analysis_id, qualified_name) DO UPDATE SET
			simple_name = excluded.simple_name,
			package_path = excluded.package_path,
			kind = excluded.kind,
			evidence_kind = excluded.evidence_kind,
			evidence_detail = excluded.evidence_detail,
			updated_at = excluded.updated_at
		RETURNING id
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		record.AnalysisID, record.QualifiedName, record.SimpleName, record.PackagePath,
		record.Kind, record.EvidenceKind, record.EvidenceDetail, now, now).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert type: %w", err)
	}
	record.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertType(ctx context.Context, record *TypeRecord) error {
	return s.upsertTypeWithQuerier(ctx, s.querier(), record)
}

const typeColumns = `id, analysis_id, qualified_name, simple_name, package_path,
		       kind, evidence_kind, evidence_detail, created_at, updated_at`

func scanTypeRow(scan func(dest ...interface{}) error) (*TypeRecord, error) {
	var record TypeRecord
	var packagePath, evidenceKind, evidenceDetail sql.NullString
	err := scan(
		&record.ID, &record.AnalysisID, &record.QualifiedName, &record.SimpleName,
		&packagePath, &record.Kind, &evidenceKind, &evidenceDetail,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.PackagePath = packagePath.String
	record.EvidenceKind = evidenceKind.String
	record.EvidenceDetail = evidenceDetail.String
	return &record, nil
}

func (s *SQLiteStorage) getTypeWithQuerier(ctx context.Context, q querier, analysisID int64, qualifiedName string) (*TypeRecord, error) {
	query := `SELECT ` + typeColumns + ` FROM domain_types WHERE analysis_id = ? AND qualified_name = ?`
	record, err := scanTypeRow(q.QueryRowContext(ctx, query, analysisID, qualifiedName).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SQLiteStorage) GetType(ctx context.Context, analysisID int64, qualifiedName string) (*TypeRecord, error) {
	return s.getTypeWithQuerier(ctx, s.querier(), analysisID, qualifiedName)
}

func (s *SQLiteStorage) listTypesWithQuerier(ctx context.Context, q querier, analysisID int64) ([]*TypeRecord, error) {
	query := `SELECT ` + typeColumns + ` FROM domain_types WHERE analysis_id = ? ORDER BY qualified_name`
	rows, err := q.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]*TypeRecord, 0)
	for rows.Next() {
		record, err := scanTypeRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) ListTypes(ctx context.Context, analysisID int64) ([]*TypeRecord, error) {
	return s.listTypesWithQuerier(ctx, s.querier(), analysisID)
}

func (s *SQLiteStorage) searchTypesWithQuerier(ctx context.Context, q querier, analysisID int64, query string, limit int) ([]*TypeRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	sqlQuery := `
		SELECT ` + typeColumns + `
		FROM domain_types
		WHERE analysis_id = ? AND id IN (
			SELECT rowid FROM domain_types_fts WHERE domain_types_fts MATCH ?
			ORDER BY bm25(domain_types_fts)
		)
		LIMIT ?
	`
	rows, err := q.QueryContext(ctx, sqlQuery, analysisID, ftsQuote(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*TypeRecord, 0)
	for rows.Next() {
		record, err := scanTypeRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) SearchTypes(ctx context.Context, analysisID int64, query string, limit int) ([]*TypeRecord, error) {
	return s.searchTypesWithQuerier(ctx, s.querier(), analysisID, query, limit)
}

// ftsQuote wraps each term in double quotes so dotted names do not trip the
// FTS5 query syntax.
func ftsQuote(query string) string {
	terms := strings.Fields(query)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}

func (s *SQLiteStorage) deleteTypesByAnalysisWithQuerier(ctx context.Context, q querier, analysisID int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM domain_types WHERE analysis_id = ?`, analysisID)
	return err
}

func (s *SQLiteStorage) DeleteTypesByAnalysis(ctx context.Context, analysisID int64) error {
	return s.deleteTypesByAnalysisWithQuerier(ctx, s.querier(), analysisID)
}

// Property operations

func (s *SQLiteStorage) upsertPropertyWithQuerier(ctx context.Context, q querier, record *PropertyRecord) error {
	query := `
		INSERT INTO properties (type_id, name, rendered_type, relationship_kind, relationship_target, inter_aggregate, evidence_source, evidence_detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(type_id, name) DO UPDATE SET
			rendered_type = excluded.rendered_type,
			relationship_kind = excluded.relationship_kind,
			relationship_target = excluded.relationship_target,
			inter_aggregate = excluded.inter_aggregate,
			evidence_source = excluded.evidence_source,
			evidence_detail = excluded.evidence_detail
		RETURNING id
	`
	err := q.QueryRowContext(ctx, query,
		record.TypeID, record.Name, record.RenderedType,
		record.RelationshipKind, record.RelationshipTarget, record.InterAggregate,
		record.EvidenceSource, record.EvidenceDetail, time.Now()).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert property: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertProperty(ctx context.Context, record *PropertyRecord) error {
	return s.upsertPropertyWithQuerier(ctx, s.querier(), record)
}

func (s *SQLiteStorage) listPropertiesByTypeWithQuerier(ctx context.Context, q querier, typeID int64) ([]*PropertyRecord, error) {
	query := `
		SELECT id, type_id, name, rendered_type, relationship_kind, relationship_target,
		       inter_aggregate, evidence_source, evidence_detail, created_at
		FROM properties
		WHERE type_id = ?
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, typeID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]*PropertyRecord, 0)
	for rows.Next() {
		var record PropertyRecord
		var kind, target, source, detail sql.NullString
		err := rows.Scan(
			&record.ID, &record.TypeID, &record.Name, &record.RenderedType,
			&kind, &target, &record.InterAggregate, &source, &detail,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		record.RelationshipKind = kind.String
		record.RelationshipTarget = target.String
		record.EvidenceSource = source.String
		record.EvidenceDetail = detail.String
		records = append(records, &record)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) ListPropertiesByType(ctx context.Context, typeID int64) ([]*PropertyRecord, error) {
	return s.listPropertiesByTypeWithQuerier(ctx, s.querier(), typeID)
}

// Diagnostic operations

func (s *SQLiteStorage) insertDiagnosticWithQuerier(ctx context.Context, q querier, record *DiagnosticRecord) error {
	query := `
		INSERT INTO diagnostics (analysis_id, code, severity, message, owner_type, property, target_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		record.AnalysisID, record.Code, record.Severity, record.Message,
		record.OwnerType, record.Property, record.TargetType, now)
	if err != nil {
		return fmt.Errorf("failed to insert diagnostic: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	record.ID = id
	record.CreatedAt = now
	return nil
}

func (s *SQLiteStorage) InsertDiagnostic(ctx context.Context, record *DiagnosticRecord) error {
	return s.insertDiagnosticWithQuerier(ctx, s.querier(), record)
}

func (s *SQLiteStorage) listDiagnosticsWithQuerier(ctx context.Context, q querier, analysisID int64) ([]*DiagnosticRecord, error) {
	query := `
		SELECT id, analysis_id, code, severity, message, owner_type, property, target_type, created_at
		FROM diagnostics
		WHERE analysis_id = ?
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, analysisID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := make([]*DiagnosticRecord, 0)
	for rows.Next() {
		var record DiagnosticRecord
		var ownerType, property, targetType sql.NullString
		err := rows.Scan(
			&record.ID, &record.AnalysisID, &record.Code, &record.Severity,
			&record.Message, &ownerType, &property, &targetType, &record.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		record.OwnerType = ownerType.String
		record.Property = property.String
		record.TargetType = targetType.String
		records = append(records, &record)
	}
	return records, rows.Err()
}

func (s *SQLiteStorage) ListDiagnostics(ctx context.Context, analysisID int64) ([]*DiagnosticRecord, error) {
	return s.listDiagnosticsWithQuerier(ctx, s.querier(), analysisID)
}

func (s *SQLiteStorage) deleteDiagnosticsByAnalysisWithQuerier(ctx context.Context, q querier, analysisID int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM diagnostics WHERE analysis_id = ?`, analysisID)
	return err
}

func (s *SQLiteStorage) DeleteDiagnosticsByAnalysis(ctx context.Context, analysisID int64) error {
	return s.deleteDiagnosticsByAnalysisWithQuerier(ctx, s.querier(), analysisID)
}

// Status operations

func (s *SQLiteStorage) GetStatus(ctx context.Context, analysisID int64) (*AnalysisStatus, error) {
	analysis, err := s.GetAnalysisByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	status := &AnalysisStatus{Analysis: analysis}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM domain_types WHERE analysis_id = ?", analysisID).Scan(&status.TypesCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM properties p
		JOIN domain_types t ON p.type_id = t.id
		WHERE t.analysis_id = ?
	`, analysisID).Scan(&status.PropertiesCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM properties p
		JOIN domain_types t ON p.type_id = t.id
		WHERE t.analysis_id = ? AND p.relationship_kind IS NOT NULL AND p.relationship_kind != ''
	`, analysisID).Scan(&status.RelationshipsCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM diagnostics WHERE analysis_id = ?", analysisID).Scan(&status.DiagnosticsCount)
	if err != nil {
		return nil, err
	}

	var pageCount, pageSize int
	err = s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		_ = s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.DatabaseSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	status.Health = HealthStatus{
		DatabaseAccessible: true,
		FTSIndexesBuilt:    true, // FTS indexes are created with migrations
	}

	return status, nil
}

// Transaction implementations delegate to the internal querier helpers.

func (t *sqliteTx) CreateAnalysis(ctx context.Context, analysis *Analysis) error {
	return t.storage.createAnalysisWithQuerier(ctx, t.querier(), analysis)
}

func (t *sqliteTx) GetAnalysis(ctx context.Context, modelName string) (*Analysis, error) {
	return t.storage.getAnalysisWithQuerier(ctx, t.querier(), modelName)
}

func (t *sqliteTx) GetAnalysisByID(ctx context.Context, analysisID int64) (*Analysis, error) {
	return t.storage.getAnalysisByIDWithQuerier(ctx, t.querier(), analysisID)
}

func (t *sqliteTx) UpdateAnalysis(ctx context.Context, analysis *Analysis) error {
	return t.storage.updateAnalysisWithQuerier(ctx, t.querier(), analysis)
}

func (t *sqliteTx) UpsertType(ctx context.Context, record *TypeRecord) error {
	return t.storage.upsertTypeWithQuerier(ctx, t.querier(), record)
}

func (t *sqliteTx) GetType(ctx context.Context, analysisID int64, qualifiedName string) (*TypeRecord, error) {
	return t.storage.getTypeWithQuerier(ctx, t.querier(), analysisID, qualifiedName)
}

func (t *sqliteTx) ListTypes(ctx context.Context, analysisID int64) ([]*TypeRecord, error) {
	return t.storage.listTypesWithQuerier(ctx, t.querier(), analysisID)
}

func (t *sqliteTx) SearchTypes(ctx context.Context, analysisID int64, query string, limit int) ([]*TypeRecord, error) {
	return t.storage.searchTypesWithQuerier(ctx, t.querier(), analysisID, query, limit)
}

func (t *sqliteTx) DeleteTypesByAnalysis(ctx context.Context, analysisID int64) error {
	return t.storage.deleteTypesByAnalysisWithQuerier(ctx, t.querier(), analysisID)
}

func (t *sqliteTx) UpsertProperty(ctx context.Context, record *PropertyRecord) error {
	return t.storage.upsertPropertyWithQuerier(ctx, t.querier(), record)
}

func (t *sqliteTx) ListPropertiesByType(ctx context.Context, typeID int64) ([]*PropertyRecord, error) {
	return t.storage.listPropertiesByTypeWithQuerier(ctx, t.querier(), typeID)
}

func (t *sqliteTx) InsertDiagnostic(ctx context.Context, record *DiagnosticRecord) error {
	return t.storage.insertDiagnosticWithQuerier(ctx, t.querier(), record)
}

func (t *sqliteTx) ListDiagnostics(ctx context.Context, analysisID int64) ([]*DiagnosticRecord, error) {
	return t.storage.listDiagnosticsWithQuerier(ctx, t.querier(), analysisID)
}

func (t *sqliteTx) DeleteDiagnosticsByAnalysis(ctx context.Context, analysisID int64) error {
	return t.storage.deleteDiagnosticsByAnalysisWithQuerier(ctx, t.querier(), analysisID)
}

func (t *sqliteTx) GetStatus(ctx context.Context, analysisID int64) (*AnalysisStatus, error) {
	return t.storage.GetStatus(ctx, analysisID)
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}
