package enricher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/domainlens-mcp/internal/storage"
	"github.com/dshills/domainlens-mcp/pkg/domain"
)

// PersistOptions identify the analysis row the results are stored under.
type PersistOptions struct {
	ModelName       string
	DescriptorPath  string
	AnalyzerVersion string
}

// Persist writes an enriched model and its report to storage in one
// transaction. Re-running an analysis replaces the previous results for the
// same model name.
func Persist(ctx context.Context, store storage.Storage, opts PersistOptions, model *domain.Model, report *Report) (*storage.Analysis, error) {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	analysis, err := tx.GetAnalysis(ctx, opts.ModelName)
	if errors.Is(err, storage.ErrNotFound) {
		analysis = &storage.Analysis{
			ModelName:       opts.ModelName,
			DescriptorPath:  opts.DescriptorPath,
			AnalyzerVersion: opts.AnalyzerVersion,
		}
		if err := tx.CreateAnalysis(ctx, analysis); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if err := tx.DeleteTypesByAnalysis(ctx, analysis.ID); err != nil {
		return nil, fmt.Errorf("clear previous types: %w", err)
	}
	if err := tx.DeleteDiagnosticsByAnalysis(ctx, analysis.ID); err != nil {
		return nil, fmt.Errorf("clear previous diagnostics: %w", err)
	}

	for _, t := range model.Types() {
		record := &storage.TypeRecord{
			AnalysisID:    analysis.ID,
			QualifiedName: t.QualifiedName,
			SimpleName:    t.SimpleName(),
			PackagePath:   t.PackagePath(),
			Kind:          string(t.Kind),
		}
		if ev, ok := report.AggregateEvidence[t.QualifiedName]; ok {
			record.EvidenceKind = string(ev.Kind())
			record.EvidenceDetail = ev.Detail()
		}
		if err := tx.UpsertType(ctx, record); err != nil {
			return nil, err
		}

		for _, prop := range t.Properties {
			propRecord := &storage.PropertyRecord{
				TypeID:       record.ID,
				Name:         prop.Name,
				RenderedType: prop.Type.Render(),
			}
			if prop.Relationship != nil {
				propRecord.RelationshipKind = string(prop.Relationship.Kind)
				propRecord.RelationshipTarget = prop.Relationship.TargetQualifiedName
				propRecord.InterAggregate = prop.Relationship.InterAggregate
			}
			if ev, ok := report.RelationshipEvidence[t.QualifiedName][prop.Name]; ok {
				propRecord.EvidenceSource = string(ev.Source())
				propRecord.EvidenceDetail = ev.Detail()
			}
			if err := tx.UpsertProperty(ctx, propRecord); err != nil {
				return nil, err
			}
		}
	}

	for _, d := range report.Diagnostics {
		record := &storage.DiagnosticRecord{
			AnalysisID: analysis.ID,
			Code:       d.Code,
			Severity:   string(d.Severity),
			Message:    d.Message,
			OwnerType:  d.OwnerType,
			Property:   d.Property,
			TargetType: d.TargetType,
		}
		if err := tx.InsertDiagnostic(ctx, record); err != nil {
			return nil, err
		}
	}

	analysis.DescriptorPath = opts.DescriptorPath
	analysis.AnalyzerVersion = opts.AnalyzerVersion
	analysis.TypesCount = report.Stats.TypesExamined
	analysis.AggregateCount = report.Stats.AggregateRoots
	analysis.RelationshipCount = report.Stats.Relationships
	analysis.DiagnosticCount = report.Stats.Diagnostics
	analysis.DurationMS = report.Stats.Duration.Milliseconds()
	analysis.LastAnalyzedAt = time.Now()
	if err := tx.UpdateAnalysis(ctx, analysis); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit analysis: %w", err)
	}
	return analysis, nil
}
