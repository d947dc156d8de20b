package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/domainlens-mcp/internal/config"
	"github.com/dshills/domainlens-mcp/internal/enricher"
	"github.com/dshills/domainlens-mcp/internal/frontend"
	"github.com/dshills/domainlens-mcp/internal/storage"
	"github.com/dshills/domainlens-mcp/pkg/domain"
)

// MCP error codes
const (
	ErrorCodeInvalidParams     = -32602 // Invalid method parameters
	ErrorCodeInternalError     = -32603 // Internal JSON-RPC error
	ErrorCodeModelNotAnalyzed  = -32001 // No stored analysis for the model name
	ErrorCodeTypeNotFound      = -32002 // Type not found in the analyzed model
	ErrorCodeDescriptorInvalid = -32003 // Descriptor failed to load or parse
)

// handleAnalyzeModel handles the analyze_model tool invocation
func (s *Server) handleAnalyzeModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	descriptorPath, ok := args["descriptor_path"].(string)
	if !ok || descriptorPath == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "descriptor_path parameter is required", map[string]interface{}{
			"param":  "descriptor_path",
			"reason": "missing or empty",
		})
	}
	if err := validateDescriptorPath(descriptorPath); err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid descriptor_path", map[string]interface{}{
			"param":  "descriptor_path",
			"reason": err.Error(),
		})
	}

	desc, err := frontend.LoadDescriptor(descriptorPath)
	if err != nil {
		return nil, newMCPError(ErrorCodeDescriptorInvalid, "failed to load descriptor", map[string]interface{}{
			"error": err.Error(),
		})
	}

	var cfg *config.Config
	if configPath := getStringDefault(args, "config_path", ""); configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
		if err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "failed to load analysis config", map[string]interface{}{
				"param": "config_path",
				"error": err.Error(),
			})
		}
	}

	modelName := getStringDefault(args, "model_name", "")
	if modelName == "" {
		modelName = desc.Model.Name
	}
	if modelName == "" {
		modelName = strings.TrimSuffix(filepath.Base(descriptorPath), filepath.Ext(descriptorPath))
	}

	model, ports, err := frontend.NewBuilder().Build(desc)
	if err != nil {
		return nil, newMCPError(ErrorCodeDescriptorInvalid, "failed to build domain model", map[string]interface{}{
			"error": err.Error(),
		})
	}

	report, err := enricher.New(cfg, nil).Enrich(ctx, model, ports)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "enrichment failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	opts := enricher.PersistOptions{
		ModelName:       modelName,
		DescriptorPath:  descriptorPath,
		AnalyzerVersion: ServerVersion,
	}
	analysis, err := enricher.Persist(ctx, s.storage, opts, model, report)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to store analysis", map[string]interface{}{
			"error": err.Error(),
		})
	}

	aggregates := make([]string, 0)
	for _, t := range model.Types() {
		if t.Kind == domain.TypeKindAggregateRoot {
			aggregates = append(aggregates, t.QualifiedName)
		}
	}

	response := map[string]interface{}{
		"analyzed":        true,
		"model_name":      modelName,
		"analysis_id":     analysis.ID,
		"types_examined":  report.Stats.TypesExamined,
		"aggregate_roots": aggregates,
		"relationships":   report.Stats.Relationships,
		"diagnostics":     report.Stats.Diagnostics,
		"duration_ms":     report.Stats.Duration.Milliseconds(),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetType handles the get_type tool invocation
func (s *Server) handleGetType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	modelName, name, err := requireModelAndName(args)
	if err != nil {
		return nil, err
	}

	limit := getIntDefault(args, "limit", 5)
	if limit < 1 || limit > 50 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 50", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	analysis, err := s.lookupAnalysis(ctx, modelName)
	if err != nil {
		return nil, err
	}

	record, err := s.storage.GetType(ctx, analysis.ID, name)
	if err == nil {
		payload, err := s.typePayload(ctx, record)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"found": true,
			"type":  payload,
		})), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeInternalError, "failed to look up type", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// No exact match: fall back to full-text search over type names.
	matches, err := s.storage.SearchTypes(ctx, analysis.ID, name, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "type search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if len(matches) == 0 {
		return nil, newMCPError(ErrorCodeTypeNotFound, "type not found", map[string]interface{}{
			"model_name": modelName,
			"name":       name,
		})
	}

	payloads := make([]map[string]interface{}, 0, len(matches))
	for _, match := range matches {
		payload, err := s.typePayload(ctx, match)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"found":   true,
		"exact":   false,
		"matches": payloads,
	})), nil
}

// typePayload assembles the response body for one type record.
func (s *Server) typePayload(ctx context.Context, record *storage.TypeRecord) (map[string]interface{}, error) {
	props, err := s.storage.ListPropertiesByType(ctx, record.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list properties", map[string]interface{}{
			"error": err.Error(),
		})
	}

	properties := make([]map[string]interface{}, 0, len(props))
	for _, p := range props {
		prop := map[string]interface{}{
			"name": p.Name,
			"type": p.RenderedType,
		}
		if p.RelationshipKind != "" {
			prop["relationship"] = map[string]interface{}{
				"kind":            p.RelationshipKind,
				"target":          p.RelationshipTarget,
				"inter_aggregate": p.InterAggregate,
				"evidence_source": p.EvidenceSource,
				"evidence_detail": p.EvidenceDetail,
			}
		}
		properties = append(properties, prop)
	}

	return map[string]interface{}{
		"qualified_name":  record.QualifiedName,
		"simple_name":     record.SimpleName,
		"package":         record.PackagePath,
		"kind":            record.Kind,
		"evidence_kind":   record.EvidenceKind,
		"evidence_detail": record.EvidenceDetail,
		"properties":      properties,
	}, nil
}

// handleListDiagnostics handles the list_diagnostics tool invocation
func (s *Server) handleListDiagnostics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	modelName, err := requireModelName(args)
	if err != nil {
		return nil, err
	}

	analysis, err := s.lookupAnalysis(ctx, modelName)
	if err != nil {
		return nil, err
	}

	diags, err := s.storage.ListDiagnostics(ctx, analysis.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list diagnostics", map[string]interface{}{
			"error": err.Error(),
		})
	}

	items := make([]map[string]interface{}, 0, len(diags))
	for _, d := range diags {
		items = append(items, map[string]interface{}{
			"code":        d.Code,
			"severity":    d.Severity,
			"message":     d.Message,
			"owner_type":  d.OwnerType,
			"property":    d.Property,
			"target_type": d.TargetType,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"model_name":  modelName,
		"count":       len(items),
		"diagnostics": items,
	})), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	modelName, err := requireModelName(args)
	if err != nil {
		return nil, err
	}

	analysis, err := s.storage.GetAnalysis(ctx, modelName)
	if errors.Is(err, storage.ErrNotFound) {
		response := map[string]interface{}{
			"analyzed":   false,
			"model_name": modelName,
			"message":    "Model not analyzed. Use analyze_model tool to analyze a descriptor.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get analysis", map[string]interface{}{
			"error": err.Error(),
		})
	}

	status, err := s.storage.GetStatus(ctx, analysis.ID)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"analyzed": true,
		"analysis": map[string]interface{}{
			"model_name":       analysis.ModelName,
			"descriptor_path":  analysis.DescriptorPath,
			"analyzer_version": analysis.AnalyzerVersion,
			"last_analyzed_at": analysis.LastAnalyzedAt.Format("2006-01-02T15:04:05Z07:00"),
		},
		"statistics": map[string]interface{}{
			"types_count":         status.TypesCount,
			"properties_count":    status.PropertiesCount,
			"relationships_count": status.RelationshipsCount,
			"diagnostics_count":   status.DiagnosticsCount,
			"database_size_mb":    fmt.Sprintf("%.2f", status.DatabaseSizeMB),
		},
		"health": map[string]interface{}{
			"database_accessible": status.Health.DatabaseAccessible,
			"fts_indexes_built":   status.Health.FTSIndexesBuilt,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// lookupAnalysis resolves a model name to its stored analysis.
func (s *Server) lookupAnalysis(ctx context.Context, modelName string) (*storage.Analysis, error) {
	analysis, err := s.storage.GetAnalysis(ctx, modelName)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeModelNotAnalyzed, "model not analyzed", map[string]interface{}{
			"model_name": modelName,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get analysis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return analysis, nil
}

func requireModelName(args map[string]interface{}) (string, error) {
	modelName, ok := args["model_name"].(string)
	if !ok || modelName == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "model_name parameter is required", map[string]interface{}{
			"param":  "model_name",
			"reason": "missing or empty",
		})
	}
	return modelName, nil
}

func requireModelAndName(args map[string]interface{}) (string, string, error) {
	modelName, err := requireModelName(args)
	if err != nil {
		return "", "", err
	}
	name, ok := args["name"].(string)
	if !ok || name == "" {
		return "", "", newMCPError(ErrorCodeInvalidParams, "name parameter is required", map[string]interface{}{
			"param":  "name",
			"reason": "missing or empty",
		})
	}
	return modelName, name, nil
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validateDescriptorPath checks that the path points to a readable YAML file
func validateDescriptorPath(path string) error {
	if path == "" {
		return ErrPathRequired
	}
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if info.IsDir() {
		return ErrNotFile
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return ErrNotYAML
	}
	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotFile         = errors.New("path is a directory, not a file")
	ErrNotYAML         = errors.New("descriptor must be a .yaml or .yml file")
)
