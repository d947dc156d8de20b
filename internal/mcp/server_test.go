package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDescriptor = `
model:
  name: ordering
types:
  - name: com.example.order.Order
    annotations:
      - org.jmolecules.ddd.annotation.AggregateRoot
    properties:
      - name: customerId
        type: com.example.customer.CustomerId
      - name: total
        type: com.example.shared.Money
  - name: com.example.customer.Customer
    annotations:
      - org.jmolecules.ddd.annotation.AggregateRoot
    properties:
      - name: email
        type: java.lang.String
  - name: com.example.billing.Invoice
    kind: entity
    properties:
      - name: customer
        type: com.example.customer.Customer
  - name: com.example.shared.Money
    kind: value_object
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.storage.Close() })
	return server
}

func writeTestDescriptor(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ordering.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDescriptor), 0644))
	return path
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "result content should be text")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func TestServer_Initialization(t *testing.T) {
	server := newTestServer(t)
	assert.NotNil(t, server.mcp)
	assert.NotNil(t, server.storage)
}

func TestAnalyzeModelTool(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	descriptorPath := writeTestDescriptor(t)

	result, err := server.handleAnalyzeModel(ctx, callRequest("analyze_model", map[string]interface{}{
		"descriptor_path": descriptorPath,
	}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	assert.Equal(t, true, payload["analyzed"])
	assert.Equal(t, "ordering", payload["model_name"])
	assert.Equal(t, float64(4), payload["types_examined"])
	assert.Equal(t, float64(1), payload["diagnostics"])

	roots, ok := payload["aggregate_roots"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, roots, "com.example.order.Order")
	assert.Contains(t, roots, "com.example.customer.Customer")
}

func TestAnalyzeModelValidation(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
		code int
	}{
		{
			name: "missing descriptor_path",
			args: map[string]interface{}{},
			code: ErrorCodeInvalidParams,
		},
		{
			name: "relative descriptor_path",
			args: map[string]interface{}{"descriptor_path": "models/ordering.yaml"},
			code: ErrorCodeInvalidParams,
		},
		{
			name: "nonexistent descriptor_path",
			args: map[string]interface{}{"descriptor_path": "/does/not/exist.yaml"},
			code: ErrorCodeInvalidParams,
		},
		{
			name: "wrong extension",
			args: map[string]interface{}{"descriptor_path": mustTempFile(t, "model.json")},
			code: ErrorCodeInvalidParams,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := server.handleAnalyzeModel(ctx, callRequest("analyze_model", tt.args))
			require.Error(t, err)

			var mcpErr *MCPError
			require.True(t, errors.As(err, &mcpErr))
			assert.Equal(t, tt.code, mcpErr.Code)
		})
	}
}

func mustTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	return path
}

func TestGetTypeTool(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	descriptorPath := writeTestDescriptor(t)

	_, err := server.handleAnalyzeModel(ctx, callRequest("analyze_model", map[string]interface{}{
		"descriptor_path": descriptorPath,
	}))
	require.NoError(t, err)

	t.Run("exact match", func(t *testing.T) {
		result, err := server.handleGetType(ctx, callRequest("get_type", map[string]interface{}{
			"model_name": "ordering",
			"name":       "com.example.order.Order",
		}))
		require.NoError(t, err)

		payload := resultJSON(t, result)
		assert.Equal(t, true, payload["found"])

		typ, ok := payload["type"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "aggregate_root", typ["kind"])
		assert.Equal(t, "explicit_annotation", typ["evidence_kind"])

		props, ok := typ["properties"].([]interface{})
		require.True(t, ok)
		require.Len(t, props, 2)

		first := props[0].(map[string]interface{})
		assert.Equal(t, "customerId", first["name"])
		rel, ok := first["relationship"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "many_to_one", rel["kind"])
		assert.Equal(t, "com.example.customer.Customer", rel["target"])
		assert.Equal(t, true, rel["inter_aggregate"])
	})

	t.Run("search fallback", func(t *testing.T) {
		result, err := server.handleGetType(ctx, callRequest("get_type", map[string]interface{}{
			"model_name": "ordering",
			"name":       "Invoice",
		}))
		require.NoError(t, err)

		payload := resultJSON(t, result)
		assert.Equal(t, false, payload["exact"])

		matches, ok := payload["matches"].([]interface{})
		require.True(t, ok)
		require.Len(t, matches, 1)
		match := matches[0].(map[string]interface{})
		assert.Equal(t, "com.example.billing.Invoice", match["qualified_name"])
	})

	t.Run("no match", func(t *testing.T) {
		_, err := server.handleGetType(ctx, callRequest("get_type", map[string]interface{}{
			"model_name": "ordering",
			"name":       "Widget",
		}))
		require.Error(t, err)

		var mcpErr *MCPError
		require.True(t, errors.As(err, &mcpErr))
		assert.Equal(t, ErrorCodeTypeNotFound, mcpErr.Code)
	})

	t.Run("model not analyzed", func(t *testing.T) {
		_, err := server.handleGetType(ctx, callRequest("get_type", map[string]interface{}{
			"model_name": "billing",
			"name":       "Invoice",
		}))
		require.Error(t, err)

		var mcpErr *MCPError
		require.True(t, errors.As(err, &mcpErr))
		assert.Equal(t, ErrorCodeModelNotAnalyzed, mcpErr.Code)
	})

	t.Run("limit out of range", func(t *testing.T) {
		_, err := server.handleGetType(ctx, callRequest("get_type", map[string]interface{}{
			"model_name": "ordering",
			"name":       "Order",
			"limit":      float64(100),
		}))
		require.Error(t, err)

		var mcpErr *MCPError
		require.True(t, errors.As(err, &mcpErr))
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})
}

func TestListDiagnosticsTool(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	descriptorPath := writeTestDescriptor(t)

	_, err := server.handleAnalyzeModel(ctx, callRequest("analyze_model", map[string]interface{}{
		"descriptor_path": descriptorPath,
	}))
	require.NoError(t, err)

	result, err := server.handleListDiagnostics(ctx, callRequest("list_diagnostics", map[string]interface{}{
		"model_name": "ordering",
	}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	assert.Equal(t, float64(1), payload["count"])

	diags, ok := payload["diagnostics"].([]interface{})
	require.True(t, ok)
	require.Len(t, diags, 1)
	diag := diags[0].(map[string]interface{})
	assert.Equal(t, "DDD-W001", diag["code"])
	assert.Equal(t, "warning", diag["severity"])
	assert.Equal(t, "com.example.billing.Invoice", diag["owner_type"])
	assert.Equal(t, "customer", diag["property"])
}

func TestGetStatusTool(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	t.Run("not analyzed", func(t *testing.T) {
		result, err := server.handleGetStatus(ctx, callRequest("get_status", map[string]interface{}{
			"model_name": "ordering",
		}))
		require.NoError(t, err)

		payload := resultJSON(t, result)
		assert.Equal(t, false, payload["analyzed"])
	})

	t.Run("analyzed", func(t *testing.T) {
		descriptorPath := writeTestDescriptor(t)
		_, err := server.handleAnalyzeModel(ctx, callRequest("analyze_model", map[string]interface{}{
			"descriptor_path": descriptorPath,
		}))
		require.NoError(t, err)

		result, err := server.handleGetStatus(ctx, callRequest("get_status", map[string]interface{}{
			"model_name": "ordering",
		}))
		require.NoError(t, err)

		payload := resultJSON(t, result)
		assert.Equal(t, true, payload["analyzed"])

		stats, ok := payload["statistics"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(4), stats["types_count"])
		assert.Equal(t, float64(1), stats["diagnostics_count"])

		health, ok := payload["health"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, health["database_accessible"])
	})

	t.Run("missing model_name", func(t *testing.T) {
		_, err := server.handleGetStatus(ctx, callRequest("get_status", map[string]interface{}{}))
		require.Error(t, err)

		var mcpErr *MCPError
		require.True(t, errors.As(err, &mcpErr))
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})
}
