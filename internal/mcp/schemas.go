package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// analyzeModelTool returns the tool definition for analyze_model
func analyzeModelTool() mcp.Tool {
	return mcp.Tool{
		Name:        "analyze_model",
		Description: "Analyze a domain model descriptor: classify aggregate roots and property relationships, and store the enriched model",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"descriptor_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the model descriptor YAML file",
				},
				"config_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to an optional analysis configuration YAML file (declared aggregate roots and relationship overrides)",
				},
				"model_name": map[string]interface{}{
					"type":        "string",
					"description": "Name to store the analysis under; defaults to the descriptor's model name or file name",
				},
			},
			Required: []string{"descriptor_path"},
		},
	}
}

// getTypeTool returns the tool definition for get_type
func getTypeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_type",
		Description: "Look up a classified domain type with its properties and relationships",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"model_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of a previously analyzed model",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Qualified type name; falls back to full-text search over type names when no exact match exists",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of search matches to return (1-50)",
					"default":     5,
					"minimum":     1,
					"maximum":     50,
				},
			},
			Required: []string{"model_name", "name"},
		},
	}
}

// listDiagnosticsTool returns the tool definition for list_diagnostics
func listDiagnosticsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_diagnostics",
		Description: "List the DDD boundary-violation warnings recorded for an analyzed model",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"model_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of a previously analyzed model",
				},
			},
			Required: []string{"model_name"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query analysis status and statistics for a model",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"model_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of a previously analyzed model",
				},
			},
			Required: []string{"model_name"},
		},
	}
}
