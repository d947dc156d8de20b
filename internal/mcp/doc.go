// Package mcp implements the Model Context Protocol (MCP) server for DomainLens.
//
// The MCP server exposes four tools to AI coding assistants:
//   - analyze_model: Analyze a domain model descriptor and store the enriched model
//   - get_type: Look up a classified type with its properties and relationships
//   - list_diagnostics: List boundary-violation warnings for an analyzed model
//   - get_status: Check analysis status and statistics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Tool: analyze_model
//
// Analyze a descriptor to classify aggregate roots and relationships:
//
//	Request:
//	{
//	  "name": "analyze_model",
//	  "arguments": {
//	    "descriptor_path": "/models/ordering.yaml",
//	    "config_path": "/models/ordering-config.yaml",
//	    "model_name": "ordering"
//	  }
//	}
//
//	Response:
//	{
//	  "analyzed": true,
//	  "model_name": "ordering",
//	  "types_examined": 14,
//	  "aggregate_roots": ["com.example.order.Order"],
//	  "relationships": 9,
//	  "diagnostics": 1,
//	  "duration_ms": 12
//	}
//
// # Tool: get_type
//
// Look up a type by qualified name. When no exact match exists the lookup
// falls back to full-text search over type names:
//
//	Request:
//	{
//	  "name": "get_type",
//	  "arguments": {
//	    "model_name": "ordering",
//	    "name": "com.example.order.Order",
//	    "limit": 5
//	  }
//	}
//
// # Tool: list_diagnostics
//
// List the DDD warnings (for example DDD-W001, direct aggregate reference)
// recorded during the last analysis of a model.
//
// # Tool: get_status
//
// Report whether a model has been analyzed, plus row counts, database size,
// and health checks.
//
// # Error Handling
//
// The MCP server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "Invalid params",
//	    "data": {
//	      "param": "descriptor_path",
//	      "reason": "path does not exist"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (database, filesystem, etc.)
//   - -32001: Model not analyzed
//   - -32002: Type not found
//   - -32003: Descriptor failed to load or parse
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol).
package mcp
