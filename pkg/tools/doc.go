// Package tools groups the tool plumbing shared by the tool servers.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/toolservers/pkg/tools/toolbox]: Tool type, error categories, middleware and the ToolBox dispatcher
//   - [github.com/germanamz/toolservers/pkg/tools/mcpserver]: MCP server exposing a ToolBox over stdio or streamable HTTP
//   - [github.com/germanamz/toolservers/pkg/tools/mcpclient]: MCP client for calling tools on a server process or endpoint
//
// The toolbox sub-package is the foundation layer. Both mcpclient and mcpserver
// depend on toolbox for the Tool type but are independent of each other.
// The mcpclient and mcpserver packages are thin wrappers around the official
// MCP Go SDK (github.com/modelcontextprotocol/go-sdk).
package tools
