// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the intake client. It lets AI assistants search processed documents and
// read them without going through the terminal UI.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrInvalidPorts is returned when no ports are provided.
var ErrInvalidPorts = errors.New("mcp: ports are required")
