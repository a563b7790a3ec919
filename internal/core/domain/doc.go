// Package domain defines the core business entities for docintake.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - StagedFile: The single candidate file held before submission
//   - ProcessResult: The classification outcome for a submitted document
//   - RecentDocumentEntry: A summary kept in the bounded local history
//   - CategoryGroups: Server-grouped document collections
//   - SearchResult: A ranked semantic search hit
//   - ChatMessage: One turn of an assistant transcript
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
