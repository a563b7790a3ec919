package domain

// DocumentDetail is a stored document as returned by the service.
type DocumentDetail struct {
	// ID is the document identifier.
	ID string

	// Metadata is the stored metadata in server order.
	Metadata Fields

	// Text is the previewable document text.
	Text string
}

// Health is the service health report.
type Health struct {
	Status  string
	Service string
}

// Healthy reports whether the service reported itself healthy.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}

// CollectionStats reports the size of the server-side document collection.
type CollectionStats struct {
	Collection string
	Count      int
}
