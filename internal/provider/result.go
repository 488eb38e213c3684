package provider

import "encoding/json"

// BookResult is the provider-neutral metadata of one catalog match for an
// ISBN. Optional fields are nil when the catalog omits them.
type BookResult struct {
	VolumeID      *string
	Title         *string
	Authors       []string
	PublishedDate *string
	PageCount     *int64
	Categories    []string
	Thumbnail     *string

	// VolumeInfo is the catalog's full metadata object, kept verbatim.
	VolumeInfo json.RawMessage
}
