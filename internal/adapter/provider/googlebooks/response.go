package googlebooks

import "encoding/json"

// volumesResponse is the subset of the volumes list payload that is read.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	ID         string          `json:"id"`
	VolumeInfo json.RawMessage `json:"volumeInfo"`
}
