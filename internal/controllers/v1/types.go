package v1

import (
	sb_uuid "github.com/shulebooks/backend/internal/uuid"
)

type URIID struct {
	ID sb_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// containsField reports whether the field name is in the list returned
// by httputil.GetBodyFields.
func containsField(fields []any, name string) bool {
	for _, field := range fields {
		if field == name {
			return true
		}
	}

	return false
}

// Pagination contains information about the pagination for collection endpoints
type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}
