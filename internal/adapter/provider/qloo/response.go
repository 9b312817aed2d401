package qloo

import "github.com/vibecraft/vibecraft-backend/internal/provider"

// searchResponse is the envelope of the /search endpoint.
type searchResponse struct {
	Results []apiEntity `json:"results"`
}

// insightsRequestBody is the JSON body of a /v2/insights call. The API uses
// dotted field names and a comma-joined entity ID list.
type insightsRequestBody struct {
	FilterType     string `json:"filter.type"`
	SignalEntities string `json:"signal.interests.entities"`
	Limit          int    `json:"limit"`
}

// insightsResponse is the envelope of the /v2/insights endpoint.
type insightsResponse struct {
	Success bool `json:"success"`
	Results struct {
		Entities []apiEntity `json:"entities"`
	} `json:"results"`
}

// apiEntity is one entity as returned by either endpoint. Search results
// carry a types array and entity_id (falling back to id); insights results
// carry subtype and an optional description under properties.
type apiEntity struct {
	EntityID   string   `json:"entity_id"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Types      []string `json:"types"`
	Subtype    string   `json:"subtype"`
	Type       string   `json:"type"`
	Properties struct {
		Description string `json:"description"`
	} `json:"properties"`
}

func (e apiEntity) toEntity() provider.Entity {
	id := e.EntityID
	if id == "" {
		id = e.ID
	}

	entityType := e.Type
	if len(e.Types) > 0 {
		entityType = e.Types[0]
	}

	return provider.Entity{
		ID:          id,
		Name:        e.Name,
		Type:        entityType,
		Subtype:     e.Subtype,
		Description: e.Properties.Description,
	}
}
