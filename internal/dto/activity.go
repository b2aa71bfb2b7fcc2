package dto

import (
	"time"

	"github.com/tmahmood/envelop-budget/internal/models"
)

// Default and maximum page sizes for activity listings
const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 1000
)

// ActivityFilters narrows and pages an activity listing
type ActivityFilters struct {
	Action string `query:"action" json:"action"`
	Offset int    `query:"offset" json:"offset" validate:"min=0"`
	Limit  int    `query:"limit" json:"limit" validate:"min=0,max=1000"`
}

// PageSize returns the requested limit, or the default when none was given
func (f ActivityFilters) PageSize() int {
	if f.Limit <= 0 {
		return DefaultActivityLimit
	}
	return f.Limit
}

// ActivityResponse is one recorded ledger change
type ActivityResponse struct {
	ID         string                 `json:"id"`
	Action     string                 `json:"action"`
	Resource   string                 `json:"resource"`
	ResourceID string                 `json:"resource_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ActivityListResponse is a page of recorded ledger changes, newest first
type ActivityListResponse struct {
	Activity []ActivityResponse `json:"activity"`
	Total    int64              `json:"total"`
	Offset   int                `json:"offset"`
	Limit    int                `json:"limit"`
}

func NewActivityResponse(log *models.AuditLog) ActivityResponse {
	return ActivityResponse{
		ID:         log.ID.String(),
		Action:     log.Action,
		Resource:   log.Resource,
		ResourceID: log.ResourceID,
		Metadata:   log.Metadata,
		CreatedAt:  log.CreatedAt,
	}
}

func NewActivityListResponse(logs []*models.AuditLog, total int64, filters ActivityFilters) ActivityListResponse {
	resp := ActivityListResponse{
		Activity: make([]ActivityResponse, 0, len(logs)),
		Total:    total,
		Offset:   filters.Offset,
		Limit:    filters.PageSize(),
	}
	for _, l := range logs {
		resp.Activity = append(resp.Activity, NewActivityResponse(l))
	}
	return resp
}
