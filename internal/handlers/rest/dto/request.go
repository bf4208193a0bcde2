package dto

import (
	"time"

	"logistics/internal/entities"
)

type RequestOpen struct {
	OrderID     string   `json:"order_id"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

type RequestResolve struct {
	Resolution string `json:"resolution"`
}

type Request struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	Kind        string     `json:"kind"`
	Description string     `json:"description"`
	Images      []string   `json:"images,omitempty"`
	Status      string     `json:"status"`
	Resolution  *string    `json:"resolution,omitempty"`
	CreatedBy   string     `json:"created_by"`
	ResolvedBy  *string    `json:"resolved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func FromRequest(r entities.CustomerRequest) Request {
	return Request{
		ID:          r.ID,
		OrderID:     r.OrderID,
		Kind:        string(r.Kind),
		Description: r.Description,
		Images:      r.Images,
		Status:      string(r.Status),
		Resolution:  r.Resolution,
		CreatedBy:   r.CreatedBy,
		ResolvedBy:  r.ResolvedBy,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

func FromRequests(reqs []entities.CustomerRequest) []Request {
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, FromRequest(r))
	}
	return out
}
