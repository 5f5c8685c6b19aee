// Package transport defines the request and response DTOs for the leads
// HTTP surface.
package transport

import (
	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/internal/leads/service"
)

// Request DTOs

type AddManualLeadRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=1,max=100"`
	LastName    string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Company     string `json:"company,omitempty" validate:"omitempty,max=200"`
	Source      string `json:"source,omitempty" validate:"omitempty,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type ComposeMessagesRequest struct {
	LeadIDs []string `json:"leadIds" validate:"required,min=1,dive,required"`
	Style   string   `json:"style,omitempty" validate:"omitempty,oneof=short detailed"`
	Deliver string   `json:"deliver,omitempty" validate:"omitempty,oneof=email"`
	To      string   `json:"to,omitempty" validate:"omitempty,email"`
}

// Response DTOs

type LeadsResponse struct {
	Leads   []domain.Lead    `json:"leads"`
	Summary *service.Summary `json:"summary,omitempty"`
}

type TriageResponse struct {
	Entries []service.TriageEntry `json:"entries"`
}

type ReportResponse struct {
	Dimension string         `json:"dimension"`
	Groups    []domain.Group `json:"groups"`
}

type BreakdownResponse struct {
	Owners []service.OwnerBreakdown `json:"owners"`
}

type OwnerViewResponse struct {
	Owner   string                   `json:"owner"`
	Window  string                   `json:"window"`
	Entries []service.OwnerViewEntry `json:"entries"`
}

type RefreshResponse struct {
	Count int `json:"count"`
}

type MessagesResponse struct {
	Text        string `json:"text"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Delivered   bool   `json:"delivered"`
}
