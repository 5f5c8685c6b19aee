// Package handler exposes the leads service over HTTP.
package handler

import (
	"context"
	"net/http"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/internal/leads/manual"
	"leadboard_backend/internal/leads/message"
	"leadboard_backend/internal/leads/service"
	"leadboard_backend/internal/leads/transport"
	"leadboard_backend/platform/httpkit"
	"leadboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// ArtifactStore archives a composed message and returns a download URL.
type ArtifactStore interface {
	StoreMessage(ctx context.Context, filename, body string) (string, error)
}

// Mailer delivers a composed message batch by email.
type Mailer interface {
	SendMessages(ctx context.Context, to, subject, body string) error
}

// Handler serves the leads routes. archive and mailer are nil when the
// corresponding backends are not configured.
type Handler struct {
	svc     *service.Service
	val     *validator.Validator
	archive ArtifactStore
	mailer  Mailer
}

func New(svc *service.Service, val *validator.Validator, archive ArtifactStore, mailer Mailer) *Handler {
	return &Handler{svc: svc, val: val, archive: archive, mailer: mailer}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, refreshLimit gin.HandlerFunc) {
	v1.GET("/leads", h.ListLeads)
	v1.GET("/leads/today", h.TodayTriage)
	v1.GET("/leads/:id/message", h.LeadMessage)
	v1.POST("/refresh", refreshLimit, h.Refresh)

	v1.GET("/reports/owners", h.report(domain.DimensionOwner))
	v1.GET("/reports/statuses", h.report(domain.DimensionStatus))
	v1.GET("/reports/sources", h.report(domain.DimensionSource))
	v1.GET("/reports/owners/breakdown", h.Breakdown)

	v1.GET("/owners/:owner", h.OwnerView)
	v1.POST("/owners/:owner/leads", h.AddManualLead)
	v1.POST("/owners/:owner/messages", h.ComposeMessages)
}

func (h *Handler) ListLeads(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	leads, err := h.svc.WorkingSet(c.Request.Context(), q)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.LeadsResponse{Leads: leads}
	if c.Query("summary") == "true" {
		summary := h.svc.Summarize(leads)
		resp.Summary = &summary
	}
	httpkit.OK(c, resp)
}

func (h *Handler) TodayTriage(c *gin.Context) {
	entries, err := h.svc.TodayTriage(c.Request.Context(), c.Query("owner"), false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.TriageResponse{Entries: entries})
}

func (h *Handler) Refresh(c *gin.Context) {
	count, err := h.svc.Refresh(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.RefreshResponse{Count: count})
}

func (h *Handler) report(dim domain.Dimension) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseQuery(c)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		groups, err := h.svc.Report(c.Request.Context(), dim, q)
		if httpkit.HandleError(c, err) {
			return
		}
		httpkit.OK(c, transport.ReportResponse{Dimension: string(dim), Groups: groups})
	}
}

func (h *Handler) Breakdown(c *gin.Context) {
	q, err := parseQuery(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	owners, err := h.svc.Breakdown(c.Request.Context(), q)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.BreakdownResponse{Owners: owners})
}

func (h *Handler) OwnerView(c *gin.Context) {
	owner := c.Param("owner")
	q, err := parseQuery(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	window, custom, err := parseWindow(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	entries, err := h.svc.OwnerView(c.Request.Context(), owner, window, custom, q)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.OwnerViewResponse{Owner: owner, Window: string(window), Entries: entries})
}

func (h *Handler) AddManualLead(c *gin.Context) {
	var req transport.AddManualLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead := h.svc.AddManual(c.Request.Context(), c.Param("owner"), manualInput(req))
	httpkit.JSON(c, http.StatusCreated, lead)
}

func (h *Handler) LeadMessage(c *gin.Context) {
	tpl := message.TemplateShort
	if style := c.Query("style"); style != "" {
		parsed, ok := message.ParseTemplate(style)
		if !ok {
			httpkit.Error(c, http.StatusBadRequest, "unknown message style", nil)
			return
		}
		tpl = parsed
	}

	text, filename, err := h.svc.ComposeForLead(c.Request.Context(), c.Param("id"), tpl)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Attachment(c, filename, text)
}

func (h *Handler) ComposeMessages(c *gin.Context) {
	var req transport.ComposeMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	tpl := message.TemplateShort
	if req.Style != "" {
		tpl, _ = message.ParseTemplate(req.Style)
	}

	owner := c.Param("owner")
	text, filename, err := h.svc.ComposeBulk(c.Request.Context(), owner, req.LeadIDs, tpl)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.MessagesResponse{Text: text, Filename: filename}

	if h.archive != nil {
		url, err := h.archive.StoreMessage(c.Request.Context(), filename, text)
		if httpkit.HandleError(c, err) {
			return
		}
		resp.DownloadURL = url
	}

	if req.Deliver == "email" {
		if h.mailer == nil {
			httpkit.Error(c, http.StatusBadRequest, "email delivery is not configured", nil)
			return
		}
		if req.To == "" {
			httpkit.Error(c, http.StatusBadRequest, "recipient required for email delivery", nil)
			return
		}
		subject := "Lead messages for " + owner
		if err := h.mailer.SendMessages(c.Request.Context(), req.To, subject, text); httpkit.HandleError(c, err) {
			return
		}
		resp.Delivered = true
	}

	httpkit.OK(c, resp)
}

func manualInput(req transport.AddManualLeadRequest) manual.Input {
	return manual.Input{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Source:      req.Source,
		Description: req.Description,
	}
}
