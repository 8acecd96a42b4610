package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"report-service/internal/http/middleware"
	"report-service/internal/model"
	"report-service/internal/service"
)

type Handler struct {
	reportService *service.ReportService
	log           zerolog.Logger
}

func NewHandler(reportService *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{
		reportService: reportService,
		log:           log,
	}
}

func (h *Handler) createReport(c *gin.Context) {
	var req struct {
		ReporterName  string   `json:"reporter_name" binding:"required"`
		ReporterPhone string   `json:"reporter_phone" binding:"required"`
		ReporterEmail string   `json:"reporter_email"`
		DamageType    string   `json:"damage_type" binding:"required"`
		Severity      string   `json:"severity" binding:"required"`
		Location      string   `json:"location" binding:"required"`
		Landmark      string   `json:"landmark"`
		Ward          string   `json:"ward" binding:"required"`
		Description   string   `json:"description" binding:"required"`
		GpsLat        *float64 `json:"gps_lat"`
		GpsLng        *float64 `json:"gps_lng"`
		ImageURL      *string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.CreateReportInput{
		ReporterName:  req.ReporterName,
		ReporterPhone: strings.TrimSpace(req.ReporterPhone),
		ReporterEmail: req.ReporterEmail,
		DamageType:    req.DamageType,
		Severity:      model.ReportSeverity(strings.ToLower(strings.TrimSpace(req.Severity))),
		Location:      req.Location,
		Landmark:      req.Landmark,
		Ward:          req.Ward,
		Description:   req.Description,
		GpsLat:        req.GpsLat,
		GpsLng:        req.GpsLng,
		ImageURL:      req.ImageURL,
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(gin.H{
		"complaint_id": report.ComplaintID,
		"report":       report.PublicProjection(),
	}))
}

func (h *Handler) trackComplaint(c *gin.Context) {
	complaintID := strings.TrimSpace(c.Param("complaint_id"))
	if complaintID == "" {
		c.JSON(http.StatusBadRequest, errorResponse("complaint id missing"))
		return
	}

	tracked, err := h.reportService.Track(c.Request.Context(), complaintID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(tracked))
}

func (h *Handler) recentReports(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	reports, err := h.reportService.RecentReports(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": reports}))
}

func (h *Handler) reportStats(c *gin.Context) {
	stats, err := h.reportService.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(stats))
}

func (h *Handler) listReports(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	filter := parseReportQuery(c)

	reports, err := h.reportService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": reports}))
}

func (h *Handler) assignWorker(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid report id"))
		return
	}

	var req struct {
		WorkerID *string `json:"worker_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var workerID *uuid.UUID
	if req.WorkerID != nil && strings.TrimSpace(*req.WorkerID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(*req.WorkerID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid worker_id"))
			return
		}
		workerID = &parsed
	}

	report, err := h.reportService.AssignWorker(c.Request.Context(), principal, id, workerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) updateReportStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid report id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.ReportStatus(strings.ToLower(strings.TrimSpace(req.Status)))

	report, err := h.reportService.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) updateWorkImages(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid report id"))
		return
	}

	var req struct {
		BeforeImageURL *string `json:"before_image_url"`
		AfterImageURL  *string `json:"after_image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	report, err := h.reportService.UpdateWorkImages(c.Request.Context(), principal, id, req.BeforeImageURL, req.AfterImageURL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) listWorkers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	workers, err := h.reportService.ListWorkers(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": workers}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseReportQuery(c *gin.Context) model.ReportFilter {
	var filter model.ReportFilter

	if statusParam := c.Query("status"); statusParam != "" {
		for _, val := range splitCSV(statusParam) {
			filter.Statuses = append(filter.Statuses, model.ReportStatus(strings.ToLower(val)))
		}
	}
	filter.Ward = strings.TrimSpace(c.Query("ward"))
	filter.Search = strings.TrimSpace(c.Query("search"))

	if limit := strings.TrimSpace(c.Query("limit")); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil {
			filter.Limit = v
		}
	}
	if offset := strings.TrimSpace(c.Query("offset")); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil {
			filter.Offset = v
		}
	}

	return filter
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
