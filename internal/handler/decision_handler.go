package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"expertap/internal/domain"
	"expertap/internal/export"
	"expertap/internal/parser"
	"expertap/internal/service"
)

const exportPageSize = 200

// DecisionHandler handles decision endpoints.
type DecisionHandler struct {
	decisionService service.DecisionService
	maxUploadBytes  int64
}

// NewDecisionHandler creates a new DecisionHandler. maxUploadBytes caps how much
// of an uploaded file is read; zero means no cap.
func NewDecisionHandler(decisionService service.DecisionService, maxUploadBytes int64) *DecisionHandler {
	return &DecisionHandler{decisionService: decisionService, maxUploadBytes: maxUploadBytes}
}

// ParseRequest is the body of a preview parse.
type ParseRequest struct {
	Text     string `json:"text" binding:"required"`
	Filename string `json:"filename"`
}

// ParseResponse is a preview parse result with the derived labels.
type ParseResponse struct {
	*parser.ParsedDecision
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
}

// List handles GET /api/v1/decisions
// @Summary List decisions
// @Tags decisions
// @Produce json
// @Param ruling query string false "ADMITTED, PARTIALLY_ADMITTED, REJECTED or UNKNOWN"
// @Param contest_type query string false "documentation or result"
// @Param criticism_code query string false "Criticism code, e.g. R2"
// @Param year query int false "Bulletin year"
// @Param article query string false "Cited article number, e.g. 210"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Router /decisions [get]
func (h *DecisionHandler) List(c *gin.Context) {
	filter, ok := parseDecisionFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	decisions, total, err := h.decisionService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if decisions == nil {
		decisions = []domain.Decision{}
	}

	RespondPaginated(c, decisions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/decisions/:id
func (h *DecisionHandler) GetByID(c *gin.Context) {
	id, ok := parseDecisionID(c)
	if !ok {
		return
	}

	decision, err := h.decisionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, decision)
}

// ListSections handles GET /api/v1/decisions/:id/sections
func (h *DecisionHandler) ListSections(c *gin.Context) {
	id, ok := parseDecisionID(c)
	if !ok {
		return
	}

	sections, err := h.decisionService.ListSections(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sections)
}

// GetOriginal handles GET /api/v1/decisions/:id/original
func (h *DecisionHandler) GetOriginal(c *gin.Context) {
	id, ok := parseDecisionID(c)
	if !ok {
		return
	}

	url, err := h.decisionService.GetOriginalURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Stats handles GET /api/v1/decisions/stats
func (h *DecisionHandler) Stats(c *gin.Context) {
	stats, err := h.decisionService.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// CriticismCodes handles GET /api/v1/criticism-codes
func (h *DecisionHandler) CriticismCodes(c *gin.Context) {
	RespondOK(c, parser.Codes())
}

// Parse handles POST /api/v1/decisions/parse. Nothing is stored.
func (h *DecisionHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text is required")
		return
	}

	parsed, err := h.decisionService.Preview(req.Text, req.Filename)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ParseResponse{ParsedDecision: parsed, ExternalID: parsed.ExternalID(), Title: parsed.Title()})
}

// Upload handles POST /api/v1/decisions/upload
// @Summary Upload and store a decision text file
// @Tags decisions
// @Accept multipart/form-data
// @Param file formData file true "Decision text (.txt)"
// @Param upload_original formData bool false "Keep the original file in object storage"
// @Security BearerAuth
// @Router /decisions/upload [post]
func (h *DecisionHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	var reader io.Reader = file
	if h.maxUploadBytes > 0 {
		reader = io.LimitReader(file, h.maxUploadBytes+1)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}

	uploadOriginal, _ := strconv.ParseBool(c.DefaultPostForm("upload_original", "false"))
	decision, err := h.decisionService.Ingest(c.Request.Context(), service.IngestInput{
		Filename:       header.Filename,
		Content:        buf.Bytes(),
		UploadOriginal: uploadOriginal,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, decision)
}

// Reparse handles POST /api/v1/decisions/:id/reparse
func (h *DecisionHandler) Reparse(c *gin.Context) {
	id, ok := parseDecisionID(c)
	if !ok {
		return
	}

	decision, err := h.decisionService.Reparse(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, decision)
}

// Delete handles DELETE /api/v1/decisions/:id
func (h *DecisionHandler) Delete(c *gin.Context) {
	id, ok := parseDecisionID(c)
	if !ok {
		return
	}

	if err := h.decisionService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "decision deleted"})
}

// Export handles GET /api/v1/decisions/export?format=csv|xlsx
// Accepts the same filters as List and streams every matching decision.
func (h *DecisionHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportCSV))))
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}
	filter, ok := parseDecisionFilter(c)
	if !ok {
		return
	}

	var all []domain.Decision
	for offset := 0; ; offset += exportPageSize {
		page, total, err := h.decisionService.List(c.Request.Context(), filter, offset, exportPageSize)
		if err != nil {
			HandleError(c, err)
			return
		}
		all = append(all, page...)
		if len(page) < exportPageSize || len(all) >= total {
			break
		}
	}

	filename := export.BuildFilename(exportLabel(filter), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	switch format {
	case domain.ExportXLSX:
		w, err := export.NewXLSXWriter()
		if err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteDecisions(all); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Type", contentType)
		c.Status(http.StatusOK)
		_, _ = w.WriteTo(c.Writer)
	default:
		c.Header("Content-Type", contentType+"; charset=utf-8")
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write(export.BOM)
		w := export.NewCSVWriter(c.Writer)
		_ = w.WriteHeader()
		_ = w.WriteDecisions(all)
		w.Flush()
	}
}

// exportLabel names an export after its filters, e.g. "decisions_2024_R2".
func exportLabel(f domain.DecisionFilter) string {
	parts := []string{"decisions"}
	if f.Year > 0 {
		parts = append(parts, strconv.Itoa(f.Year))
	}
	for _, p := range []string{f.CriticismCode, f.Ruling, f.ContestType} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if f.Article != "" {
		parts = append(parts, "art"+f.Article)
	}
	return strings.Join(parts, "_")
}

func parseDecisionFilter(c *gin.Context) (domain.DecisionFilter, bool) {
	filter := domain.DecisionFilter{
		Ruling:        strings.ToUpper(strings.TrimSpace(c.Query("ruling"))),
		ContestType:   strings.ToLower(strings.TrimSpace(c.Query("contest_type"))),
		CriticismCode: strings.ToUpper(strings.TrimSpace(c.Query("criticism_code"))),
		Article:       strings.TrimSpace(c.Query("article")),
	}
	if y := strings.TrimSpace(c.Query("year")); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILTER", "year must be a number")
			return filter, false
		}
		filter.Year = year
	}
	return filter, true
}

func parseDecisionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid decision ID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
