package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taxpilot/tax-assistant/internal/ai"
	"github.com/taxpilot/tax-assistant/internal/document"
	"github.com/taxpilot/tax-assistant/internal/models"
	"github.com/taxpilot/tax-assistant/internal/report"
	"github.com/taxpilot/tax-assistant/internal/repository"
	"github.com/taxpilot/tax-assistant/internal/tax"
	"github.com/taxpilot/tax-assistant/pkg/utils"
)

// Dependencies bundles everything the handlers call into
type Dependencies struct {
	Documents    *repository.DocumentRepository
	Profiles     *repository.ProfileRepository
	Chats        *repository.ChatRepository
	Deadlines    *repository.DeadlineRepository
	HealthScores *repository.HealthScoreRepository

	Catalog    tax.DocumentCatalog
	Aggregator *tax.Aggregator
	Regimes    *tax.RegimeComparator
	Checker    *tax.ConsistencyChecker
	Gaps       *tax.GapAnalyzer
	Insights   *tax.InsightsEngine
	Health     *tax.HealthScorer
	ITR        *tax.ITRDraftBuilder
	Calendar   *tax.DeadlineCalendar
	Checklist  *tax.ChecklistBuilder

	Extractor *ai.Extractor
	Assistant *ai.Assistant
	PDFReader *document.PDFReader
	Exporter  *report.Exporter
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	deps   Dependencies
	logger *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(deps Dependencies, logger *zap.Logger) *Handlers {
	return &Handlers{deps: deps, logger: logger}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Success: false, Error: msg})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	respondOK(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// DocumentTypeResponse describes one supported document type
type DocumentTypeResponse struct {
	Type           string   `json:"type"`
	Required       bool     `json:"required"`
	Description    string   `json:"description"`
	RequiredFields []string `json:"required_fields"`
	OptionalFields []string `json:"optional_fields"`
}

// ListDocumentTypes handles GET /api/v1/document-types
func (h *Handlers) ListDocumentTypes(c *gin.Context) {
	types := make([]DocumentTypeResponse, 0, len(h.deps.Catalog))
	for _, entry := range h.deps.Catalog {
		types = append(types, DocumentTypeResponse{
			Type:           entry.Type,
			Required:       entry.Required,
			Description:    entry.Description,
			RequiredFields: entry.RequiredFields,
			OptionalFields: entry.OptionalFields,
		})
	}
	respondOK(c, gin.H{"document_types": types})
}

// UploadDocumentResponse pairs the stored record with extraction info
type UploadDocumentResponse struct {
	Document   *models.DocumentRecord   `json:"document"`
	Extraction *models.ExtractionResult `json:"extraction"`
}

// UploadDocument handles POST /api/v1/users/:user_id/documents.
// The request is multipart: a document_type field, an optional PDF
// file, and an optional JSON metadata field. Extraction never fails
// the upload; on AI trouble the stored metadata degrades to whatever
// the client supplied.
func (h *Handlers) UploadDocument(c *gin.Context) {
	userID := c.Param("user_id")

	docType := c.PostForm("document_type")
	if !h.deps.Catalog.ValidType(docType) {
		respondError(c, http.StatusBadRequest, "unsupported document type: "+docType)
		return
	}

	userMetadata := map[string]interface{}{}
	if raw := c.PostForm("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &userMetadata); err != nil {
			respondError(c, http.StatusBadRequest, "metadata is not valid JSON")
			return
		}
	}

	var text string
	fileURL := ""
	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Error("Failed to open uploaded file", zap.Error(err))
			respondError(c, http.StatusBadRequest, "failed to read uploaded file")
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			h.logger.Error("Failed to read uploaded file", zap.Error(err))
			respondError(c, http.StatusBadRequest, "failed to read uploaded file")
			return
		}

		if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
			text, err = h.deps.PDFReader.ExtractTextFromBytes(content)
			if err != nil {
				h.logger.Warn("PDF text extraction failed, continuing with metadata only",
					zap.String("filename", fileHeader.Filename),
					zap.Error(err))
				text = ""
			}
		}
		fileURL = fileHeader.Filename
	}

	extraction := h.deps.Extractor.Extract(c.Request.Context(), docType, text, userMetadata)

	doc := &models.DocumentRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		DocumentType: docType,
		FileURL:      fileURL,
		Metadata:     extraction.ExtractedMetadata,
		Status:       "processed",
		UploadedAt:   time.Now().UTC(),
	}

	if err := h.deps.Documents.Create(doc); err != nil {
		h.logger.Error("Failed to store document", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to store document")
		return
	}

	h.logger.Info("Document uploaded",
		zap.String("user_id", userID),
		zap.String("document_id", doc.ID),
		zap.String("document_type", docType))

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    UploadDocumentResponse{Document: doc, Extraction: extraction},
	})
}

// ListDocuments handles GET /api/v1/users/:user_id/documents
func (h *Handlers) ListDocuments(c *gin.Context) {
	userID := c.Param("user_id")

	docs, err := h.deps.Documents.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to retrieve documents")
		return
	}

	if docType := c.Query("document_type"); docType != "" {
		filtered := docs[:0]
		for _, doc := range docs {
			if doc.DocumentType == docType {
				filtered = append(filtered, doc)
			}
		}
		docs = filtered
	}

	respondOK(c, gin.H{"documents": docs, "count": len(docs)})
}

// DeleteDocument handles DELETE /api/v1/users/:user_id/documents/:id
func (h *Handlers) DeleteDocument(c *gin.Context) {
	userID := c.Param("user_id")
	id := c.Param("id")

	doc, err := h.deps.Documents.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to load document", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete document")
		return
	}
	if doc == nil || doc.UserID != userID {
		respondError(c, http.StatusNotFound, "document not found")
		return
	}

	if err := h.deps.Documents.Delete(id); err != nil {
		h.logger.Error("Failed to delete document", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete document")
		return
	}

	respondOK(c, gin.H{"deleted": id})
}

// TaxSummaryResponse is the full derivation payload for one user
type TaxSummaryResponse struct {
	Summary          *models.TaxSummary        `json:"summary"`
	RegimeComparison *models.RegimeComparison  `json:"regime_comparison"`
	Consistency      *models.ConsistencyReport `json:"consistency"`
	Gaps             *models.GapAnalysis       `json:"gaps"`
	DocumentCount    int                       `json:"document_count"`
}

func (h *Handlers) derive(userID string) (*TaxSummaryResponse, error) {
	docs, err := h.deps.Documents.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	summary := h.deps.Aggregator.Aggregate(docs)
	return &TaxSummaryResponse{
		Summary:          summary,
		RegimeComparison: h.deps.Regimes.Compare(summary),
		Consistency:      h.deps.Checker.Check(docs),
		Gaps:             h.deps.Gaps.Analyze(docs),
		DocumentCount:    len(docs),
	}, nil
}

// TaxSummary handles GET /api/v1/users/:user_id/tax-summary
func (h *Handlers) TaxSummary(c *gin.Context) {
	result, err := h.derive(c.Param("user_id"))
	if err != nil {
		h.logger.Error("Failed to derive tax summary", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to derive tax summary")
		return
	}
	respondOK(c, result)
}

// ExportTaxSummary handles GET /api/v1/users/:user_id/tax-summary/export
func (h *Handlers) ExportTaxSummary(c *gin.Context) {
	userID := c.Param("user_id")

	result, err := h.derive(userID)
	if err != nil {
		h.logger.Error("Failed to derive tax summary", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to derive tax summary")
		return
	}

	path, err := h.deps.Exporter.ExportSummary(userID, result.Summary, result.RegimeComparison)
	if err != nil {
		h.logger.Error("Failed to export tax summary", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to export tax summary")
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// Insights handles GET /api/v1/users/:user_id/insights
func (h *Handlers) Insights(c *gin.Context) {
	userID := c.Param("user_id")

	docs, err := h.deps.Documents.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to generate insights")
		return
	}

	summary := h.deps.Aggregator.Aggregate(docs)
	consistency := h.deps.Checker.Check(docs)
	gaps := h.deps.Gaps.Analyze(docs)

	insights := h.deps.Insights.Generate(docs, summary, consistency)
	score := h.deps.Health.Score(summary, consistency, gaps)

	respondOK(c, gin.H{
		"insights":     insights,
		"health_score": score,
		"count":        len(insights),
	})
}

// HealthScore handles GET /api/v1/users/:user_id/health-score.
// Each call records a snapshot; the previous snapshot is surfaced as a
// score delta.
func (h *Handlers) HealthScore(c *gin.Context) {
	userID := c.Param("user_id")

	docs, err := h.deps.Documents.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to compute health score")
		return
	}

	summary := h.deps.Aggregator.Aggregate(docs)
	consistency := h.deps.Checker.Check(docs)
	gaps := h.deps.Gaps.Analyze(docs)
	score := h.deps.Health.Score(summary, consistency, gaps)

	previous, err := h.deps.HealthScores.Latest(userID)
	if err != nil {
		h.logger.Warn("Failed to load previous health score", zap.Error(err))
	} else if previous != nil {
		prevScore := previous.Score
		change := score.Score - previous.Score
		score.PreviousScore = &prevScore
		score.ScoreChange = &change
	}

	if err := h.deps.HealthScores.Record(userID, score.Score, score.Month); err != nil {
		h.logger.Warn("Failed to record health score", zap.Error(err))
	}

	respondOK(c, score)
}

// AutoFileAnalysis handles GET /api/v1/users/:user_id/auto-file/analysis
func (h *Handlers) AutoFileAnalysis(c *gin.Context) {
	userID := c.Param("user_id")

	docs, err := h.deps.Documents.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to run auto-file analysis")
		return
	}

	profile, err := h.deps.Profiles.GetByUserID(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to run auto-file analysis")
		return
	}

	summary := h.deps.Aggregator.Aggregate(docs)
	consistency := h.deps.Checker.Check(docs)
	gaps := h.deps.Gaps.Analyze(docs)

	respondOK(c, gin.H{
		"gaps":              gaps,
		"consistency":       consistency,
		"itr_draft":         h.deps.ITR.Build(summary, profile),
		"checklist":         h.deps.Checklist.Build(docs, gaps, consistency),
		"completion_status": h.deps.Checklist.CompletionStatus(gaps, consistency),
	})
}

// ITRDraft handles GET /api/v1/users/:user_id/auto-file/itr-draft
func (h *Handlers) ITRDraft(c *gin.Context) {
	userID := c.Param("user_id")

	docs, err := h.deps.Documents.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to build ITR draft")
		return
	}

	profile, err := h.deps.Profiles.GetByUserID(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to build ITR draft")
		return
	}

	summary := h.deps.Aggregator.Aggregate(docs)
	respondOK(c, h.deps.ITR.Build(summary, profile))
}

// CalendarDeadlines handles GET /api/v1/calendar/deadlines
func (h *Handlers) CalendarDeadlines(c *gin.Context) {
	deadlines, financialYear, err := h.deps.Calendar.Deadlines(c.Query("financial_year"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	respondOK(c, gin.H{
		"financial_year": financialYear,
		"deadlines":      deadlines,
		"count":          len(deadlines),
	})
}

// CreateDeadlineRequest is the body for creating a custom deadline
type CreateDeadlineRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
}

// CreateDeadline handles POST /api/v1/users/:user_id/deadlines
func (h *Handlers) CreateDeadline(c *gin.Context) {
	userID := c.Param("user_id")

	var req CreateDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "title and date are required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		respondError(c, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	deadline := &models.UserDeadline{
		UserID:      userID,
		Title:       utils.SanitizeString(req.Title),
		Date:        req.Date,
		Description: utils.SanitizeString(req.Description),
	}

	if err := h.deps.Deadlines.Create(deadline); err != nil {
		h.logger.Error("Failed to create deadline", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create deadline")
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: deadline})
}

// ListDeadlines handles GET /api/v1/users/:user_id/deadlines. The
// response merges the system calendar for the current financial year
// with the user's custom deadlines, sorted by date.
func (h *Handlers) ListDeadlines(c *gin.Context) {
	userID := c.Param("user_id")

	system, financialYear, err := h.deps.Calendar.Deadlines("")
	if err != nil {
		h.logger.Error("Failed to build system calendar", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list deadlines")
		return
	}

	custom, err := h.deps.Deadlines.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list user deadlines", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list deadlines")
		return
	}

	merged := make([]*models.Deadline, 0, len(system)+len(custom))
	merged = append(merged, system...)
	for _, d := range custom {
		entry := &models.Deadline{
			Title:       d.Title,
			Date:        d.Date,
			Type:        "custom",
			Priority:    "medium",
			Description: d.Description,
			Category:    d.Category,
			DeadlineID:  d.ID,
			IsCompleted: d.IsCompleted,
		}
		h.deps.Calendar.Annotate(entry)
		merged = append(merged, entry)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})

	respondOK(c, gin.H{
		"financial_year": financialYear,
		"deadlines":      merged,
		"count":          len(merged),
	})
}

// CompleteDeadline handles PUT /api/v1/users/:user_id/deadlines/:id/complete
func (h *Handlers) CompleteDeadline(c *gin.Context) {
	id := c.Param("id")

	if err := h.deps.Deadlines.MarkCompleted(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "deadline not found")
			return
		}
		h.logger.Error("Failed to complete deadline", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to complete deadline")
		return
	}

	respondOK(c, gin.H{"completed": id})
}

// ChatRequest is the body for the assistant endpoint
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse pairs the assistant reply with its storage timestamp
type ChatResponse struct {
	Response          string          `json:"response"`
	FollowUpQuestions []string        `json:"follow_up_questions"`
	ActionChips       []ai.ActionChip `json:"action_chips"`
	ContextUsed       bool            `json:"context_used"`
	Timestamp         string          `json:"timestamp"`
}

// Chat handles POST /api/v1/users/:user_id/chat
func (h *Handlers) Chat(c *gin.Context) {
	userID := c.Param("user_id")

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "message is required")
		return
	}

	docs, err := h.deps.Documents.ListByUser(userID)
	if err != nil {
		h.logger.Error("Failed to list documents for chat context", zap.Error(err))
		docs = nil
	}
	profile, err := h.deps.Profiles.GetByUserID(userID)
	if err != nil {
		h.logger.Warn("Failed to load profile for chat context", zap.Error(err))
		profile = nil
	}

	contextInfo := ai.BuildContext(docs, profile)
	reply := h.deps.Assistant.Respond(c.Request.Context(), req.Message, contextInfo)

	msg := &models.ChatMessage{
		UserID:      userID,
		Message:     req.Message,
		Response:    reply.Response,
		ContextUsed: contextInfo != "",
		Timestamp:   time.Now().UTC(),
	}
	if err := h.deps.Chats.Append(msg); err != nil {
		h.logger.Warn("Failed to store chat message", zap.Error(err))
	}

	respondOK(c, ChatResponse{
		Response:          reply.Response,
		FollowUpQuestions: reply.FollowUpQuestions,
		ActionChips:       reply.ActionChips,
		ContextUsed:       msg.ContextUsed,
		Timestamp:         msg.Timestamp.Format(time.RFC3339),
	})
}

// ChatHistory handles GET /api/v1/users/:user_id/chat-history
func (h *Handlers) ChatHistory(c *gin.Context) {
	userID := c.Param("user_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	history, err := h.deps.Chats.Recent(userID, limit)
	if err != nil {
		h.logger.Error("Failed to load chat history", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load chat history")
		return
	}

	respondOK(c, gin.H{"messages": history, "count": len(history)})
}

// UpsertProfileRequest is the body for updating the taxpayer profile
type UpsertProfileRequest struct {
	Name    string `json:"name"`
	PAN     string `json:"pan"`
	Aadhaar string `json:"aadhaar"`
	DOB     string `json:"dob"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// UpsertProfile handles PUT /api/v1/users/:user_id/profile
func (h *Handlers) UpsertProfile(c *gin.Context) {
	userID := c.Param("user_id")

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid profile payload")
		return
	}

	if req.PAN != "" {
		if err := utils.ValidatePAN(req.PAN); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Email != "" {
		if err := utils.ValidateEmail(req.Email); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	profile := &models.UserProfile{
		UserID:  userID,
		Name:    utils.SanitizeString(req.Name),
		PAN:     strings.ToUpper(req.PAN),
		Aadhaar: req.Aadhaar,
		DOB:     req.DOB,
		Email:   req.Email,
		Mobile:  req.Mobile,
		Address: utils.SanitizeString(req.Address),
	}

	if err := h.deps.Profiles.Upsert(profile); err != nil {
		h.logger.Error("Failed to upsert profile", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}

	respondOK(c, profile)
}

// GetProfile handles GET /api/v1/users/:user_id/profile
func (h *Handlers) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")

	profile, err := h.deps.Profiles.GetByUserID(userID)
	if err != nil {
		h.logger.Error("Failed to load profile", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		respondError(c, http.StatusNotFound, "profile not found")
		return
	}

	respondOK(c, profile)
}
