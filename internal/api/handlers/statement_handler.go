package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cardsight/internal/dto"
	"cardsight/internal/models"
	"cardsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatementHandler struct {
	stmtService *service.StatementService
	logger      *zap.Logger
}

func NewStatementHandler(stmtService *service.StatementService, logger *zap.Logger) *StatementHandler {
	return &StatementHandler{
		stmtService: stmtService,
		logger:      logger,
	}
}

// ParseStatement godoc
// @Summary Parse a credit card statement
// @Description Upload a statement PDF, extract its text, and run structured extraction through the model
// @Tags statements
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Statement PDF"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/statements/parse [post]
func (h *StatementHandler) ParseStatement(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "File is required",
		})
	}

	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Only PDF files are supported",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Failed to open file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Failed to read file",
		})
	}

	st, err := h.stmtService.ParseStatement(c.Context(), data, file.Filename)
	if err != nil {
		h.logger.Error("Failed to parse statement",
			zap.String("file", file.Filename),
			zap.Error(err),
		)
		status, msg := banner(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
	}

	return c.Status(fiber.StatusCreated).JSON(toStatementResponse(st))
}

// GetStatement godoc
// @Summary Get a parsed statement
// @Description Fetch a parse result that is still within its session TTL
// @Tags statements
// @Produce json
// @Param id path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/statements/{id} [get]
func (h *StatementHandler) GetStatement(c *fiber.Ctx) error {
	st, err := h.fetch(c)
	if err != nil {
		status, msg := banner(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
	}

	return c.JSON(toStatementResponse(st))
}

// DeleteStatement godoc
// @Summary Discard a parsed statement
// @Description Drop a parse result from the session store before it expires
// @Tags statements
// @Param id path string true "Statement ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/statements/{id} [delete]
func (h *StatementHandler) DeleteStatement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid statement ID",
		})
	}

	if err := h.stmtService.DeleteStatement(id); err != nil {
		status, msg := banner(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ExportJSON godoc
// @Summary Download a statement as JSON
// @Description Serialize the validated record as {card, billing, transactions, summary}
// @Tags statements
// @Produce json
// @Param id path string true "Statement ID"
// @Success 200 {object} models.StatementRecord
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/statements/{id}/export/json [get]
func (h *StatementHandler) ExportJSON(c *fiber.Ctx) error {
	st, err := h.fetch(c)
	if err != nil {
		status, msg := banner(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
	}

	data, err := service.MarshalStatementJSON(&st.Record)
	if err != nil {
		h.logger.Error("Failed to export statement as JSON", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to export statement",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="statement_data.json"`)
	return c.Send(data)
}

// ExportCSV godoc
// @Summary Download statement transactions as CSV
// @Description One row per transaction plus a summary block
// @Tags statements
// @Produce text/csv
// @Param id path string true "Statement ID"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/statements/{id}/export/csv [get]
func (h *StatementHandler) ExportCSV(c *fiber.Ctx) error {
	st, err := h.fetch(c)
	if err != nil {
		status, msg := banner(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
	}

	data, err := service.MarshalTransactionsCSV(&st.Record)
	if err != nil {
		h.logger.Error("Failed to export statement as CSV", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to export statement",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	return c.Send(data)
}

func (h *StatementHandler) fetch(c *fiber.Ctx) (*models.ParsedStatement, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid statement ID", models.ErrStatementNotFound)
	}
	return h.stmtService.GetStatement(id)
}

// banner maps pipeline errors to the HTTP status and the human-readable
// message shown in the UI error banner.
func banner(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrDocumentUnreadable):
		return fiber.StatusUnprocessableEntity,
			"Document unreadable: the PDF is encrypted, corrupt, or contains no extractable text"
	case errors.Is(err, models.ErrConfigurationMissing):
		return fiber.StatusServiceUnavailable,
			"API key missing or invalid: set AI_API_KEY and restart"
	case errors.Is(err, models.ErrExtractionFailed):
		return fiber.StatusBadGateway,
			"Extraction failed: no structured data returned. Retry, or try a different file"
	case errors.Is(err, models.ErrStatementNotFound):
		return fiber.StatusNotFound,
			"Statement not found or session expired"
	default:
		return fiber.StatusInternalServerError, "Failed to process statement"
	}
}

func toStatementResponse(st *models.ParsedStatement) dto.StatementResponse {
	report := st.Report.Entries
	if report == nil {
		report = []models.ValidationEntry{}
	}

	return dto.StatementResponse{
		ID:        st.ID.String(),
		FileName:  st.FileName,
		FileSize:  st.FileSize,
		PageCount: st.PageCount,
		Truncated: st.Truncated,
		CreatedAt: st.CreatedAt.Format(time.RFC3339),
		Statement: st.Record,
		Report:    report,
	}
}
