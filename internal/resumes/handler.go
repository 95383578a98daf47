package resumes

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"careerarchitect/internal/extract"
	"careerarchitect/internal/render"
	"careerarchitect/internal/sections"
	"careerarchitect/internal/shared/server/middleware"
	"careerarchitect/internal/shared/server/respond"
	"careerarchitect/internal/shared/telemetry"
)

// DefaultMaxUploadBytes bounds upload bodies when the handler is built
// without an explicit limit.
const DefaultMaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/upload", h.upload)
	rg.POST("/resume/manual", h.manual)
	rg.POST("/resume/enhance", h.enhance)
	rg.POST("/resume/generate/:id", h.generate)
	rg.GET("/resume/:id", h.get)
	rg.GET("/resume/:id/original", h.original)
	rg.GET("/resumes", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "file_too_large",
				fmt.Sprintf("File exceeds the %d byte upload limit", tooLarge.Limit), nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	format, err := extract.FormatFromName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unsupported_format", "Only PDF and DOCX files are supported", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	out, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, extract.ErrExtraction) {
			telemetry.Warn("resume.extract_failed", map[string]any{
				"format": string(format),
				"error":  err.Error(),
			})
			msg := fmt.Sprintf("Failed to extract text from %s", strings.ToUpper(string(format)))
			respond.Error(c, http.StatusBadRequest, "extraction_failed", msg, nil)
			return
		}
		h.fail(c, err)
		return
	}

	c.Set(middleware.ResumeIDKey, out.Resume.ID)
	respond.OK(c, uploadResponse{
		ResumeID: out.Resume.ID,
		Text:     preview(out.Resume.RawText),
		Sections: out.Resume.Sections,
		ATSScore: out.Score,
	})
}

func (h *Handler) manual(c *gin.Context) {
	var req manualRequest
	if !respond.BindJSON(c, &req) {
		return
	}

	out, err := h.Svc.CreateManual(c.Request.Context(), middleware.UserIDFromContext(c), ManualInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Summary:    req.Summary,
		Experience: req.Experience,
		Education:  req.Education,
		Skills:     req.Skills,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Set(middleware.ResumeIDKey, out.Resume.ID)
	respond.OK(c, manualResponse{
		ResumeID: out.Resume.ID,
		Sections: out.Resume.Sections,
		ATSScore: out.Score,
	})
}

func (h *Handler) enhance(c *gin.Context) {
	var req enhanceRequest
	if !respond.BindJSON(c, &req) {
		return
	}
	c.Set(middleware.ResumeIDKey, req.ResumeID)

	out, err := h.Svc.Enhance(c.Request.Context(), middleware.UserIDFromContext(c), req.ResumeID, req.EnhancementType)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond.OK(c, enhanceResponse{
		EnhancedResumeID: out.Enhanced.ID,
		EnhancedText:     out.Enhanced.EnhancedText,
		EnhancedSections: out.Enhanced.EnhancedSections,
		NewATSScore:      out.Score,
	})
}

func (h *Handler) get(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	resume, score, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), resumeID)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, getResponse{Resume: resume, ATSScore: score})
}

func (h *Handler) generate(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)

	data, format, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), id, c.DefaultQuery("format", "pdf"))
	if err != nil {
		if errors.Is(err, render.ErrUnsupportedFormat) {
			respond.Error(c, http.StatusBadRequest, "unsupported_format", "Format must be 'pdf' or 'docx'", nil)
			return
		}
		h.fail(c, err)
		return
	}
	respond.OK(c, generateResponse{FileData: hex.EncodeToString(data), Format: string(format)})
}

func (h *Handler) original(c *gin.Context) {
	resumeID := c.Param("id")
	c.Set(middleware.ResumeIDKey, resumeID)

	resume, rc, err := h.Svc.Original(c.Request.Context(), middleware.UserIDFromContext(c), resumeID)
	if err != nil {
		if errors.Is(err, ErrNoOriginal) {
			respond.Error(c, http.StatusNotFound, "not_found", "No uploaded file for this resume", nil)
			return
		}
		h.fail(c, err)
		return
	}
	defer rc.Close()

	var contentType string
	if format, err := extract.FormatFromName(resume.FileName); err == nil {
		contentType = render.ContentType(render.Format(format))
	}
	respond.Attachment(c, resume.FileName, contentType, rc)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]listItem, 0, len(list))
	for _, r := range list {
		resp = append(resp, listItem{
			ResumeID:  r.ID,
			FullName:  r.FullName,
			FileName:  r.FileName,
			Sections:  sections.Names(r.Sections),
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	respond.OK(c, resp)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "Unauthorized", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}
