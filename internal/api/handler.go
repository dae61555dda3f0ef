package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qshala/reimbursement-api/internal/apperrors"
	"github.com/qshala/reimbursement-api/internal/application/port"
	"github.com/qshala/reimbursement-api/internal/domain/entity"
	"github.com/qshala/reimbursement-api/internal/extraction"
	"github.com/qshala/reimbursement-api/internal/payout"
	"go.uber.org/zap"
)

// Handler exposes the extraction and payout workflows over HTTP.
type Handler struct {
	extraction *extraction.Service
	payout     *payout.Service
	models     port.ModelLister
	logger     *zap.Logger
}

// NewHandler creates an API handler.
func NewHandler(extractionSvc *extraction.Service, payoutSvc *payout.Service, models port.ModelLister, logger *zap.Logger) *Handler {
	return &Handler{
		extraction: extractionSvc,
		payout:     payoutSvc,
		models:     models,
		logger:     logger,
	}
}

// ProcessInvoice handles POST /api/process-invoice/: multipart image upload,
// blob storage, AI extraction.
func (h *Handler) ProcessInvoice(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to read uploaded file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	result, err := h.extraction.ExtractInvoice(c.Request.Context(), data, fileHeader.Filename, contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	invoicesProcessed.Inc()
	c.JSON(http.StatusOK, result)
}

// CreateReimbursement handles POST /api/create-reimbursement/: runs the
// three-step payout chain.
func (h *Handler) CreateReimbursement(c *gin.Context) {
	var req entity.ReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return
	}

	receipt, err := h.payout.CreateReimbursement(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	payoutsCreated.Inc()
	c.JSON(http.StatusOK, receipt)
}

// ListModels handles GET /api/list-models/ (diagnostic).
func (h *Handler) ListModels(c *gin.Context) {
	ids, err := h.models.ListModels(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": ids})
}

// Root handles GET /.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Qshala Reimbursement API"})
}

// respondError maps the error taxonomy onto HTTP status codes: bad input is
// 400, upstream failures are 502, everything else is 500. The body is always
// a {detail} envelope.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": validationErr.Message})
		return
	}

	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		requestErrors.WithLabelValues(upstreamErr.Service).Inc()
		c.JSON(http.StatusBadGateway, gin.H{"detail": upstreamErr.Error()})
		return
	}

	h.logger.Error("Unhandled request error", zap.Error(err))
	requestErrors.WithLabelValues("internal").Inc()
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
