package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mahameru/inventory/internal/service/reporting"
)

// ReportHandler serves the dashboard summary and the CSV downloads.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the reporting HTTP adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Dashboard returns the landing-page aggregate.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building dashboard", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// StockCSV streams the stock report as a CSV attachment.
func (h *ReportHandler) StockCSV(c *gin.Context) {
	h.serveCSV(c, "laporan-stok.csv", h.svc.StockReportCSV)
}

// ReceiptsCSV streams the receipts report as a CSV attachment.
func (h *ReportHandler) ReceiptsCSV(c *gin.Context) {
	h.serveCSV(c, "laporan-penerimaan.csv", h.svc.ReceiptsReportCSV)
}

// IssuancesCSV streams the issuances report as a CSV attachment.
func (h *ReportHandler) IssuancesCSV(c *gin.Context) {
	h.serveCSV(c, "laporan-pengeluaran.csv", h.svc.IssuancesReportCSV)
}

func (h *ReportHandler) serveCSV(c *gin.Context, filename string, build func(context.Context) ([]byte, error)) {
	data, err := build(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building csv report", zap.String("filename", filename), zap.Error(err))
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
