package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/storekit/backend/internal/application/report"
)

// ReportHandler handles reporting and analytics endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// queryPeriod parses the optional from/to query parameters. Zero values
// are passed through so the service can apply its defaults.
func queryPeriod(c *gin.Context) (time.Time, time.Time, error) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}

// parseDateParam accepts RFC 3339 timestamps and plain dates.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func queryInt(c *gin.Context, name string, fallback int64) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// SalesSummary returns aggregate sales figures for a period
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	from, to, err := queryPeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected RFC 3339 or YYYY-MM-DD")
		return
	}

	resp, err := h.reportService.GetSalesSummary(c.Request.Context(), owner, from, to)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// DailySalesTrend returns per-day sales totals for a period
func (h *ReportHandler) DailySalesTrend(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	from, to, err := queryPeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected RFC 3339 or YYYY-MM-DD")
		return
	}

	resp, err := h.reportService.GetDailySalesTrend(c.Request.Context(), owner, from, to)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ProductSalesRanking returns the top selling products for a period
func (h *ReportHandler) ProductSalesRanking(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	from, to, err := queryPeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected RFC 3339 or YYYY-MM-DD")
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		h.BadRequest(c, "Invalid limit")
		return
	}

	resp, err := h.reportService.GetProductSalesRanking(c.Request.Context(), owner, from, to, int(limit))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CustomerSalesRanking returns the top customers by revenue for a period
func (h *ReportHandler) CustomerSalesRanking(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	from, to, err := queryPeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected RFC 3339 or YYYY-MM-DD")
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		h.BadRequest(c, "Invalid limit")
		return
	}

	resp, err := h.reportService.GetCustomerSalesRanking(c.Request.Context(), owner, from, to, int(limit))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// SupplierPurchaseRanking returns the top suppliers by spend for a period
func (h *ReportHandler) SupplierPurchaseRanking(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	from, to, err := queryPeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected RFC 3339 or YYYY-MM-DD")
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		h.BadRequest(c, "Invalid limit")
		return
	}

	resp, err := h.reportService.GetSupplierPurchaseRanking(c.Request.Context(), owner, from, to, int(limit))
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// InventorySummary returns aggregate stock valuation figures
func (h *ReportHandler) InventorySummary(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	threshold, err := queryInt(c, "threshold", 0)
	if err != nil {
		h.BadRequest(c, "Invalid threshold")
		return
	}

	resp, err := h.reportService.GetInventorySummary(c.Request.Context(), owner, threshold)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// LowStockProducts returns products at or below the stock threshold
func (h *ReportHandler) LowStockProducts(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	threshold, err := queryInt(c, "threshold", 0)
	if err != nil {
		h.BadRequest(c, "Invalid threshold")
		return
	}

	resp, err := h.reportService.GetLowStockProducts(c.Request.Context(), owner, threshold)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ProfitLoss returns a profit and loss statement for a period
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	from, to, err := queryPeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected RFC 3339 or YYYY-MM-DD")
		return
	}

	resp, err := h.reportService.GetProfitLoss(c.Request.Context(), owner, from, to)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExpenseBreakdown returns expenses grouped by category for a period
func (h *ReportHandler) ExpenseBreakdown(c *gin.Context) {
	owner, err := ownerID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	from, to, err := queryPeriod(c)
	if err != nil {
		h.BadRequest(c, "Invalid date, expected RFC 3339 or YYYY-MM-DD")
		return
	}

	resp, err := h.reportService.GetExpenseBreakdown(c.Request.Context(), owner, from, to)
	if err != nil {
		h.DomainError(c, err)
		return
	}
	h.Success(c, resp)
}
