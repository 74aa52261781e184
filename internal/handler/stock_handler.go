package handler

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/handler/dto"
)

// StockHandler handles vehicle stock requests.
type StockHandler struct {
	usecase domain.StockUsecase
	logger  *slog.Logger
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(usecase domain.StockUsecase, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// List returns a filtered, paginated page of vehicles.
// GET /api/v1/stock
func (h *StockHandler) List(ctx context.Context, c *app.RequestContext) {
	var req dto.StockListRequest
	if err := c.BindQuery(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	filter := req.ToFilter()
	vehicles, total, err := h.usecase.List(ctx, filter)
	if err != nil {
		h.logger.Error("failed to list stock", "error", err)
		ErrorResponse(c, err)
		return
	}

	page := filter.Offset/filter.Limit + 1
	SuccessResponse(c, dto.ToVehicleListResponse(vehicles, total, page, filter.Limit))
}

// Get returns a single vehicle by VIN.
// GET /api/v1/stock/:vin
func (h *StockHandler) Get(ctx context.Context, c *app.RequestContext) {
	vin := c.Param("vin")

	vehicle, err := h.usecase.Get(ctx, vin)
	if err != nil {
		h.logger.Error("failed to get vehicle", "error", err, "vin", vin)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToVehicleResponse(vehicle))
}

// Search runs a free-text search over the stock.
// GET /api/v1/stock/search
func (h *StockHandler) Search(ctx context.Context, c *app.RequestContext) {
	var req dto.StockListRequest
	if err := c.BindQuery(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	filter := req.ToFilter()
	vehicles, total, err := h.usecase.Search(ctx, filter)
	if err != nil {
		h.logger.Error("stock search failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	page := filter.Offset/filter.Limit + 1
	SuccessResponse(c, dto.ToVehicleListResponse(vehicles, total, page, filter.Limit))
}

// Stats returns aggregate stock figures.
// GET /api/v1/stock/stats
func (h *StockHandler) Stats(ctx context.Context, c *app.RequestContext) {
	stats, err := h.usecase.Stats(ctx)
	if err != nil {
		h.logger.Error("failed to compute stock stats", "error", err)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToStockStatsResponse(stats))
}

// Export streams the filtered stock as CSV.
// GET /api/v1/stock/export
func (h *StockHandler) Export(ctx context.Context, c *app.RequestContext) {
	var req dto.StockListRequest
	if err := c.BindQuery(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	var buf bytes.Buffer
	if err := h.usecase.ExportCSV(ctx, req.ToFilter(), &buf); err != nil {
		h.logger.Error("stock export failed", "error", err)
		ErrorResponse(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="stock.csv"`)
	c.Data(consts.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
