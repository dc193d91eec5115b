// Package reporthdl holds the HTTP handlers of the report domain:
// dashboard summary, dataset views, cache invalidation and export.
package reporthdl

import (
	"fmt"

	basehdl "treesure/internal/api/base/handler"
	reportdto "treesure/internal/api/report/dto"
	reportsvc "treesure/internal/api/report/service"
	"treesure/internal/common"
	"treesure/internal/global"
	"treesure/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// ReportHandler serves the reporting endpoints.
type ReportHandler struct {
	ReportService *reportsvc.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler() (*ReportHandler, error) {
	svc, err := reportsvc.NewReportService()
	if err != nil {
		return nil, fmt.Errorf("create ReportService: %w", err)
	}
	return &ReportHandler{ReportService: svc}, nil
}

// sessionID reads the session identity set by the auth middleware.
func sessionID(c fiber.Ctx) string {
	if sid, ok := c.Locals("session_id").(string); ok {
		return sid
	}
	return ""
}

func bindFilterParams(c fiber.Ctx) (reportdto.FilterQueryParams, error) {
	var params reportdto.FilterQueryParams
	if err := c.Bind().Query(&params); err != nil {
		return params, common.NewError(common.ErrCodeValidationFormat,
			"Invalid filter parameters", common.StatusBadRequest, err.Error())
	}
	return params, nil
}

// HandleSummary returns the aggregated dashboard payload for the session,
// with the active filters applied.
func (h *ReportHandler) HandleSummary(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindFilterParams(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		summary := h.ReportService.GetSummary(c.Context(), sessionID(c), params)
		basehdl.HandleResponse(c, summary, nil)
		return nil
	})
}

// HandleTrees returns the filtered tree inventory.
func (h *ReportHandler) HandleTrees(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindFilterParams(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, h.ReportService.GetTrees(c.Context(), sessionID(c), params), nil)
		return nil
	})
}

// HandleApplications returns the filtered permit applications.
func (h *ReportHandler) HandleApplications(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindFilterParams(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, h.ReportService.GetApplications(c.Context(), sessionID(c), params), nil)
		return nil
	})
}

// HandleAppointments returns the filtered appointments.
func (h *ReportHandler) HandleAppointments(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params, err := bindFilterParams(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, h.ReportService.GetAppointments(c.Context(), sessionID(c), params), nil)
		return nil
	})
}

// HandleFilterOptions returns the distinct values of the filterable
// dimensions for the dropdowns.
func (h *ReportHandler) HandleFilterOptions(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		basehdl.HandleResponse(c, h.ReportService.GetFilterOptions(c.Context(), sessionID(c)), nil)
		return nil
	})
}

// HandleInvalidate drops the session's cached snapshot so the next view
// refetches from the store. With a dataset path segment only that
// dataset and the snapshot bookkeeping are dropped.
func (h *ReportHandler) HandleInvalidate(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		sid := sessionID(c)
		var removed int
		switch dataset := c.Params("dataset"); dataset {
		case "", "all":
			removed = h.ReportService.Invalidate(sid)
		default:
			removed = h.ReportService.InvalidateDataset(sid, dataset)
		}
		basehdl.HandleResponse(c, fiber.Map{"removed": removed}, nil)
		return nil
	})
}

// HandleExport renders the posted table into the requested format.
func (h *ReportHandler) HandleExport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req reportdto.ExportRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Invalid export request", common.StatusBadRequest, err.Error()))
			return nil
		}
		if err := global.Validate.Struct(req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				err.Error(), common.StatusBadRequest, nil))
			return nil
		}

		response, err := h.ReportService.Export(req)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogExport(req.Tab, req.Format, len(req.Rows), c)
		basehdl.HandleResponse(c, response, nil)
		return nil
	})
}
