package handler

import (
	"net/http"

	"graphene-trace-portal/internal/usecase"
	"graphene-trace-portal/pkg/response"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// Dashboard returns user and role counts
// @Summary Admin dashboard statistics
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportUsecase.Dashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard statistics")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard statistics retrieved successfully", stats)
}

// KPIDetails returns the rows behind one dashboard figure
// @Summary KPI details
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param type path string true "clinicians, patients or total"
// @Success 200 {object} response.Response
// @Router /admin/kpi/{type} [get]
func (h *ReportHandler) KPIDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.reportUsecase.KPIDetails(r.Context(), mux.Vars(r)["type"])
	if err != nil {
		response.InternalServerError(w, "Failed to get KPI details")
		return
	}

	response.JSON(w, http.StatusOK, details)
}
