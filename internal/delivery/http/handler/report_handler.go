package handler

import (
	"net/http"
	"strconv"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/infrastructure/export"
	"immunization-tracker/internal/usecase"
	"immunization-tracker/pkg/response"
	"immunization-tracker/pkg/validator"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewReportHandler(reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

func formatParam(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return export.FormatXLSX
}

// ReportWarningsHeader carries the number of children whose stored status
// could not be read. The warnings themselves are printed in the document.
const ReportWarningsHeader = "X-Report-Warnings"

func writeReport(w http.ResponseWriter, file *dto.ReportFile) {
	if len(file.Warnings) > 0 {
		w.Header().Set(ReportWarningsHeader, strconv.Itoa(len(file.Warnings)))
	}
	response.File(w, file.ContentType, file.Filename, file.Data)
}

// ChildrenReport downloads the filtered roster. The filter parameters are the
// same as for listing children.
func (h *ReportHandler) ChildrenReport(w http.ResponseWriter, r *http.Request) {
	filter := childFilterFromQuery(r.URL.Query())
	if err := h.validator.Validate(&filter); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, err := h.reportUsecase.ChildrenReport(r.Context(), formatParam(r), &filter)
	if err != nil {
		switch err {
		case usecase.ErrUnsupportedFormat, usecase.ErrInvalidDateFormat, usecase.ErrInvalidDateRange, usecase.ErrInvalidGender:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to generate report")
		}
		return
	}

	writeReport(w, file)
}

func (h *ReportHandler) VaccinationCard(w http.ResponseWriter, r *http.Request) {
	id, ok := childID(w, r)
	if !ok {
		return
	}

	file, err := h.reportUsecase.VaccinationCard(r.Context(), id, formatParam(r))
	if err != nil {
		switch err {
		case usecase.ErrUnsupportedFormat:
			response.BadRequest(w, err.Error())
		case usecase.ErrChildNotFound:
			response.NotFound(w, "Child not found")
		default:
			response.InternalServerError(w, "Failed to generate vaccination card")
		}
		return
	}

	writeReport(w, file)
}
