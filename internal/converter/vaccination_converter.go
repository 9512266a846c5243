package converter

import (
	"time"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/entity"
	"immunization-tracker/internal/domain/immunization"
)

// VaccinationStatusToResponse lays out every occasion of the table for one
// child, in schedule order, with its due date and bucket relative to today.
func VaccinationStatusToResponse(child *entity.Child, table *immunization.Table, status immunization.StatusMap, today time.Time) *dto.VaccinationStatusResponse {
	dues := immunization.DueDates(child.DateOfBirth, table)

	resp := &dto.VaccinationStatusResponse{
		ChildID:     child.ID,
		ChildName:   child.Name,
		DateOfBirth: child.DateOfBirth.Format(dateLayout),
		Today:       today.Format(dateLayout),
		Doses:       make([]dto.DoseStatusResponse, 0, len(dues)),
		Total:       len(dues),
		Unknown:     status.Unknown(table),
	}

	for _, d := range dues {
		done := status.Completed(d.Occasion)
		if done {
			resp.Completed++
		}
		resp.Doses = append(resp.Doses, dto.DoseStatusResponse{
			Label:     d.Occasion.Label(),
			Vaccine:   d.Occasion.Vaccine,
			Offset:    d.Occasion.Offset.String(),
			DueDate:   d.Date.Format(dateLayout),
			Completed: done,
			Status:    string(immunization.Classify(d.Date, today, done)),
		})
	}

	return resp
}

func ScheduleToResponse(table *immunization.Table) *dto.ScheduleResponse {
	vaccines := table.Vaccines()
	resp := &dto.ScheduleResponse{Vaccines: make([]dto.ScheduleVaccineResponse, len(vaccines))}
	for i, v := range vaccines {
		offsets := make([]string, len(v.Offsets))
		for j, o := range v.Offsets {
			offsets[j] = o.String()
		}
		resp.Vaccines[i] = dto.ScheduleVaccineResponse{Vaccine: v.Name, Offsets: offsets}
	}
	return resp
}
