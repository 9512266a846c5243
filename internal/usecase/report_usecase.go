package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"immunization-tracker/internal/delivery/dto"
	"immunization-tracker/internal/domain/immunization"
	"immunization-tracker/internal/domain/repository"
	"immunization-tracker/internal/infrastructure/export"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnsupportedFormat = errors.New("unsupported report format, use xlsx or pdf")

// RendererFactory picks the renderer for a requested format.
type RendererFactory func(format string) (export.Renderer, error)

type ReportUsecase interface {
	ChildrenReport(ctx context.Context, format string, req *dto.ChildFilterRequest) (*dto.ReportFile, error)
	VaccinationCard(ctx context.Context, childID uuid.UUID, format string) (*dto.ReportFile, error)
}

type reportUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	childRepo repository.ChildRepository
	table     *immunization.Table
	clock     *Clock
	renderers RendererFactory
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	childRepo repository.ChildRepository,
	table *immunization.Table,
	clock *Clock,
	renderers RendererFactory,
) ReportUsecase {
	return &reportUsecase{
		db:        db,
		log:       log,
		childRepo: childRepo,
		table:     table,
		clock:     clock,
		renderers: renderers,
	}
}

func (u *reportUsecase) renderer(format string) (export.Renderer, error) {
	r, err := u.renderers(format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, err
	}
	return r, nil
}

// ChildrenReport exports the filtered roster: one row per child with the
// doses marked as given.
func (u *reportUsecase) ChildrenReport(ctx context.Context, format string, req *dto.ChildFilterRequest) (*dto.ReportFile, error) {
	renderer, err := u.renderer(format)
	if err != nil {
		return nil, err
	}
	filter, err := toChildFilter(req)
	if err != nil {
		return nil, err
	}

	children, err := u.childRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find children: %+v", err)
		return nil, err
	}

	doc := export.Document{
		Title:   "Registered Children Report",
		Meta:    []string{"Generated: " + u.clock.Today().Format(dateLayout)},
		Headers: []string{"Name", "Date of Birth", "Gender", "Residence", "Completed Vaccines"},
		Widths:  []float64{2, 1.2, 1, 1.5, 4},
	}
	if desc := describeFilter(req); desc != "" {
		doc.Meta = append(doc.Meta, "Filter: "+desc)
	}
	doc.Meta = append(doc.Meta, fmt.Sprintf("Children: %d", len(children)))

	var warnings []string
	for i := range children {
		c := &children[i]
		status, w := decodeChildStatus(u.log, c)
		warnings = append(warnings, childWarnings(c, w)...)
		doc.Rows = append(doc.Rows, []string{
			c.Name,
			c.DateOfBirth.Format(dateLayout),
			c.Gender,
			c.Residence,
			strings.Join(status.CompletedLabels(u.table), ", "),
		})
	}

	for _, w := range warnings {
		doc.Meta = append(doc.Meta, "Warning: "+w)
	}

	return u.render(renderer, doc, "registered_children", warnings)
}

// VaccinationCard exports one child's full schedule with due dates and
// status.
func (u *reportUsecase) VaccinationCard(ctx context.Context, childID uuid.UUID, format string) (*dto.ReportFile, error) {
	renderer, err := u.renderer(format)
	if err != nil {
		return nil, err
	}

	child, err := u.childRepo.FindByID(ctx, u.db, childID)
	if err != nil {
		u.log.Warnf("Failed to find child: %+v", err)
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	status, warnings := decodeChildStatus(u.log, child)
	warnings = childWarnings(child, warnings)
	today := u.clock.Today()

	meta := []string{
		"Date of Birth: " + child.DateOfBirth.Format(dateLayout),
		"Gender: " + child.Gender,
	}
	if child.Residence != "" {
		meta = append(meta, "Residence: "+child.Residence)
	}
	meta = append(meta, "Generated: "+today.Format(dateLayout))

	doc := export.Document{
		Title:   "Vaccination Card: " + child.Name,
		Meta:    meta,
		Headers: []string{"Vaccine", "Dose", "Due Date", "Status"},
		Widths:  []float64{2, 1.5, 1.2, 1.2},
	}

	for _, w := range warnings {
		doc.Meta = append(doc.Meta, "Warning: "+w)
	}

	for _, d := range immunization.DueDates(child.DateOfBirth, u.table) {
		done := status.Completed(d.Occasion)
		doc.Rows = append(doc.Rows, []string{
			d.Occasion.Vaccine,
			d.Occasion.Offset.String(),
			d.Date.Format(dateLayout),
			statusText(immunization.Classify(d.Date, today, done), done),
		})
	}

	return u.render(renderer, doc, "vaccination_card_"+slug(child.Name), warnings)
}

func (u *reportUsecase) render(renderer export.Renderer, doc export.Document, basename string, warnings []string) (*dto.ReportFile, error) {
	data, err := renderer.Render(doc)
	if err != nil {
		u.log.Warnf("Failed to render %s report: %+v", renderer.Extension(), err)
		return nil, err
	}

	return &dto.ReportFile{
		Filename:    basename + "." + renderer.Extension(),
		ContentType: renderer.ContentType(),
		Data:        data,
		Warnings:    warnings,
	}, nil
}

func statusText(b immunization.Bucket, done bool) string {
	switch {
	case done:
		return "Given"
	case b == immunization.BucketDueToday:
		return "Due today"
	case b == immunization.BucketOverdue:
		return "Overdue"
	case b == immunization.BucketUpcoming:
		return "Due soon"
	default:
		return "Not yet due"
	}
}

func describeFilter(req *dto.ChildFilterRequest) string {
	if req == nil {
		return ""
	}
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("name", req.Name)
	add("gender", req.Gender)
	add("residence", req.Residence)
	add("born_from", req.BornFrom)
	add("born_to", req.BornTo)
	return strings.Join(parts, ", ")
}

func slug(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	s := strings.TrimSuffix(b.String(), "_")
	if s == "" {
		return "child"
	}
	return s
}
