package service

import (
	"context"
	"encoding/json"

	"github.com/courseforge/courseforge/internal/export"
	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
)

// NewExportService creates a new ExportService.
func NewExportService(store store.Store) *ExportService {
	return &ExportService{
		store: store,
	}
}

// ExportService renders whole courses into portable formats.
type ExportService struct {
	store store.Store
}

func (e *ExportService) courseTree(ctx context.Context, courseID string) (*model.Course, error) {
	return e.store.GetCourseTree(ctx, courseID)
}

// JSON exports the raw course tree.
func (e *ExportService) JSON(ctx context.Context, courseID string) (*model.Course, []byte, error) {
	course, err := e.courseTree(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return course, data, nil
}

// HTML exports the course as a standalone HTML document.
func (e *ExportService) HTML(ctx context.Context, courseID string) (*model.Course, string, error) {
	course, err := e.courseTree(ctx, courseID)
	if err != nil {
		return nil, "", err
	}
	html, err := export.HTML(course)
	if err != nil {
		return nil, "", err
	}
	return course, html, nil
}

// Markdown exports the course as a single markdown document.
func (e *ExportService) Markdown(ctx context.Context, courseID string) (*model.Course, string, error) {
	course, err := e.courseTree(ctx, courseID)
	if err != nil {
		return nil, "", err
	}
	md, err := export.Markdown(course)
	if err != nil {
		return nil, "", err
	}
	return course, md, nil
}

// PDF exports the course through the HTML renderer and headless Chrome.
func (e *ExportService) PDF(ctx context.Context, courseID string) (*model.Course, []byte, error) {
	course, html, err := e.HTML(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := export.PDF(ctx, html)
	if err != nil {
		return nil, nil, err
	}
	return course, pdf, nil
}
