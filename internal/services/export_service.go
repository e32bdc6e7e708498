package services

import (
	"bytes"
	"context"

	"launchpad_backend/internal/export"
	"launchpad_backend/internal/logger"
	"launchpad_backend/internal/storage"
	"launchpad_backend/pkg/apperrors"
)

type ExportService interface {
	// Render returns the plan body and its content type.
	Render(ctx context.Context, userID, projectID, format string) ([]byte, string, error)
	// Publish stores the HTML rendition and returns its URL.
	Publish(ctx context.Context, userID, projectID string) (*ExportResult, error)
}

type ExportResult struct {
	URL    string `json:"url"`
	Path   string `json:"path"`
	Format string `json:"format"`
}

type ExportServiceImpl struct {
	projects ProjectService
	storage  storage.Storage
}

func NewExportService(projects ProjectService, store storage.Storage) ExportService {
	return &ExportServiceImpl{projects: projects, storage: store}
}

func (s *ExportServiceImpl) Render(ctx context.Context, userID, projectID, format string) ([]byte, string, error) {
	if format == "" {
		format = export.FormatMarkdown
	}
	contentType := export.ContentType(format)
	if contentType == "" {
		return nil, "", apperrors.ErrUnsupportedFormat.WithDetails(map[string]string{"format": format})
	}

	project, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		return nil, "", err
	}

	body, err := export.Render(project, format)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return body, contentType, nil
}

func (s *ExportServiceImpl) Publish(ctx context.Context, userID, projectID string) (*ExportResult, error) {
	body, contentType, err := s.Render(ctx, userID, projectID, export.FormatHTML)
	if err != nil {
		return nil, err
	}

	path := "projects/" + projectID + "/plan.html"
	if err := s.storage.Save(ctx, path, bytes.NewReader(body), contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Plan exported", "project_id", projectID, "path", path)
	return &ExportResult{URL: url, Path: path, Format: export.FormatHTML}, nil
}
