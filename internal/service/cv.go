// Package service holds the CV use cases: creation from templates, field edits, rendering,
// publishing and translation.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"cvdoc/internal/fields"
	"cvdoc/internal/model"
	"cvdoc/internal/otel"
	"cvdoc/internal/placeholder"
	"cvdoc/internal/render"
	"cvdoc/internal/repository"
	"cvdoc/internal/scene"
	"cvdoc/internal/storage"
	"cvdoc/internal/transform"
)

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("cv not found")
	ErrExportNotFound    = errors.New("export not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrLanguageRequired  = errors.New("target language is required")
	ErrEmptyDocument     = errors.New("cv has no document")
)

// DefaultTemplateID is used when a create request names no template.
const DefaultTemplateID = "modern_complete"

// Export formats.
const (
	FormatPDF = "pdf"
	FormatPNG = "png"
)

var contentTypes = map[string]string{
	FormatPDF: "application/pdf",
	FormatPNG: "image/png",
}

// CreateCVInput is the payload of a new CV. Data fills the template placeholders.
type CreateCVInput struct {
	Title      string            `json:"title"`
	TemplateID string            `json:"template_id"`
	Data       model.FieldRecord `json:"data"`
}

// UpdateDocumentInput replaces the document of a CV, typically after a canvas edit.
// An empty Title keeps the current one.
type UpdateDocumentInput struct {
	Title    string          `json:"title"`
	Document *scene.Document `json:"template_data"`
}

// CVListResult is the service-level DTO for paginated CVs.
type CVListResult struct {
	Items []model.CV `json:"data"`
	Total int        `json:"total"`
}

// FieldUpdateResult reports a sparse field edit.
type FieldUpdateResult struct {
	CV           *model.CV `json:"cv"`
	UpdatedNodes int       `json:"updated_nodes"`
}

// ExportResult is a rendered file ready to be streamed.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PublishResult points at a rendered file in object storage.
type PublishResult struct {
	Export    *model.Export `json:"export"`
	URL       string        `json:"url"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// ExportDownload is an open published file.
type ExportDownload struct {
	Export *model.Export
	Body   io.ReadCloser
}

// TranslateResult is the translated copy of a CV.
type TranslateResult struct {
	CV              *model.CV `json:"cv"`
	TranslatedNodes int       `json:"translated_nodes"`
}

// CVService defines the use cases for CVs.
type CVService interface {
	ListTemplates(ctx context.Context) ([]model.Template, error)
	GetTemplate(ctx context.Context, id string) (*model.Template, error)

	// Create resolves the template placeholders against in.Data and stores the result.
	Create(ctx context.Context, in CreateCVInput) (*model.CV, error)
	// Duplicate stores a copy titled "Copy - <title>".
	Duplicate(ctx context.Context, id string) (*model.CV, error)
	List(ctx context.Context, limit, offset int) (*CVListResult, error)
	// Get returns a CV and counts a view.
	Get(ctx context.Context, id string) (*model.CV, error)

	// UpdateFields applies the non-empty fields of upd to the document by node id.
	UpdateFields(ctx context.Context, id string, upd model.FieldRecord) (*FieldUpdateResult, error)
	// UpdateDocument replaces the document and re-extracts the form data from it.
	UpdateDocument(ctx context.Context, id string, in UpdateDocumentInput) (*model.CV, error)
	Extract(ctx context.Context, id string) (model.FieldRecord, error)
	Analyze(ctx context.Context, id string) (*fields.Analysis, error)

	// Export renders the CV and counts a download. dpi applies to png only; 0 uses the default.
	Export(ctx context.Context, id, format string, dpi float64) (*ExportResult, error)
	// Publish renders the CV into object storage and returns a presigned URL.
	Publish(ctx context.Context, id, format string, dpi float64) (*PublishResult, error)
	ListExports(ctx context.Context, id string) ([]model.Export, error)
	// OpenExport streams a published file. The caller closes Body.
	OpenExport(ctx context.Context, id, exportID string) (*ExportDownload, error)

	// Translate stores a translated copy of the CV. On service failure nothing is stored.
	Translate(ctx context.Context, id, language string) (*TranslateResult, error)

	// Delete removes published files, then the CV.
	Delete(ctx context.Context, id string) error
}

// Deps wires a CVService.
type Deps struct {
	Templates     repository.TemplateRepository
	CVs           repository.CVRepository
	Exports       repository.ExportRepository
	Store         storage.Storage
	Renderer      render.Renderer
	Transformer   transform.TextTransformer
	Metrics       *Metrics
	Logger        *slog.Logger
	PresignExpiry time.Duration
}

type cvService struct {
	templates     repository.TemplateRepository
	cvs           repository.CVRepository
	exports       repository.ExportRepository
	store         storage.Storage
	renderer      render.Renderer
	transformer   transform.TextTransformer
	metrics       *Metrics
	log           *slog.Logger
	presignExpiry time.Duration

	now   func() time.Time
	newID func() string
}

// NewCVService constructs a new CVService.
func NewCVService(d Deps) CVService {
	log := d.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	expiry := d.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &cvService{
		templates:     d.Templates,
		cvs:           d.CVs,
		exports:       d.Exports,
		store:         d.Store,
		renderer:      d.Renderer,
		transformer:   d.Transformer,
		metrics:       d.Metrics,
		log:           log.With("component", "service"),
		presignExpiry: expiry,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}
}

func (s *cvService) ListTemplates(ctx context.Context) ([]model.Template, error) {
	return s.templates.List(ctx)
}

func (s *cvService) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return s.templates.FindByID(ctx, id)
}

func (s *cvService) Create(ctx context.Context, in CreateCVInput) (cv *model.CV, err error) {
	if in.TemplateID == "" {
		in.TemplateID = DefaultTemplateID
	}
	ctx, end := otel.StartSpan(ctx, "cv.create", attribute.String("cv.template_id", in.TemplateID))
	defer func() { end(err) }()

	if err := fields.Validate(in.Data); err != nil {
		return nil, err
	}
	tpl, err := s.templates.FindByID(ctx, in.TemplateID)
	if err != nil {
		return nil, err
	}
	if tpl.Data == nil {
		return nil, ErrEmptyDocument
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "CV " + in.Data.Position
	}

	now := s.now()
	return s.cvs.Create(ctx, &model.CV{
		ID:         s.newID(),
		Title:      title,
		TemplateID: tpl.ID,
		Content: model.CVContent{
			TemplateData: placeholder.Resolve(tpl.Data, in.Data.Data()),
			FormData:     in.Data,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *cvService) Duplicate(ctx context.Context, id string) (*model.CV, error) {
	src, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return s.cvs.Create(ctx, &model.CV{
		ID:         s.newID(),
		Title:      "Copy - " + src.Title,
		TemplateID: src.TemplateID,
		Content:    cloneContent(src.Content),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// List returns paginated CVs without exposing repository types.
func (s *cvService) List(ctx context.Context, limit, offset int) (*CVListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.cvs.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &CVListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *cvService) Get(ctx context.Context, id string) (*model.CV, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cvs.IncrementViews(ctx, id); err != nil {
		s.log.Warn("view counter not updated", "event", "cv_view_count_failed", "cv_id", id, "error", err.Error())
	} else {
		cv.Views++
	}
	return cv, nil
}

func (s *cvService) UpdateFields(ctx context.Context, id string, upd model.FieldRecord) (*FieldUpdateResult, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if cv.Content.TemplateData == nil {
		return nil, ErrEmptyDocument
	}

	merged := fields.Merge(cv.Content.FormData, upd)
	if err := fields.Validate(merged); err != nil {
		return nil, err
	}

	doc := cv.Content.TemplateData.Clone()
	n := fields.Apply(doc, upd)

	cv.Content = model.CVContent{TemplateData: doc, FormData: merged}
	cv.UpdatedAt = s.now()
	if err := s.save(ctx, cv); err != nil {
		return nil, err
	}
	return &FieldUpdateResult{CV: cv, UpdatedNodes: n}, nil
}

func (s *cvService) UpdateDocument(ctx context.Context, id string, in UpdateDocumentInput) (*model.CV, error) {
	if in.Document == nil {
		return nil, ErrEmptyDocument
	}
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		cv.Title = t
	}
	cv.Content = model.CVContent{
		TemplateData: in.Document,
		FormData:     fields.Extract(in.Document),
	}
	cv.UpdatedAt = s.now()
	if err := s.save(ctx, cv); err != nil {
		return nil, err
	}
	return cv, nil
}

func (s *cvService) Extract(ctx context.Context, id string) (model.FieldRecord, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return model.FieldRecord{}, err
	}
	if cv.Content.TemplateData == nil {
		return model.FieldRecord{}, ErrEmptyDocument
	}
	return fields.Extract(cv.Content.TemplateData), nil
}

func (s *cvService) Analyze(ctx context.Context, id string) (*fields.Analysis, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	a := fields.Analyze(cv.Content.FormData)
	return &a, nil
}

func (s *cvService) Export(ctx context.Context, id, format string, dpi float64) (res *ExportResult, err error) {
	ctx, end := otel.StartSpan(ctx, "cv.export",
		attribute.String("cv.id", id),
		attribute.String("export.format", format),
	)
	defer func() { end(err) }()

	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.render(ctx, cv, format, dpi)
	if err != nil {
		return nil, err
	}

	if err := s.cvs.IncrementDownloads(ctx, id); err != nil {
		s.log.Warn("download counter not updated", "event", "cv_download_count_failed", "cv_id", id, "error", err.Error())
	}

	return &ExportResult{
		Filename:    SafeFilename(cv.Title, cv.ID, format),
		ContentType: contentTypes[format],
		Data:        data,
	}, nil
}

func (s *cvService) Publish(ctx context.Context, id, format string, dpi float64) (res *PublishResult, err error) {
	ctx, end := otel.StartSpan(ctx, "cv.publish",
		attribute.String("cv.id", id),
		attribute.String("export.format", format),
	)
	defer func() { end(err) }()

	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.render(ctx, cv, format, dpi)
	if err != nil {
		return nil, err
	}

	exportID := s.newID()
	key := storage.ExportKey(cv.ID, exportID, format)
	filename := SafeFilename(cv.Title, cv.ID, format)

	obj, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:               int64(len(data)),
		ContentType:        contentTypes[format],
		ContentDisposition: storage.AttachmentDisposition(filename),
		Metadata:           map[string]string{"cv-id": cv.ID},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	exp, err := s.exports.Create(ctx, &model.Export{
		ID:          exportID,
		CVID:        cv.ID,
		Format:      format,
		Filename:    filename,
		StoragePath: obj.Key,
		Size:        int64(len(data)),
		ContentType: contentTypes[format],
		CreatedAt:   s.now(),
	})
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	url, err := s.store.PresignGet(ctx, exp.StoragePath, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}
	return &PublishResult{Export: exp, URL: url, ExpiresAt: s.now().Add(s.presignExpiry)}, nil
}

func (s *cvService) ListExports(ctx context.Context, id string) ([]model.Export, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}
	return s.exports.ListByCV(ctx, id)
}

func (s *cvService) OpenExport(ctx context.Context, id, exportID string) (*ExportDownload, error) {
	list, err := s.ListExports(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != exportID {
			continue
		}
		body, _, err := s.store.Get(ctx, list[i].StoragePath)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return nil, ErrExportNotFound
			}
			return nil, fmt.Errorf("open export %s: %w", exportID, err)
		}
		return &ExportDownload{Export: &list[i], Body: body}, nil
	}
	return nil, ErrExportNotFound
}

func (s *cvService) Translate(ctx context.Context, id, language string) (res *TranslateResult, err error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, ErrLanguageRequired
	}
	ctx, end := otel.StartSpan(ctx, "cv.translate",
		attribute.String("cv.id", id),
		attribute.String("translate.language", language),
	)
	defer func() { end(err) }()

	src, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if src.Content.TemplateData == nil {
		return nil, ErrEmptyDocument
	}

	doc, n, err := transform.TranslateDocument(ctx, s.transformer, src.Content.TemplateData, transform.Options{TargetLanguage: language})
	if err != nil {
		return nil, fmt.Errorf("translate cv %s: %w", id, err)
	}

	now := s.now()
	cv, err := s.cvs.Create(ctx, &model.CV{
		ID:         s.newID(),
		Title:      fmt.Sprintf("CV - %s - %s", transform.LanguageName(language), src.Title),
		TemplateID: src.TemplateID,
		Content: model.CVContent{
			TemplateData: doc,
			FormData:     fields.Extract(doc),
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return &TranslateResult{CV: cv, TranslatedNodes: n}, nil
}

// Delete removes stored exports first; if one fails the CV row is kept so the objects stay
// reachable.
func (s *cvService) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	exports, err := s.exports.ListByCV(ctx, id)
	if err != nil {
		return err
	}
	for _, e := range exports {
		if err := s.store.Delete(ctx, e.StoragePath); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.cvs.Delete(ctx, id)
}

func (s *cvService) find(ctx context.Context, id string) (*model.CV, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	cv, err := s.cvs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cv, nil
}

func (s *cvService) save(ctx context.Context, cv *model.CV) error {
	if err := s.cvs.Update(ctx, cv); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *cvService) render(ctx context.Context, cv *model.CV, format string, dpi float64) (data []byte, err error) {
	if _, ok := contentTypes[format]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if cv.Content.TemplateData == nil {
		return nil, ErrEmptyDocument
	}

	start := time.Now()
	defer func() { s.metrics.observeRender(format, start, err) }()

	if format == FormatPNG {
		return s.renderer.RenderToBitmap(ctx, cv.Content.TemplateData, dpi)
	}
	return s.renderer.RenderToPage(ctx, cv.Content.TemplateData)
}

func cloneContent(c model.CVContent) model.CVContent {
	out := c
	if c.TemplateData != nil {
		out.TemplateData = c.TemplateData.Clone()
	}
	out.FormData.Experience = append([]model.Experience(nil), c.FormData.Experience...)
	out.FormData.Education = append([]model.Education(nil), c.FormData.Education...)
	out.FormData.TechnicalSkills = append([]string(nil), c.FormData.TechnicalSkills...)
	out.FormData.SoftSkills = append([]string(nil), c.FormData.SoftSkills...)
	out.FormData.Languages = append([]string(nil), c.FormData.Languages...)
	return out
}
