package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"cvdoc/internal/fields"
	"cvdoc/internal/model"
	renderMocks "cvdoc/internal/render/mocks"
	"cvdoc/internal/repository"
	repoMocks "cvdoc/internal/repository/mocks"
	"cvdoc/internal/scene"
	"cvdoc/internal/storage"
	storeMocks "cvdoc/internal/storage/mocks"
	"cvdoc/internal/templates"
	"cvdoc/internal/transform"
	transformMocks "cvdoc/internal/transform/mocks"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type testDeps struct {
	templates   *repoMocks.MockTemplateRepository
	cvs         *repoMocks.MockCVRepository
	exports     *repoMocks.MockExportRepository
	store       *storeMocks.MockStorage
	renderer    *renderMocks.MockRenderer
	transformer *transformMocks.MockTextTransformer
	metrics     *Metrics
}

func newTestService(t *testing.T) (*cvService, *testDeps) {
	t.Helper()
	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	d := &testDeps{
		templates:   new(repoMocks.MockTemplateRepository),
		cvs:         new(repoMocks.MockCVRepository),
		exports:     new(repoMocks.MockExportRepository),
		store:       new(storeMocks.MockStorage),
		renderer:    new(renderMocks.MockRenderer),
		transformer: new(transformMocks.MockTextTransformer),
		metrics:     metrics,
	}
	svc := NewCVService(Deps{
		Templates:     d.templates,
		CVs:           d.cvs,
		Exports:       d.exports,
		Store:         d.store,
		Renderer:      d.renderer,
		Transformer:   d.transformer,
		Metrics:       d.metrics,
		PresignExpiry: 10 * time.Minute,
	}).(*cvService)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "new-id" }

	t.Cleanup(func() {
		d.templates.AssertExpectations(t)
		d.cvs.AssertExpectations(t)
		d.exports.AssertExpectations(t)
		d.store.AssertExpectations(t)
		d.renderer.AssertExpectations(t)
		d.transformer.AssertExpectations(t)
	})
	return svc, d
}

func templateDoc() *scene.Document {
	doc := scene.New(595, 842)
	doc.AddLayer(scene.NewLayer("main"))
	doc.AppendNode(0, scene.NewRect("header_bg", 0, 0, 595, 120, "#2c3e50"))
	doc.AppendNode(0, scene.NewText("full_name", 40, 30, "{{full_name}}"))
	doc.AppendNode(0, scene.NewText("position", 40, 70, "{{position}}"))
	doc.AppendNode(0, scene.NewText("email", 40, 140, "✉ {{email}}"))
	doc.AppendNode(0, scene.NewText("exp1_date", 40, 200, "{{experience[0].start_date}} - {{experience[0].end_date}}"))
	return doc
}

func validRecord() model.FieldRecord {
	return model.FieldRecord{
		FullName: "Nguyen Van A",
		Position: "Backend Engineer",
		Email:    "a@example.com",
		Experience: []model.Experience{
			{Company: "Acme", StartDate: "2020", EndDate: "2023"},
		},
	}
}

func storedCV() *model.CV {
	rec := validRecord()
	return &model.CV{
		ID:         "cv-1",
		Title:      "My CV",
		TemplateID: "modern_gray",
		Content: model.CVContent{
			TemplateData: resolvedDoc(rec),
			FormData:     rec,
		},
	}
}

func resolvedDoc(rec model.FieldRecord) *scene.Document {
	doc := templateDoc()
	for _, n := range doc.TextNodes() {
		switch n.ID {
		case "full_name":
			n.Replace(rec.FullName)
		case "position":
			n.Replace(rec.Position)
		case "email":
			n.Replace("✉ " + rec.Email)
		case "exp1_date":
			n.Replace("2020 - 2023")
		}
	}
	return doc
}

func textOf(t *testing.T, doc *scene.Document, id string) string {
	t.Helper()
	n, ok := doc.FindByID(id)
	require.True(t, ok, "node %s", id)
	return n.(*scene.Text).Text
}

func TestCVService_Create(t *testing.T) {
	tests := []struct {
		name       string
		in         CreateCVInput
		setupMocks func(d *testDeps)
		check      func(t *testing.T, cv *model.CV)
		wantErr    error
	}{
		{
			name: "resolves placeholders",
			in:   CreateCVInput{Title: " Backend CV ", TemplateID: "modern_gray", Data: validRecord()},
			setupMocks: func(d *testDeps) {
				d.templates.On("FindByID", mock.Anything, "modern_gray").
					Return(&model.Template{ID: "modern_gray", Data: templateDoc()}, nil)
				d.cvs.On("Create", mock.Anything, mock.AnythingOfType("*model.CV")).
					Return(func(_ context.Context, cv *model.CV) *model.CV { return cv }, nil)
			},
			check: func(t *testing.T, cv *model.CV) {
				assert.Equal(t, "new-id", cv.ID)
				assert.Equal(t, "Backend CV", cv.Title)
				assert.Equal(t, fixedNow, cv.CreatedAt)
				doc := cv.Content.TemplateData
				assert.Equal(t, "Nguyen Van A", textOf(t, doc, "full_name"))
				assert.Equal(t, "✉ a@example.com", textOf(t, doc, "email"))
				assert.Equal(t, "2020 - 2023", textOf(t, doc, "exp1_date"))
			},
		},
		{
			name: "defaults template and title",
			in:   CreateCVInput{Data: validRecord()},
			setupMocks: func(d *testDeps) {
				d.templates.On("FindByID", mock.Anything, DefaultTemplateID).
					Return(&model.Template{ID: DefaultTemplateID, Data: templateDoc()}, nil)
				d.cvs.On("Create", mock.Anything, mock.AnythingOfType("*model.CV")).
					Return(func(_ context.Context, cv *model.CV) *model.CV { return cv }, nil)
			},
			check: func(t *testing.T, cv *model.CV) {
				assert.Equal(t, "CV Backend Engineer", cv.Title)
				assert.Equal(t, DefaultTemplateID, cv.TemplateID)
			},
		},
		{
			name:       "invalid record",
			in:         CreateCVInput{Data: model.FieldRecord{FullName: "A"}},
			setupMocks: func(d *testDeps) {},
			wantErr:    fields.ErrInvalidRecord,
		},
		{
			name: "unknown template",
			in:   CreateCVInput{TemplateID: "nope", Data: validRecord()},
			setupMocks: func(d *testDeps) {
				d.templates.On("FindByID", mock.Anything, "nope").
					Return(nil, templates.ErrTemplateNotFound)
			},
			wantErr: templates.ErrTemplateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(t)
			tt.setupMocks(d)

			cv, err := svc.Create(context.Background(), tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cv)
		})
	}
}

func TestCVService_Get(t *testing.T) {
	t.Run("counts a view", func(t *testing.T) {
		svc, d := newTestService(t)
		d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
		d.cvs.On("IncrementViews", mock.Anything, "cv-1").Return(nil)

		cv, err := svc.Get(context.Background(), "cv-1")

		require.NoError(t, err)
		assert.Equal(t, 1, cv.Views)
	})

	t.Run("view counter failure is not fatal", func(t *testing.T) {
		svc, d := newTestService(t)
		d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
		d.cvs.On("IncrementViews", mock.Anything, "cv-1").Return(errors.New("db down"))

		cv, err := svc.Get(context.Background(), "cv-1")

		require.NoError(t, err)
		assert.Equal(t, 0, cv.Views)
	})

	t.Run("not found", func(t *testing.T) {
		svc, d := newTestService(t)
		d.cvs.On("FindByID", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("id required", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Get(context.Background(), "")

		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestCVService_List(t *testing.T) {
	svc, d := newTestService(t)
	d.cvs.On("List", mock.Anything, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.CV]{Items: []model.CV{*storedCV()}, Total: 1}, nil)

	res, err := svc.List(context.Background(), 0, -5)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}

func TestCVService_UpdateFields(t *testing.T) {
	tests := []struct {
		name       string
		upd        model.FieldRecord
		setupMocks func(d *testDeps)
		wantNodes  int
		wantErr    error
	}{
		{
			name: "sparse update",
			upd:  model.FieldRecord{FullName: "Tran Thi B", Email: "b@example.com"},
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.cvs.On("Update", mock.Anything, mock.MatchedBy(func(cv *model.CV) bool {
					doc := cv.Content.TemplateData
					n, _ := doc.FindByID("position")
					e, _ := doc.FindByID("email")
					return cv.Content.FormData.FullName == "Tran Thi B" &&
						cv.Content.FormData.Position == "Backend Engineer" &&
						n.(*scene.Text).Text == "Backend Engineer" &&
						e.(*scene.Text).Text == "✉ b@example.com" &&
						cv.UpdatedAt.Equal(fixedNow)
				})).Return(nil)
			},
			wantNodes: 2,
		},
		{
			name: "merged record must stay valid",
			upd:  model.FieldRecord{Email: "not-an-email"},
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
			},
			wantErr: fields.ErrInvalidRecord,
		},
		{
			name: "row vanished before save",
			upd:  model.FieldRecord{Summary: "Hello"},
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.cvs.On("Update", mock.Anything, mock.Anything).Return(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(t)
			tt.setupMocks(d)

			res, err := svc.UpdateFields(context.Background(), "cv-1", tt.upd)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNodes, res.UpdatedNodes)
		})
	}
}

func TestCVService_UpdateDocument(t *testing.T) {
	svc, d := newTestService(t)
	edited := resolvedDoc(validRecord())
	edited.SetText("full_name", "Le Van C")

	d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
	d.cvs.On("Update", mock.Anything, mock.Anything).Return(nil)

	cv, err := svc.UpdateDocument(context.Background(), "cv-1", UpdateDocumentInput{Title: "Renamed", Document: edited})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", cv.Title)
	assert.Equal(t, "Le Van C", cv.Content.FormData.FullName)
	assert.Equal(t, "a@example.com", cv.Content.FormData.Email)

	_, err = svc.UpdateDocument(context.Background(), "cv-1", UpdateDocumentInput{})
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestCVService_Extract(t *testing.T) {
	svc, d := newTestService(t)
	d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)

	rec, err := svc.Extract(context.Background(), "cv-1")

	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van A", rec.FullName)
	assert.Equal(t, "a@example.com", rec.Email)
	require.Len(t, rec.Experience, 1)
	assert.Equal(t, "2020", rec.Experience[0].StartDate)
	assert.Equal(t, "2023", rec.Experience[0].EndDate)
}

func TestCVService_Analyze(t *testing.T) {
	svc, d := newTestService(t)
	d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)

	a, err := svc.Analyze(context.Background(), "cv-1")

	require.NoError(t, err)
	assert.Equal(t, fields.Analyze(validRecord()), *a)
}

func TestCVService_Export(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		dpi        float64
		setupMocks func(d *testDeps)
		want       *ExportResult
		wantErr    error
		wantErrMsg string
	}{
		{
			name:   "pdf",
			format: FormatPDF,
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.renderer.On("RenderToPage", mock.Anything, mock.Anything).Return([]byte("%PDF-1.3"), nil)
				d.cvs.On("IncrementDownloads", mock.Anything, "cv-1").Return(nil)
			},
			want: &ExportResult{Filename: "My CV_cv-1.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.3")},
		},
		{
			name:   "png passes dpi",
			format: FormatPNG,
			dpi:    150,
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.renderer.On("RenderToBitmap", mock.Anything, mock.Anything, 150.0).Return([]byte("png"), nil)
				d.cvs.On("IncrementDownloads", mock.Anything, "cv-1").Return(errors.New("ignored"))
			},
			want: &ExportResult{Filename: "My CV_cv-1.png", ContentType: "image/png", Data: []byte("png")},
		},
		{
			name:   "unsupported format",
			format: "docx",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
			},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:   "render failure",
			format: FormatPDF,
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.renderer.On("RenderToPage", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))
			},
			wantErrMsg: "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(t)
			tt.setupMocks(d)

			res, err := svc.Export(context.Background(), "cv-1", tt.format, tt.dpi)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Equal(t, 1.0, testutil.ToFloat64(d.metrics.renderFailures.WithLabelValues(tt.format)))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, res)
				assert.Equal(t, 1, testutil.CollectAndCount(d.metrics.renderDuration))
			}
		})
	}
}

func TestCVService_Publish(t *testing.T) {
	const key = "exports/cv-1/new-id.pdf"

	tests := []struct {
		name       string
		setupMocks func(d *testDeps)
		wantErrMsg string
	}{
		{
			name: "happy path",
			setupMocks: func(d *testDeps) {
				d.store.On("Put", mock.Anything, key, mock.Anything, storage.PutObjectOptions{
					Size:               8,
					ContentType:        "application/pdf",
					ContentDisposition: `attachment; filename="My CV_cv-1.pdf"`,
					Metadata:           map[string]string{"cv-id": "cv-1"},
				}).Return(func(_ context.Context, key string, r io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
					b, _ := io.ReadAll(r)
					return storage.ObjectInfo{Key: key, Size: int64(len(b))}
				}, nil)
				d.exports.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Export) bool {
					return e.ID == "new-id" && e.StoragePath == key && e.Filename == "My CV_cv-1.pdf"
				})).Return(func(_ context.Context, e *model.Export) *model.Export { return e }, nil)
				d.store.On("PresignGet", mock.Anything, key, 10*time.Minute).Return("https://minio/signed", nil)
			},
		},
		{
			name: "storage error",
			setupMocks: func(d *testDeps) {
				d.store.On("Put", mock.Anything, key, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name: "db error with rollback",
			setupMocks: func(d *testDeps) {
				d.store.On("Put", mock.Anything, key, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{Key: key}, nil)
				d.exports.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
				d.store.On("Delete", mock.Anything, key).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name: "db error with failed rollback",
			setupMocks: func(d *testDeps) {
				d.store.On("Put", mock.Anything, key, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{Key: key}, nil)
				d.exports.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db fail"))
				d.store.On("Delete", mock.Anything, key).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(t)
			d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
			d.renderer.On("RenderToPage", mock.Anything, mock.Anything).Return([]byte("%PDF-1.3"), nil)
			tt.setupMocks(d)

			res, err := svc.Publish(context.Background(), "cv-1", FormatPDF, 0)

			if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://minio/signed", res.URL)
			assert.Equal(t, fixedNow.Add(10*time.Minute), res.ExpiresAt)
			assert.Equal(t, int64(8), res.Export.Size)
		})
	}
}

func TestCVService_Translate(t *testing.T) {
	t.Run("stores a translated copy", func(t *testing.T) {
		svc, d := newTestService(t)
		d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
		d.transformer.On("TransformTexts", mock.Anything,
			[]string{"Nguyen Van A", "Backend Engineer", "✉ a@example.com", "2020 - 2023"},
			transform.Options{TargetLanguage: "fr"},
		).Return([]string{"Nguyen Van A", "Ingenieur Backend"}, nil)

		var created *model.CV
		d.cvs.On("Create", mock.Anything, mock.AnythingOfType("*model.CV")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*model.CV) }).
			Return(&model.CV{ID: "new-id", Title: "CV - French - My CV"}, nil)

		res, err := svc.Translate(context.Background(), "cv-1", "fr")

		require.NoError(t, err)
		assert.Equal(t, 1, res.TranslatedNodes)
		require.NotNil(t, created)
		assert.Equal(t, "CV - French - My CV", created.Title)
		assert.Equal(t, "modern_gray", created.TemplateID)
		assert.Equal(t, "Ingenieur Backend", created.Content.FormData.Position)
		assert.Equal(t, "Nguyen Van A", created.Content.FormData.FullName)
	})

	t.Run("service failure stores nothing", func(t *testing.T) {
		svc, d := newTestService(t)
		d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
		d.transformer.On("TransformTexts", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, transform.ErrUnavailable)

		_, err := svc.Translate(context.Background(), "cv-1", "fr")

		assert.ErrorIs(t, err, transform.ErrUnavailable)
		d.cvs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("language required", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Translate(context.Background(), "cv-1", "  ")

		assert.ErrorIs(t, err, ErrLanguageRequired)
	})
}

func TestCVService_Duplicate(t *testing.T) {
	svc, d := newTestService(t)
	src := storedCV()
	d.cvs.On("FindByID", mock.Anything, "cv-1").Return(src, nil)
	d.cvs.On("Create", mock.Anything, mock.MatchedBy(func(cv *model.CV) bool {
		return cv.Title == "Copy - My CV" && cv.Content.TemplateData != src.Content.TemplateData
	})).Return(&model.CV{ID: "new-id"}, nil)

	cv, err := svc.Duplicate(context.Background(), "cv-1")

	require.NoError(t, err)
	assert.Equal(t, "new-id", cv.ID)
}

func TestCVService_Delete(t *testing.T) {
	exports := []model.Export{{StoragePath: "exports/cv-1/a.pdf"}, {StoragePath: "exports/cv-1/b.png"}}

	tests := []struct {
		name       string
		setupMocks func(d *testDeps)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "removes objects then row",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.exports.On("ListByCV", mock.Anything, "cv-1").Return(exports, nil)
				d.store.On("Delete", mock.Anything, "exports/cv-1/a.pdf").Return(nil)
				d.store.On("Delete", mock.Anything, "exports/cv-1/b.png").Return(nil)
				d.cvs.On("Delete", mock.Anything, "cv-1").Return(nil)
			},
		},
		{
			name: "storage failure keeps row",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.exports.On("ListByCV", mock.Anything, "cv-1").Return(exports, nil)
				d.store.On("Delete", mock.Anything, "exports/cv-1/a.pdf").Return(errors.New("denied"))
			},
			wantErrMsg: "delete storage: denied",
		},
		{
			name: "not found",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(t)
			tt.setupMocks(d)

			err := svc.Delete(context.Background(), "cv-1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.EqualError(t, err, tt.wantErrMsg)
				d.cvs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestCVService_OpenExport(t *testing.T) {
	exports := []model.Export{
		{ID: "e1", CVID: "cv-1", StoragePath: "exports/cv-1/e1.pdf", ContentType: "application/pdf"},
		{ID: "e2", CVID: "cv-1", StoragePath: "exports/cv-1/e2.png", ContentType: "image/png"},
	}

	tests := []struct {
		name       string
		exportID   string
		setupMocks func(d *testDeps)
		wantErr    error
		wantPath   string
	}{
		{
			name:     "streams the stored object",
			exportID: "e2",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.exports.On("ListByCV", mock.Anything, "cv-1").Return(exports, nil)
				d.store.On("Get", mock.Anything, "exports/cv-1/e2.png").
					Return(io.NopCloser(strings.NewReader("png")), storage.ObjectInfo{}, nil)
			},
			wantPath: "exports/cv-1/e2.png",
		},
		{
			name:     "unknown export id",
			exportID: "e9",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.exports.On("ListByCV", mock.Anything, "cv-1").Return(exports, nil)
			},
			wantErr: ErrExportNotFound,
		},
		{
			name:     "object missing from storage",
			exportID: "e1",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(storedCV(), nil)
				d.exports.On("ListByCV", mock.Anything, "cv-1").Return(exports, nil)
				d.store.On("Get", mock.Anything, "exports/cv-1/e1.pdf").
					Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)
			},
			wantErr: ErrExportNotFound,
		},
		{
			name:     "cv not found",
			exportID: "e1",
			setupMocks: func(d *testDeps) {
				d.cvs.On("FindByID", mock.Anything, "cv-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newTestService(t)
			tt.setupMocks(d)

			got, err := svc.OpenExport(context.Background(), "cv-1", tt.exportID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			defer got.Body.Close()
			assert.Equal(t, tt.wantPath, got.Export.StoragePath)
			b, _ := io.ReadAll(got.Body)
			assert.Equal(t, "png", string(b))
		})
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"My CV", "My CV_7.pdf"},
		{"CV: Backend/Go!", "CV BackendGo_7.pdf"},
		{"Nguy\u1EC5n V\u0103n A  ", "Nguy\u1EC5n V\u0103n A_7.pdf"},
		{"***", "CV_7.pdf"},
		{"dev-ops_2024", "dev-ops_2024_7.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFilename(tt.title, "7", "pdf"))
		})
	}
	assert.True(t, strings.HasSuffix(SafeFilename("x", "id", "png"), ".png"))
}
