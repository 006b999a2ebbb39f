package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kdheeru12/ad-generator/internal/adjobs"
	"github.com/Kdheeru12/ad-generator/internal/models"
	"github.com/Kdheeru12/ad-generator/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeUseCase struct {
	job         *models.AdJob
	generateErr error
	getErr      error
	videoPath   string
	resolveErr  error
}

func (f *fakeUseCase) GenerateAd(ctx context.Context, input *models.GenerateAdInput) (*models.AdJob, error) {
	return f.job, f.generateErr
}

func (f *fakeUseCase) GetJob(ctx context.Context, jobID uuid.UUID) (*models.AdJob, error) {
	return f.job, f.getErr
}

func (f *fakeUseCase) ListJobs(ctx context.Context, pagination *utils.Pagination) (*models.JobList, error) {
	return &models.JobList{Page: pagination.GetPage(), PageSize: pagination.GetSize()}, nil
}

func (f *fakeUseCase) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	return f.getErr
}

func (f *fakeUseCase) ResolveVideo(ctx context.Context, filename string) (string, error) {
	return f.videoPath, f.resolveErr
}

func doRequest(t *testing.T, handler echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestGenerateAdAccepted(t *testing.T) {
	job := &models.AdJob{JobID: uuid.New(), Status: models.JobStatusProcessing}
	h := NewAdJobsHandler(&fakeUseCase{job: job})

	rec := doRequest(t, h.GenerateAd(), http.MethodPost, "/api/v1/ads/generate", `{"url":"https://www.amazon.com/dp/TEST"}`)
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), job.JobID.String()) {
		t.Errorf("body missing job id: %s", rec.Body.String())
	}
}

func TestGenerateAdScrapeFailure(t *testing.T) {
	h := NewAdJobsHandler(&fakeUseCase{generateErr: adjobs.ErrNoProductData})

	rec := doRequest(t, h.GenerateAd(), http.MethodPost, "/api/v1/ads/generate", `{"url":"https://www.amazon.com/dp/TEST"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetJobInvalidID(t *testing.T) {
	h := NewAdJobsHandler(&fakeUseCase{})

	rec := doRequest(t, h.GetJob(), http.MethodGet, "/api/v1/ads/jobs/nope", "", "job_id", "nope")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetJobOK(t *testing.T) {
	job := &models.AdJob{JobID: uuid.New(), Status: models.JobStatusCompleted}
	h := NewAdJobsHandler(&fakeUseCase{job: job})

	rec := doRequest(t, h.GetJob(), http.MethodGet, "/api/v1/ads/jobs/"+job.JobID.String(), "", "job_id", job.JobID.String())
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"completed"`) {
		t.Errorf("body missing status: %s", rec.Body.String())
	}
}

func TestGetVideoNotFound(t *testing.T) {
	h := NewAdJobsHandler(&fakeUseCase{resolveErr: adjobs.ErrVideoUnavailable})

	rec := doRequest(t, h.GetVideo(), http.MethodGet, "/api/v1/ads/videos/x.mp4", "", "filename", "x.mp4")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetVideoServesFile(t *testing.T) {
	videoPath := filepath.Join(t.TempDir(), "ad_video_x.mp4")
	if err := os.WriteFile(videoPath, []byte("video bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewAdJobsHandler(&fakeUseCase{videoPath: videoPath})

	rec := doRequest(t, h.GetVideo(), http.MethodGet, "/api/v1/ads/videos/ad_video_x.mp4", "", "filename", "ad_video_x.mp4")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "video bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
