package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/api/middleware"
	"github.com/yoockh/huffaz-portal/internal/api/validation"
	"github.com/yoockh/huffaz-portal/internal/auth"
	"github.com/yoockh/huffaz-portal/internal/mbti"
	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/services"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.RegisterWithGin()
	os.Exit(m.Run())
}

// =============================================================================
// Mock Implementations
// =============================================================================

type mockApplicationService struct {
	applyFunc  func(ctx context.Context, p *auth.Principal, jobID string) (*models.Application, error)
	cancelFunc func(ctx context.Context, p *auth.Principal, applicationID string) error
}

func (m *mockApplicationService) Apply(ctx context.Context, p *auth.Principal, jobID string) (*models.Application, error) {
	if m.applyFunc != nil {
		return m.applyFunc(ctx, p, jobID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) Cancel(ctx context.Context, p *auth.Principal, applicationID string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, p, applicationID)
	}
	return errors.New("not implemented")
}

func (m *mockApplicationService) ListMine(context.Context, *auth.Principal) ([]models.ApplicationView, error) {
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) ListForJob(context.Context, *auth.Principal, string) ([]models.ApplicantView, error) {
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) Review(context.Context, *auth.Principal, string, models.ApplicationStatus) (*models.Application, error) {
	return nil, errors.New("not implemented")
}

type mockProfileService struct {
	uploadFunc func(ctx context.Context, userID string, in services.UploadInput) (string, *models.Profile, error)
	submitFunc func(ctx context.Context, userID string, answers []int) (mbti.Result, *models.Profile, error)
}

func (m *mockProfileService) Get(context.Context, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProfileService) Update(context.Context, string, services.ProfileUpdate) (*models.Profile, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProfileService) UploadDocument(ctx context.Context, userID string, in services.UploadInput) (string, *models.Profile, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, userID, in)
	}
	return "", nil, errors.New("not implemented")
}

func (m *mockProfileService) SetMBTIType(context.Context, string, string) (*models.Profile, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProfileService) SubmitAssessment(ctx context.Context, userID string, answers []int) (mbti.Result, *models.Profile, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, userID, answers)
	}
	return mbti.Result{}, nil, errors.New("not implemented")
}

func (m *mockProfileService) AssessmentHistory(context.Context, string) ([]models.AssessmentRecord, error) {
	return nil, errors.New("not implemented")
}

func (m *mockProfileService) LatestAssessment(context.Context, string) (*models.AssessmentRecord, error) {
	return nil, utils.E(utils.CodeNotFound, "ProfileService.LatestAssessment", "no assessment submitted yet", nil)
}

var studentPrincipal = &auth.Principal{ID: "user-1", Email: "s@example.com", Role: models.RoleStudent}

// withPrincipal stands in for SessionAuth.
func withPrincipal(p *auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Set(middleware.PrincipalKey, p)
		}
		c.Next()
	}
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var e APIError
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("response is not an error body: %v (%s)", err, w.Body.String())
	}
	return e
}

// =============================================================================
// Tests
// =============================================================================

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   utils.Code
		wantMsg    string
	}{
		{
			name:       "client error keeps message",
			err:        utils.E(utils.CodeInvalidArgument, "op", "deadline is required", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   utils.CodeInvalidArgument,
			wantMsg:    "deadline is required",
		},
		{
			name:       "internal error hides message",
			err:        utils.E(utils.CodeInternal, "op", "pq: password authentication failed", errors.New("boom")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   utils.CodeInternal,
			wantMsg:    "Internal Server Error",
		},
		{
			name:       "unavailable hides message",
			err:        utils.E(utils.CodeUnavailable, "op", "bucket gs://secret unreachable", nil),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   utils.CodeUnavailable,
			wantMsg:    "Service Unavailable",
		},
		{
			name:       "plain error",
			err:        errors.New("raw driver error"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   utils.CodeInternal,
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			e := decodeError(t, w)
			if e.Code != tt.wantCode || e.Message != tt.wantMsg {
				t.Errorf("body = %+v", e)
			}
			if len(c.Errors) != 1 {
				t.Errorf("error not recorded on context")
			}
		})
	}
}

func TestCookieHelper(t *testing.T) {
	tests := []struct {
		name       string
		secure     bool
		clear      bool
		wantValue  string
		wantMaxAge int
	}{
		{name: "set development", secure: false, wantValue: "tok", wantMaxAge: 86400},
		{name: "set production", secure: true, wantValue: "tok", wantMaxAge: 86400},
		{name: "clear", secure: true, clear: true, wantValue: "", wantMaxAge: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h := NewCookieHelper(tt.secure, 24*time.Hour)
			if tt.clear {
				h.ClearSession(c)
			} else {
				h.SetSession(c, "tok")
			}

			cookies := w.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("expected 1 cookie, got %d", len(cookies))
			}
			ck := cookies[0]
			if ck.Name != middleware.TokenCookie || ck.Value != tt.wantValue {
				t.Errorf("cookie = %s=%q", ck.Name, ck.Value)
			}
			if !ck.HttpOnly {
				t.Error("cookie must be HttpOnly")
			}
			if ck.Secure != tt.secure {
				t.Errorf("Secure = %v, want %v", ck.Secure, tt.secure)
			}
			if ck.SameSite != http.SameSiteStrictMode {
				t.Errorf("SameSite = %v, want Strict", ck.SameSite)
			}
			if ck.Path != "/" {
				t.Errorf("Path = %q", ck.Path)
			}
			if ck.MaxAge != tt.wantMaxAge {
				t.Errorf("MaxAge = %d, want %d", ck.MaxAge, tt.wantMaxAge)
			}
		})
	}
}

func TestApplyHandler(t *testing.T) {
	svc := &mockApplicationService{applyFunc: func(_ context.Context, p *auth.Principal, jobID string) (*models.Application, error) {
		switch jobID {
		case "job-ok":
			return &models.Application{ID: "app-1", UserID: p.ID, JobPostingID: jobID}, nil
		case "job-docs":
			return nil, utils.MissingDocuments("ApplicationService.Apply", []string{"resume", "certificate"})
		}
		return nil, utils.E(utils.CodeNotFound, "ApplicationService.Apply", "job not found or no longer active", nil)
	}}
	h := NewApplicationHandler(svc)

	r := gin.New()
	r.POST("/applications", withPrincipal(studentPrincipal), h.Apply)
	r.POST("/anon/applications", withPrincipal(nil), h.Apply)

	t.Run("created", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/applications", gin.H{"jobPostingId": "job-ok"})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["applicationId"] != "app-1" {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("missing documents", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/applications", gin.H{"jobPostingId": "job-docs"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", w.Code)
		}
		e := decodeError(t, w)
		if e.Code != utils.CodeMissingDocuments {
			t.Errorf("code = %s", e.Code)
		}
		if strings.Join(e.MissingDocuments, ",") != "resume,certificate" {
			t.Errorf("missingDocuments = %v", e.MissingDocuments)
		}
		if e.Message != "you must upload your resume and certificate before applying" {
			t.Errorf("message = %q", e.Message)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/applications", gin.H{"jobPostingId": "job-gone"})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d", w.Code)
		}
	})

	t.Run("missing body field", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/applications", gin.H{})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d", w.Code)
		}
		if decodeError(t, w).Code != utils.CodeInvalidArgument {
			t.Error("want INVALID_ARGUMENT")
		}
	})

	t.Run("no principal", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/anon/applications", gin.H{"jobPostingId": "job-ok"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", w.Code)
		}
	})
}

func TestCancelHandler(t *testing.T) {
	svc := &mockApplicationService{cancelFunc: func(_ context.Context, _ *auth.Principal, id string) error {
		if id == "app-reviewed" {
			return utils.E(utils.CodeInvalidState, "ApplicationService.Cancel", "only pending applications can be cancelled", nil)
		}
		return nil
	}}
	h := NewApplicationHandler(svc)
	r := gin.New()
	r.POST("/applications/cancel", withPrincipal(studentPrincipal), h.Cancel)

	if w := doJSON(r, http.MethodPost, "/applications/cancel", gin.H{"applicationId": "app-1"}); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	w := doJSON(r, http.MethodPost, "/applications/cancel", gin.H{"applicationId": "app-reviewed"})
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != utils.CodeInvalidState {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func multipartUpload(t *testing.T, kind, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if kind != "" {
		_ = mw.WriteField("type", kind)
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(content)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/profile/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	var gotKind string
	var gotBody []byte
	svc := &mockProfileService{uploadFunc: func(_ context.Context, userID string, in services.UploadInput) (string, *models.Profile, error) {
		gotKind = in.Kind
		gotBody, _ = io.ReadAll(in.Body)
		url := "/uploads/" + in.Filename
		return url, &models.Profile{UserID: userID, ResumeURL: &url}, nil
	}}
	h := NewProfileHandler(svc)
	r := gin.New()
	r.POST("/profile/upload", withPrincipal(studentPrincipal), h.Upload)

	tests := []struct {
		name       string
		kind       string
		filename   string
		wantStatus int
	}{
		{name: "resume pdf", kind: "resume", filename: "cv.pdf", wantStatus: http.StatusOK},
		{name: "certificate png", kind: "certificate", filename: "cert.png", wantStatus: http.StatusOK},
		{name: "resume as image", kind: "resume", filename: "cv.png", wantStatus: http.StatusBadRequest},
		{name: "unknown kind", kind: "photo", filename: "me.jpg", wantStatus: http.StatusBadRequest},
		{name: "no file", kind: "resume", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKind = ""
			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartUpload(t, tt.kind, tt.filename, []byte("data")))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if gotKind != tt.kind || string(gotBody) != "data" {
					t.Errorf("service got kind %q body %q", gotKind, gotBody)
				}
			} else if gotKind != "" {
				t.Error("service must not be called for a rejected upload")
			}
		})
	}
}

func TestSubmitAnswersHandler(t *testing.T) {
	svc := &mockProfileService{submitFunc: func(_ context.Context, _ string, answers []int) (mbti.Result, *models.Profile, error) {
		res, err := mbti.Score(answers)
		if err != nil {
			return mbti.Result{}, nil, err
		}
		return res, &models.Profile{MBTIType: &res.Type, MBTICompleted: true}, nil
	}}
	h := NewProfileHandler(svc)
	r := gin.New()
	r.POST("/profile/mbti/answers", withPrincipal(studentPrincipal), h.SubmitAnswers)

	answers := make([]int, mbti.QuestionCount)
	for i := range answers {
		answers[i] = 3
	}
	w := doJSON(r, http.MethodPost, "/profile/mbti/answers", gin.H{"answers": answers})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Result mbti.Result `json:"result"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Result.Type != "ESTJ" {
		t.Errorf("type = %q", body.Result.Type)
	}

	short := answers[:39]
	if w := doJSON(r, http.MethodPost, "/profile/mbti/answers", gin.H{"answers": short}); w.Code != http.StatusBadRequest {
		t.Errorf("39 answers: status = %d", w.Code)
	}

	bad := append([]int(nil), answers...)
	bad[0] = 0
	if w := doJSON(r, http.MethodPost, "/profile/mbti/answers", gin.H{"answers": bad}); w.Code != http.StatusBadRequest {
		t.Errorf("out of range answer: status = %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
		wantState  string
	}{
		{name: "all up", checks: map[string]Pinger{"postgres": up, "redis": up}, wantStatus: http.StatusOK, wantState: "ok"},
		{name: "redis down", checks: map[string]Pinger{"postgres": up, "redis": down}, wantStatus: http.StatusServiceUnavailable, wantState: "degraded"},
		{name: "no checks", checks: nil, wantStatus: http.StatusOK, wantState: "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthHandler(tt.checks).Health)
			w := doJSON(r, http.MethodGet, "/health", nil)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d", w.Code)
			}
			var body struct {
				Status string `json:"status"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body.Status != tt.wantState {
				t.Errorf("status field = %q", body.Status)
			}
		})
	}
}

func TestWebHandler(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "assets"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "assets", "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.NoRoute(NewWebHandler(root).Serve)

	tests := []struct {
		path       string
		method     string
		wantStatus int
		wantBody   string
	}{
		{path: "/assets/app.js", method: http.MethodGet, wantStatus: http.StatusOK, wantBody: "console.log(1)"},
		{path: "/dashboard", method: http.MethodGet, wantStatus: http.StatusOK, wantBody: "<html>app</html>"},
		{path: "/dashboard", method: http.MethodPost, wantStatus: http.StatusNotFound},
		{path: "/api/unknown", method: http.MethodGet, wantStatus: http.StatusNotFound},
		{path: "/api", method: http.MethodGet, wantStatus: http.StatusNotFound},
		{path: "/apiary", method: http.MethodGet, wantStatus: http.StatusOK, wantBody: "<html>app</html>"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d", w.Code)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q", w.Body.String())
			}
		})
	}

	disabled := gin.New()
	disabled.NoRoute(NewWebHandler("").Serve)
	if w := doJSON(disabled, http.MethodGet, "/anything", nil); w.Code != http.StatusNotFound {
		t.Errorf("disabled bundle: status = %d", w.Code)
	}
}
