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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcians/profile-registry/internal/api/types"
	"github.com/arcians/profile-registry/internal/models"
	"github.com/arcians/profile-registry/internal/services"
	"github.com/arcians/profile-registry/internal/storage"
	appErr "github.com/arcians/profile-registry/pkg/errors"
	"github.com/arcians/profile-registry/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Replace(zap.NewNop())
	os.Exit(m.Run())
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type mockProfileService struct {
	mock.Mock
}

func (m *mockProfileService) CreateProfile(ctx context.Context, in *services.CreateProfileInput) (*models.Profile, error) {
	args := m.Called(ctx, in)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]models.Profile); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoints(t *testing.T) {
	h := NewHealthHandler(pingFunc(func(context.Context) error { return nil }))

	rr := httptest.NewRecorder()
	h.Root(rr, httptest.NewRequest(http.MethodGet, "/api/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Profile Generator API"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Liveness(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestReadinessReportsUnavailableStore(t *testing.T) {
	h := NewHealthHandler(pingFunc(func(context.Context) error {
		return appErr.Wrap(errors.New("connection refused"), appErr.CodeUnavailable, "store ping failed")
	}))

	rr := httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "unavailable", decodeError(t, rr).Code)
}

func TestCreateProfile(t *testing.T) {
	svc := new(mockProfileService)
	created := &models.Profile{ID: "p-1", Name: "Ada", Role: "Engineer", EncryptedID: "0123456789AB"}
	svc.On("CreateProfile", mock.Anything, &services.CreateProfileInput{Name: "Ada", Role: "Engineer"}).
		Return(created, nil).Once()

	h := NewProfilesHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/profiles",
		strings.NewReader(`{"name":"Ada","role":"Engineer","encrypted_id":"IGNORED","extra":1}`))
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "p-1", got["id"])
	assert.Equal(t, "0123456789AB", got["encrypted_id"])
	assert.Nil(t, got["bio"])
	assert.Contains(t, got, "photo_url")
	svc.AssertExpectations(t)
}

func TestCreateProfileRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"name":`,
		"missing role":   `{"name":"Ada"}`,
		"null name":      `{"name":null,"role":"Engineer"}`,
		"empty object":   `{}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := new(mockProfileService)
			h := NewProfilesHandler(svc)
			rr := httptest.NewRecorder()
			h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(body)))

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Equal(t, "invalid", decodeError(t, rr).Code)
			svc.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateProfileStoreFailure(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("CreateProfile", mock.Anything, mock.Anything).
		Return(nil, appErr.Wrap(errors.New("timeout"), appErr.CodeInternal, "create profile failed"))

	rr := httptest.NewRecorder()
	NewProfilesHandler(svc).Create(rr, httptest.NewRequest(http.MethodPost, "/api/profiles",
		strings.NewReader(`{"name":"","role":""}`)))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetProfile(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("GetProfile", mock.Anything, "p-1").Return(&models.Profile{ID: "p-1", Name: "Ada"}, nil)
	svc.On("GetProfile", mock.Anything, "does-not-exist").
		Return(nil, appErr.New(appErr.CodeNotFound, "profile not found"))
	h := NewProfilesHandler(svc)

	rr := httptest.NewRecorder()
	h.Get(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/profiles/p-1", nil), "id", "p-1"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.Get(rr, withURLParam(httptest.NewRequest(http.MethodGet, "/api/profiles/does-not-exist", nil), "id", "does-not-exist"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, types.ErrorResponse{Detail: "profile not found", Code: "not_found"}, decodeError(t, rr))
}

func TestListProfilesEmptyIsArray(t *testing.T) {
	svc := new(mockProfileService)
	svc.On("ListProfiles", mock.Anything).Return([]models.Profile{}, nil)

	rr := httptest.NewRecorder()
	NewProfilesHandler(svc).List(rr, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadStoresFile(t *testing.T) {
	assets, err := storage.NewLocalAssetStore(t.TempDir())
	require.NoError(t, err)
	h := NewUploadsHandler(assets, 1<<20)

	content := []byte("\x89PNG\r\n\x1a\nfake")
	body, ctype := multipartBody(t, UploadField, "test.png", content)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ctype)
	rr := httptest.NewRecorder()
	h.Upload(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp types.UploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Regexp(t, `^/uploads/[0-9a-f-]{36}\.png$`, resp.URL)

	stored, err := os.ReadFile(filepath.Join(assets.Root(), filepath.Base(resp.URL)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUploadWithoutFileField(t *testing.T) {
	assets, err := storage.NewLocalAssetStore(t.TempDir())
	require.NoError(t, err)
	h := NewUploadsHandler(assets, 1<<20)

	body, ctype := multipartBody(t, "photo", "test.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ctype)
	rr := httptest.NewRecorder()
	h.Upload(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("plain"))
	rr = httptest.NewRecorder()
	h.Upload(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestStaticServesFilesOnly(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "nested"), 0o755))
	assets, err := storage.NewLocalAssetStore(root)
	require.NoError(t, err)
	static := NewUploadsHandler(assets, 1<<20).Static()

	get := func(p string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		static.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, p, nil))
		return rr
	}

	rr := get("/uploads/app.js")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/javascript", rr.Header().Get("Content-Type"))

	rr = get("/uploads/a.txt")
	require.Equal(t, http.StatusOK, rr.Code)
	b, _ := io.ReadAll(rr.Body)
	assert.Equal(t, "hello", string(b))

	assert.Equal(t, http.StatusNotFound, get("/uploads/missing.png").Code)
	assert.Equal(t, http.StatusNotFound, get("/uploads/nested/").Code)
}

func TestWritesIgnoreClientCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })

	svc := new(mockProfileService)
	svc.On("CreateProfile", live, mock.Anything).Return(&models.Profile{ID: "p-1"}, nil).Once()
	rr := httptest.NewRecorder()
	NewProfilesHandler(svc).Create(rr, httptest.NewRequest(http.MethodPost, "/api/profiles",
		strings.NewReader(`{"name":"Ada","role":"Engineer"}`)).WithContext(ctx))
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)

	assets, err := storage.NewLocalAssetStore(t.TempDir())
	require.NoError(t, err)
	body, ctype := multipartBody(t, UploadField, "test.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body).WithContext(ctx)
	req.Header.Set("Content-Type", ctype)
	rr = httptest.NewRecorder()
	NewUploadsHandler(assets, 1<<20).Upload(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	entries, err := os.ReadDir(assets.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
