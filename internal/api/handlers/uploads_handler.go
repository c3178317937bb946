package handlers

import (
	"context"
	"io/fs"
	"net/http"
	"strings"

	"github.com/arcians/profile-registry/internal/api/types"
	"github.com/arcians/profile-registry/internal/storage"
	appErr "github.com/arcians/profile-registry/pkg/errors"
)

// UploadField is the multipart field carrying the file.
const UploadField = "file"

type UploadsHandler struct {
	assets    storage.AssetStore
	maxMemory int64
}

// NewUploadsHandler serves uploads through assets. maxMemory is the multipart
// in-memory threshold; larger parts spill to temporary files.
func NewUploadsHandler(assets storage.AssetStore, maxMemory int64) *UploadsHandler {
	return &UploadsHandler{assets: assets, maxMemory: maxMemory}
}

// Upload godoc
// @Summary  Upload a profile photo
// @Tags     uploads
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "asset to store"
// @Success  200  {object} types.UploadResponse
// @Failure  422  {object} types.ErrorResponse
// @Failure  500  {object} types.ErrorResponse
// @Router   /upload [post]
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		writeError(w, appErr.Wrap(err, appErr.CodeInvalid, "invalid multipart body"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		writeError(w, appErr.Wrap(err, appErr.CodeInvalid, "missing file field"))
		return
	}
	defer file.Close()

	ref, err := h.assets.Store(context.WithoutCancel(r.Context()), file, header.Filename)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UploadResponse{URL: ref})
}

// Static serves stored assets below storage.URLPrefix. Directory listings are
// hidden and .js files are always sent as application/javascript.
func (h *UploadsHandler) Static() http.Handler {
	files := http.StripPrefix(storage.URLPrefix+"/",
		http.FileServer(filesOnly{http.Dir(h.assets.Root())}))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".js") {
			w.Header().Set("Content-Type", "application/javascript")
		}
		files.ServeHTTP(w, r)
	})
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}
