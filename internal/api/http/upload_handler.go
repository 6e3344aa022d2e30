package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/service"
	"agrirent-backend/internal/storage"
)

// UploadHandler stores machinery images and serves them back.
type UploadHandler struct {
	machinery   service.MachineryService
	store       storage.Service
	maxFileSize int64
	maxImages   int
}

func NewUploadHandler(machinery service.MachineryService, store storage.Service, maxFileSize int64, maxImages int) *UploadHandler {
	return &UploadHandler{
		machinery:   machinery,
		store:       store,
		maxFileSize: maxFileSize,
		maxImages:   maxImages,
	}
}

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// UploadImages accepts a multipart form with up to maxImages files under
// the "images" field and attaches them to the machinery in the path.
func (h *UploadHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxImages)*h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		respondError(w, domain.ValidationError("invalid multipart form"))
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		respondError(w, domain.ValidationError("at least one image file is required"))
		return
	}
	if len(files) > h.maxImages {
		respondError(w, domain.ValidationError("at most %d images may be uploaded", h.maxImages))
		return
	}

	var images []domain.MachineryImage
	for i, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if _, ok := allowedImageExts[ext]; !ok {
			respondError(w, domain.ValidationError("unsupported image type: %s", ext))
			return
		}
		if header.Size > h.maxFileSize {
			respondError(w, domain.ValidationError("image exceeds the %d byte limit", h.maxFileSize))
			return
		}

		file, err := header.Open()
		if err != nil {
			respondError(w, err)
			return
		}

		key := fmt.Sprintf("%s%s", uuid.NewString(), ext)
		url, err := h.store.Save(r.Context(), key, file)
		file.Close()
		if err != nil {
			respondError(w, err)
			return
		}

		images = append(images, domain.MachineryImage{Index: int32(i), URL: url})
	}

	updated, err := h.machinery.AttachImages(r.Context(), user.ID, id, images)
	if err != nil {
		// Uploaded files are orphaned on failure; cleanup is best-effort.
		for _, img := range images {
			_ = h.store.Delete(r.Context(), filepath.Base(img.URL))
		}
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "images uploaded successfully", updated)
}

// ServeImage streams a stored machinery image.
func (h *UploadHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["file"]
	file, err := h.store.Open(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	if ct, ok := allowedImageExts[strings.ToLower(filepath.Ext(key))]; ok {
		contentType = ct
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, file)
}
