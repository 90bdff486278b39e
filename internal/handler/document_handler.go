package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"chronoseal-server/internal/domain"
	"chronoseal-server/internal/middleware"
	"chronoseal-server/internal/normalize"
	"chronoseal-server/internal/service"
	"chronoseal-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type DocumentHandler struct {
	service        *service.DocumentService
	validate       *validator.Validate
	maxUploadBytes int64
}

func NewDocumentHandler(service *service.DocumentService, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{
		service:        service,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *DocumentHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req domain.StoreDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	ownerID := middleware.GetUserID(r)

	doc, err := h.service.Store(r.Context(), ownerID, normalize.TextInput(req.Content), req.FileName, req.FileType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, doc)
}

// Upload stores an uploaded file. The raw bytes bypass text detection and
// are hashed verbatim.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Failed to read uploaded file")
		return
	}

	ownerID := middleware.GetUserID(r)
	fileType := header.Header.Get("Content-Type")

	doc, err := h.service.Store(r.Context(), ownerID, normalize.BinaryInput(content), header.Filename, fileType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r)

	docs, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, docs)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["id"]
	ownerID := middleware.GetUserID(r)

	doc, err := h.service.Get(r.Context(), ownerID, documentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["id"]
	ownerID := middleware.GetUserID(r)

	if err := h.service.Delete(r.Context(), ownerID, documentID); err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Document deleted successfully"})
}

func (h *DocumentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	documentID := mux.Vars(r)["id"]

	var req domain.VerifyDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	ownerID := middleware.GetUserID(r)

	result, err := h.service.Verify(r.Context(), ownerID, documentID, normalize.TextInput(req.Content))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *DocumentHandler) VerifyBatch(w http.ResponseWriter, r *http.Request) {
	var req domain.BatchVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	ownerID := middleware.GetUserID(r)

	result, err := h.service.VerifyBatch(r.Context(), ownerID, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, result)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, "Internal server error")
	}
}
