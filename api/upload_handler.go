package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/services"
)

// multipart overhead allowed on top of the file itself
const uploadFormOverhead int64 = 1 << 20

// room for a full screenshot set in one request
const batchUploadLimit = 6*services.MaxUploadSize + uploadFormOverhead

const defaultUploadPrefix = "uploads"

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	client    *services.ContentClient
}

func newUploadHandler(client *services.ContentClient) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()
	return uploadHandler{responder: NewResponder(logger), logger: logger, client: client}
}

// uploadFile stores an image or video and returns its public URL
// @Summary Upload media
// @Description The bucket is created as public when it does not exist. Without a path a unique key is generated.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image or video, at most 50 MB"
// @Param bucket formData string true "Bucket name"
// @Param path formData string false "Object key"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 502 {object} ErrorResponse "Failed to upload file"
// @Failure 503 {object} ErrorResponse "File uploads are not configured"
// @Router /api/uploads [post]
func (h uploadHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+uploadFormOverhead)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewFileTooLargeError(maxErr.Limit+1, services.MaxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		bucket := strings.TrimSpace(r.FormValue("bucket"))
		if bucket == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("bucket"))
			return
		}

		url, err := h.client.UploadFile(r.Context(), services.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}, bucket, strings.TrimSpace(r.FormValue("path")))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("actor", ctxGetActor(r.Context())).Str("bucket", bucket).Str("url", url).Msg("Uploaded file")
		h.responder.WriteJSON(w, http.StatusCreated, UploadResponse{URL: url})
	}
}

// uploadFiles stores several files under one prefix
// @Summary Upload several media files
// @Description Each file gets a unique key under prefix. A file that fails is reported in its item and does not fail the request.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Images or videos, each at most 50 MB"
// @Param bucket formData string true "Bucket name"
// @Param prefix formData string false "Key prefix" default(uploads)
// @Success 200 {object} BatchUploadResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Authentication required"
// @Failure 413 {object} ErrorResponse "Request body too large"
// @Failure 503 {object} ErrorResponse "File uploads are not configured"
// @Router /api/uploads/batch [post]
func (h uploadHandler) uploadFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.client.UploadsEnabled() {
			h.responder.WriteError(w, errs.NewUploaderUnavailableError())
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, batchUploadLimit)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File["files"]
		if len(headers) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("files"))
			return
		}
		bucket := strings.TrimSpace(r.FormValue("bucket"))
		if bucket == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("bucket"))
			return
		}
		prefix := strings.TrimSpace(r.FormValue("prefix"))
		if prefix == "" {
			prefix = defaultUploadPrefix
		}

		files := make([]services.File, 0, len(headers))
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
				return
			}
			defer file.Close()
			files = append(files, services.File{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
			})
		}

		results := h.client.UploadFiles(r.Context(), files, bucket, prefix)
		response := BatchUploadResponse{Items: make([]BatchUploadItem, len(results))}
		for i, res := range results {
			response.Items[i] = BatchUploadItem{Name: res.Name, URL: res.URL}
			if res.Err != nil {
				response.Items[i].Error = uploadFailureMessage(res.Err)
				response.Failed++
			}
		}

		h.logger.Info().
			Str("actor", ctxGetActor(r.Context())).
			Str("bucket", bucket).
			Int("files", len(results)).
			Int("failed", response.Failed).
			Msg("Uploaded files")
		h.responder.WriteJSON(w, http.StatusOK, response)
	}
}

// uploadFailureMessage is the client-safe reason one file of a batch failed.
func uploadFailureMessage(err error) string {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.IsServerError() {
		return "Failed to upload file"
	}
	if len(apiErr.Issues) > 0 {
		return apiErr.Issues[0].Message
	}
	return apiErr.PublicMessage()
}
