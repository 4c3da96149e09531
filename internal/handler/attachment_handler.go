package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/config"
	"docflow/internal/port"
)

// AttachmentHandler serves attachment upload and presigned download
// endpoints. History rows reference attachments by object key.
type AttachmentHandler struct {
	storage port.ObjectStorage
	cfg     config.S3Config
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(storage port.ObjectStorage, cfg config.S3Config) *AttachmentHandler {
	return &AttachmentHandler{storage: storage, cfg: cfg}
}

// Upload stores an attachment for a document and returns its object key.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	docID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "missing file field")
		return
	}
	maxSize := h.cfg.MaxFileSizeMB * 1024 * 1024
	if maxSize > 0 && fileHeader.Size > maxSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			fmt.Sprintf("file exceeds maximum size of %d MB", h.cfg.MaxFileSizeMB))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "unable to read file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("documents/%s/%s%s", docID, uuid.New(), filepath.Ext(fileHeader.Filename))

	out, err := h.storage.Upload(c.Request.Context(), port.UploadInput{
		Bucket:      h.cfg.Bucket,
		Key:         key,
		Body:        file,
		ContentType: contentType,
		Size:        fileHeader.Size,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{
		"key":      key,
		"location": out.Location,
	})
}

// DownloadURL returns a presigned URL for an attachment key.
func (h *AttachmentHandler) DownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "missing key parameter")
		return
	}

	url, err := h.storage.GetPresignedURL(c.Request.Context(), h.cfg.Bucket, key, h.cfg.PresignExpiry)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}
