package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"github.com/vivasst/risk_survey/pkg/common"
	"github.com/vivasst/risk_survey/pkg/config"
	"github.com/vivasst/risk_survey/pkg/storage"
)

// AttachmentHandler stores and serves survey attachments (photos, documents,
// audio notes) through the storage abstraction. The returned URL is what
// callers put into an entity's attachments list.
type AttachmentHandler struct {
	store  storage.Storage
	upload config.UploadConfig
	types  map[string]bool
}

func NewAttachmentHandler(store storage.Storage, upload config.UploadConfig) *AttachmentHandler {
	types := make(map[string]bool, len(upload.AllowedTypes))
	for _, t := range upload.AllowedTypes {
		types[t] = true
	}
	return &AttachmentHandler{store: store, upload: upload, types: types}
}

// Upload handles multipart uploads and persists the file under a fresh id.
func (h *AttachmentHandler) Upload(ctx context.Context, c *app.RequestContext) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, fmt.Errorf("missing file field: %w", err))
		return
	}
	if h.upload.MaxSize > 0 && fileHeader.Size > h.upload.MaxSize {
		RespondError(c, fmt.Errorf("file exceeds maximum size of %d bytes", h.upload.MaxSize))
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if len(h.types) > 0 && !h.types[contentType] {
		RespondError(c, fmt.Errorf("content type %q is not allowed", contentType))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, err)
		return
	}
	defer file.Close()

	fileID := uuid.New().String()
	key := fileID + "/" + fileHeader.Filename
	if err := h.store.PutObject(ctx, key, file, contentType, fileHeader.Size); err != nil {
		RespondError(c, err)
		return
	}

	url, err := h.store.GenerateURL(ctx, key, fileHeader.Filename)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, map[string]any{
		"fileId":   fileID,
		"fileName": fileHeader.Filename,
		"url":      url,
	})
}

// GetFile streams stored attachment content back to the client.
func (h *AttachmentHandler) GetFile(ctx context.Context, c *app.RequestContext) {
	fileID := c.Param("fileID")
	fileName := c.Param("fileName")
	if fileID == "" || fileName == "" {
		RespondError(c, errors.New("fileID and fileName are required"))
		return
	}
	key := fileID + "/" + fileName

	reader, err := h.store.GetObject(ctx, key)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(consts.StatusOK, common.CommonResponse{
				Code:  consts.StatusNotFound,
				Msg:   "NOT_FOUND",
				Error: "attachment not found",
			})
			return
		}
		RespondError(c, err)
		return
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Response.Header.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fileName))
	c.Data(consts.StatusOK, consts.MIMEApplicationOctetStream, content)
}

// Delete removes a stored attachment. Entity attachment lists referencing the
// URL are edited through the entity endpoints, not here.
func (h *AttachmentHandler) Delete(ctx context.Context, c *app.RequestContext) {
	fileID := c.Param("fileID")
	fileName := c.Param("fileName")
	if fileID == "" || fileName == "" {
		RespondError(c, errors.New("fileID and fileName are required"))
		return
	}
	if err := h.store.DeleteObject(ctx, fileID+"/"+fileName); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, nil)
}
