package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"galleria/api/internal/apperr"
	"galleria/api/internal/middleware"
	"galleria/api/internal/models"
	"galleria/api/internal/service"
)

// allFoldersFilter is the sentinel a client sends to list images across
// every folder instead of filtering to one.
const allFoldersFilter = "ALL"

type uploadFailure struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

type uploadBatchResponse struct {
	Created []imageResponse `json:"created"`
	Failed  []uploadFailure `json:"failed"`
}

// UploadImages accepts a multipart batch under the "file" field. Files are
// processed one at a time in input order; a failure is recorded per file and
// the batch continues, so earlier successes are always reported.
func (h HandlerSet) UploadImages(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.writeError(c, apperr.Validation("multipart form required"))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		h.writeError(c, apperr.Validation(`no files provided under field "file"`))
		return
	}

	var folderID *string
	if v := c.PostForm("folderId"); v != "" {
		folderID = &v
	}

	resp := uploadBatchResponse{
		Created: []imageResponse{},
		Failed:  []uploadFailure{},
	}

	for _, header := range files {
		if header.Size > h.cfg.Upload.MaxFileSizeBytes {
			resp.Failed = append(resp.Failed, uploadFailure{
				FileName: header.Filename,
				Error:    fmt.Sprintf("file exceeds %d bytes", h.cfg.Upload.MaxFileSizeBytes),
			})
			continue
		}

		file, err := header.Open()
		if err != nil {
			resp.Failed = append(resp.Failed, uploadFailure{FileName: header.Filename, Error: "unreadable file"})
			continue
		}

		image, err := h.imageService.Upload(c.Request.Context(), service.UploadInput{
			OwnerID:      ownerID,
			Content:      file,
			FolderID:     folderID,
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			SizeBytes:    header.Size,
		})
		file.Close()
		if err != nil {
			h.log.Warn().Err(err).
				Str("owner_id", ownerID).
				Str("file_name", header.Filename).
				Msg("file upload failed")
			resp.Failed = append(resp.Failed, uploadFailure{FileName: header.Filename, Error: err.Error()})
			continue
		}

		resp.Created = append(resp.Created, toImageResponse(image))
	}

	status := http.StatusCreated
	if len(resp.Created) == 0 {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

// ListImages filters by folder: "ALL" lists everything, an empty or absent
// folderId lists the root, anything else filters to that folder.
func (h HandlerSet) ListImages(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	var (
		images []models.Image
		err    error
	)

	filter := c.Query("folderId")
	switch filter {
	case allFoldersFilter:
		images, err = h.imageService.ListAll(c.Request.Context(), ownerID)
	case "":
		images, err = h.imageService.ListByFolder(c.Request.Context(), ownerID, nil)
	default:
		images, err = h.imageService.ListByFolder(c.Request.Context(), ownerID, &filter)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toImageResponses(images))
}

func (h HandlerSet) ListAllImages(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	images, err := h.imageService.ListAll(c.Request.Context(), ownerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toImageResponses(images))
}

func (h HandlerSet) GetImage(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	image, err := h.imageService.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toImageResponse(image))
}

func (h HandlerSet) DownloadImage(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	image, err := h.imageService.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Redirect(http.StatusFound, image.URL)
}

func (h HandlerSet) RotateImage(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	image, err := h.imageService.Rotate(c.Request.Context(), ownerID, c.Param("id"), c.Query("direction"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toImageResponse(image))
}

type updateMetadataRequest struct {
	Author      *string `json:"author"`
	Title       *string `json:"title"`
	Subject     *string `json:"subject"`
	Theme       *string `json:"theme"`
	Description *string `json:"description"`
	Tags        any     `json:"tags"`
}

var tagSeparator = regexp.MustCompile(`[ ,]+`)

// normalizeTags accepts either a list of strings or a single comma/space
// separated string, and drops empty entries. A non-string payload is treated
// as absent.
func normalizeTags(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return splitTags(v)
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

func splitTags(raw string) []string {
	parts := tagSeparator.Split(raw, -1)
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// UpdateImageMetadata checks ownership through a scoped lookup before the
// unscoped metadata update runs.
func (h HandlerSet) UpdateImageMetadata(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	var req updateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation(err.Error()))
		return
	}

	imageID := c.Param("id")
	if _, err := h.imageService.GetByID(c.Request.Context(), ownerID, imageID); err != nil {
		h.writeError(c, err)
		return
	}

	updated, err := h.imageService.UpdateMetadata(c.Request.Context(), imageID, models.ImageMetadata{
		Author:      req.Author,
		Title:       req.Title,
		Subject:     req.Subject,
		Theme:       req.Theme,
		Description: req.Description,
		Tags:        normalizeTags(req.Tags),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toImageResponse(updated))
}

type moveImageRequest struct {
	FolderID *string `json:"folderId"`
}

func (h HandlerSet) MoveImage(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	var req moveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation(err.Error()))
		return
	}

	if err := h.imageService.MoveToFolder(c.Request.Context(), ownerID, c.Param("id"), normalizeID(req.FolderID)); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h HandlerSet) DeleteImage(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
