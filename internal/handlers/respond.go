package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"galleria/api/internal/apperr"
	"galleria/api/internal/models"
)

// statusFor is the single taxonomy-to-HTTP translation.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindReservedName:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicateName, apperr.KindInvalidOperation:
		return http.StatusConflict
	case apperr.KindExternalStore:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h HandlerSet) writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	message := "internal server error"
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		message = "internal server error"
	}

	c.JSON(status, gin.H{
		"error":   kind.String(),
		"message": message,
	})
}

type folderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFolderResponse(folder models.Folder) folderResponse {
	return folderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		ParentID:  folder.ParentID,
		CreatedAt: folder.CreatedAt,
	}
}

func toFolderResponses(folders []models.Folder) []folderResponse {
	resp := make([]folderResponse, 0, len(folders))
	for _, folder := range folders {
		resp = append(resp, toFolderResponse(folder))
	}
	return resp
}

type imageResponse struct {
	ID           string    `json:"id"`
	FolderID     *string   `json:"folderId"`
	PublicID     string    `json:"publicId"`
	URL          string    `json:"url"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	SizeBytes    int64     `json:"sizeBytes"`
	Author       *string   `json:"author"`
	Title        *string   `json:"title"`
	Subject      *string   `json:"subject"`
	Theme        *string   `json:"theme"`
	Description  *string   `json:"description"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toImageResponse(image models.Image) imageResponse {
	return imageResponse{
		ID:           image.ID,
		FolderID:     image.FolderID,
		PublicID:     image.PublicID,
		URL:          image.URL,
		OriginalName: image.OriginalName,
		MimeType:     image.MimeType,
		SizeBytes:    image.SizeBytes,
		Author:       image.Author,
		Title:        image.Title,
		Subject:      image.Subject,
		Theme:        image.Theme,
		Description:  image.Description,
		Tags:         image.Tags,
		CreatedAt:    image.CreatedAt,
		UpdatedAt:    image.UpdatedAt,
	}
}

func toImageResponses(images []models.Image) []imageResponse {
	resp := make([]imageResponse, 0, len(images))
	for _, image := range images {
		resp = append(resp, toImageResponse(image))
	}
	return resp
}
