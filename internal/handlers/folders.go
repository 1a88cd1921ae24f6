package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galleria/api/internal/apperr"
	"galleria/api/internal/middleware"
)

type createFolderRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentId"`
}

func (h HandlerSet) CreateFolder(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation(err.Error()))
		return
	}

	folder, err := h.folderService.Create(c.Request.Context(), ownerID, req.Name, normalizeID(req.ParentID))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toFolderResponse(folder))
}

func (h HandlerSet) ListFolders(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	folders, err := h.folderService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFolderResponses(folders))
}

func (h HandlerSet) GetFolder(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	folder, err := h.folderService.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFolderResponse(folder))
}

type moveFolderRequest struct {
	ParentID *string `json:"parentId"`
}

func (h HandlerSet) MoveFolder(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	var req moveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperr.Validation(err.Error()))
		return
	}

	folder, err := h.folderService.Move(c.Request.Context(), ownerID, c.Param("id"), normalizeID(req.ParentID))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFolderResponse(folder))
}

func (h HandlerSet) DeleteFolder(c *gin.Context) {
	ownerID, ok := middleware.OwnerID(c)
	if !ok {
		h.writeError(c, apperr.Unauthorized("unauthorized"))
		return
	}

	if err := h.folderService.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// normalizeID treats an empty string the same as an absent id, both meaning
// the root.
func normalizeID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
