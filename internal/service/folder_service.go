package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"galleria/api/internal/apperr"
	"galleria/api/internal/ids"
	"galleria/api/internal/models"
	"galleria/api/internal/repository"
)

const maxFolderNameLen = 64

// FolderService owns the folder-tree invariants: the reserved virtual root,
// per-(owner, parent) name uniqueness, cycle-free moves and non-destructive
// deletes. Every lookup is ownership-scoped, so a foreign folder id behaves
// exactly like a missing one.
type FolderService struct {
	folders FolderGateway
	images  ImageGateway
	log     zerolog.Logger
}

func NewFolderService(folders FolderGateway, images ImageGateway, log zerolog.Logger) *FolderService {
	return &FolderService{
		folders: folders,
		images:  images,
		log:     log,
	}
}

func validateFolderName(name string) error {
	if name == "" {
		return apperr.Validation("folder name must not be empty")
	}
	if len(name) > maxFolderNameLen {
		return apperr.Validation(fmt.Sprintf("folder name must be at most %d characters", maxFolderNameLen))
	}
	return nil
}

func (s *FolderService) Create(ctx context.Context, ownerID string, name string, parentID *string) (models.Folder, error) {
	if err := validateFolderName(name); err != nil {
		return models.Folder{}, err
	}
	if name == models.RootFolderName {
		return models.Folder{}, apperr.ReservedName(`name "Home" is reserved`)
	}

	if parentID != nil {
		if _, err := s.folders.GetByID(ctx, ownerID, *parentID); err != nil {
			if errors.Is(err, repository.ErrFolderNotFound) {
				return models.Folder{}, apperr.NotFound("parent folder not found")
			}
			return models.Folder{}, fmt.Errorf("resolve parent: %w", err)
		}
	}

	if _, err := s.folders.FindByName(ctx, ownerID, name, parentID); err == nil {
		return models.Folder{}, apperr.DuplicateName("folder with this name already exists")
	} else if !errors.Is(err, repository.ErrFolderNotFound) {
		return models.Folder{}, fmt.Errorf("check duplicate name: %w", err)
	}

	folder := models.Folder{
		ID:       ids.New(),
		OwnerID:  ownerID,
		ParentID: parentID,
		Name:     name,
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		// The unique index closes the race the pre-check cannot.
		if errors.Is(err, repository.ErrDuplicateFolder) {
			return models.Folder{}, apperr.DuplicateName("folder with this name already exists")
		}
		return models.Folder{}, fmt.Errorf("create folder: %w", err)
	}

	s.log.Info().
		Str("owner_id", ownerID).
		Str("folder_id", folder.ID).
		Str("name", name).
		Msg("folder created")

	return s.folders.GetByID(ctx, ownerID, folder.ID)
}

// List returns the owner's folders newest first. The virtual Home root is
// never included.
func (s *FolderService) List(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.folders.ListByOwner(ctx, ownerID)
}

func (s *FolderService) GetByID(ctx context.Context, ownerID string, folderID string) (models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, ownerID, folderID)
	if err != nil {
		if errors.Is(err, repository.ErrFolderNotFound) {
			return models.Folder{}, apperr.NotFound("folder not found")
		}
		return models.Folder{}, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// Move re-parents a folder. A nil newParentID moves it to the root. The move
// is rejected when the target slot already holds a folder with the same name
// or when it would place the folder inside its own subtree.
func (s *FolderService) Move(ctx context.Context, ownerID string, folderID string, newParentID *string) (models.Folder, error) {
	folder, err := s.GetByID(ctx, ownerID, folderID)
	if err != nil {
		return models.Folder{}, err
	}

	if folder.IsRoot() {
		return models.Folder{}, apperr.New(apperr.KindInvalidOperation, "cannot move Home folder")
	}

	if newParentID != nil {
		if *newParentID == folderID {
			return models.Folder{}, apperr.New(apperr.KindInvalidOperation, "cannot move a folder into itself")
		}
		parent, err := s.folders.GetByID(ctx, ownerID, *newParentID)
		if err != nil {
			if errors.Is(err, repository.ErrFolderNotFound) {
				return models.Folder{}, apperr.NotFound("target parent folder not found")
			}
			return models.Folder{}, fmt.Errorf("resolve target parent: %w", err)
		}
		if err := s.checkNoCycle(ctx, ownerID, folderID, parent); err != nil {
			return models.Folder{}, err
		}
	}

	if dup, err := s.folders.FindByName(ctx, ownerID, folder.Name, newParentID); err == nil {
		if dup.ID != folderID {
			return models.Folder{}, apperr.DuplicateName("folder with the same name exists in target location")
		}
	} else if !errors.Is(err, repository.ErrFolderNotFound) {
		return models.Folder{}, fmt.Errorf("check duplicate name: %w", err)
	}

	updated, err := s.folders.UpdateParent(ctx, ownerID, folderID, newParentID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFolder) {
			return models.Folder{}, apperr.DuplicateName("folder with the same name exists in target location")
		}
		return models.Folder{}, fmt.Errorf("update parent: %w", err)
	}

	s.log.Info().
		Str("owner_id", ownerID).
		Str("folder_id", folderID).
		Msg("folder moved")

	return updated, nil
}

// checkNoCycle walks from the proposed parent up to the root and fails if
// the walk passes through the folder being moved.
func (s *FolderService) checkNoCycle(ctx context.Context, ownerID string, folderID string, parent models.Folder) error {
	current := parent
	for current.ParentID != nil {
		if *current.ParentID == folderID {
			return apperr.New(apperr.KindInvalidOperation, "cannot move a folder into its own subtree")
		}
		next, err := s.folders.GetByID(ctx, ownerID, *current.ParentID)
		if err != nil {
			return fmt.Errorf("walk ancestors: %w", err)
		}
		current = next
	}
	return nil
}

// Delete removes an empty folder. Folders that still contain subfolders or
// images are rejected rather than silently orphaning their contents.
func (s *FolderService) Delete(ctx context.Context, ownerID string, folderID string) error {
	folder, err := s.GetByID(ctx, ownerID, folderID)
	if err != nil {
		return err
	}

	if folder.IsRoot() {
		return apperr.New(apperr.KindInvalidOperation, "cannot delete Home folder")
	}

	children, err := s.folders.CountChildren(ctx, ownerID, folderID)
	if err != nil {
		return fmt.Errorf("count subfolders: %w", err)
	}
	images, err := s.images.CountByFolder(ctx, ownerID, folderID)
	if err != nil {
		return fmt.Errorf("count images: %w", err)
	}
	if children > 0 || images > 0 {
		return apperr.New(apperr.KindInvalidOperation, "folder is not empty")
	}

	if err := s.folders.Delete(ctx, ownerID, folderID); err != nil {
		if errors.Is(err, repository.ErrFolderNotFound) {
			return apperr.NotFound("folder not found")
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	s.log.Info().
		Str("owner_id", ownerID).
		Str("folder_id", folderID).
		Msg("folder deleted")

	return nil
}
