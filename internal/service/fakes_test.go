package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"galleria/api/internal/mediastore"
	"galleria/api/internal/models"
	"galleria/api/internal/repository"
)

// --- in-memory folder gateway ---

type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]models.Folder
	seq     int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]models.Folder)}
}

func (f *fakeFolderRepo) nextTime() time.Time {
	f.seq++
	return time.Unix(0, int64(f.seq)*int64(time.Second))
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (f *fakeFolderRepo) Create(_ context.Context, folder models.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.folders {
		if existing.OwnerID == folder.OwnerID && existing.Name == folder.Name && sameParent(existing.ParentID, folder.ParentID) {
			return repository.ErrDuplicateFolder
		}
	}
	folder.CreatedAt = f.nextTime()
	f.folders[folder.ID] = folder
	return nil
}

func (f *fakeFolderRepo) GetByID(_ context.Context, ownerID string, id string) (models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	folder, ok := f.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return models.Folder{}, repository.ErrFolderNotFound
	}
	return folder, nil
}

func (f *fakeFolderRepo) FindByName(_ context.Context, ownerID string, name string, parentID *string) (models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders {
		if folder.OwnerID == ownerID && folder.Name == name && sameParent(folder.ParentID, parentID) {
			return folder, nil
		}
	}
	return models.Folder{}, repository.ErrFolderNotFound
}

func (f *fakeFolderRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var folders []models.Folder
	for _, folder := range f.folders {
		if folder.OwnerID == ownerID {
			folders = append(folders, folder)
		}
	}
	sort.Slice(folders, func(i, j int) bool {
		return folders[i].CreatedAt.After(folders[j].CreatedAt)
	})
	return folders, nil
}

func (f *fakeFolderRepo) UpdateParent(_ context.Context, ownerID string, id string, parentID *string) (models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	folder, ok := f.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return models.Folder{}, repository.ErrFolderNotFound
	}
	for _, existing := range f.folders {
		if existing.ID != id && existing.OwnerID == ownerID && existing.Name == folder.Name && sameParent(existing.ParentID, parentID) {
			return models.Folder{}, repository.ErrDuplicateFolder
		}
	}
	folder.ParentID = parentID
	f.folders[id] = folder
	return folder, nil
}

func (f *fakeFolderRepo) Delete(_ context.Context, ownerID string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	folder, ok := f.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return repository.ErrFolderNotFound
	}
	delete(f.folders, id)
	return nil
}

func (f *fakeFolderRepo) CountChildren(_ context.Context, ownerID string, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, folder := range f.folders {
		if folder.OwnerID == ownerID && folder.ParentID != nil && *folder.ParentID == id {
			count++
		}
	}
	return count, nil
}

// --- in-memory image gateway ---

type fakeImageRepo struct {
	mu     sync.Mutex
	images map[string]models.Image
	seq    int
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[string]models.Image)}
}

func (f *fakeImageRepo) nextTime() time.Time {
	f.seq++
	return time.Unix(0, int64(f.seq)*int64(time.Second))
}

func (f *fakeImageRepo) Create(_ context.Context, image models.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.nextTime()
	image.CreatedAt = now
	image.UpdatedAt = now
	f.images[image.ID] = image
	return nil
}

func (f *fakeImageRepo) GetByID(_ context.Context, ownerID string, id string) (models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	image, ok := f.images[id]
	if !ok || image.OwnerID != ownerID {
		return models.Image{}, repository.ErrImageNotFound
	}
	return image, nil
}

func (f *fakeImageRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var images []models.Image
	for _, image := range f.images {
		if image.OwnerID == ownerID {
			images = append(images, image)
		}
	}
	sortImagesDesc(images)
	return images, nil
}

func (f *fakeImageRepo) ListByFolder(_ context.Context, ownerID string, folderID *string) ([]models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var images []models.Image
	for _, image := range f.images {
		if image.OwnerID == ownerID && sameParent(image.FolderID, folderID) {
			images = append(images, image)
		}
	}
	sortImagesDesc(images)
	return images, nil
}

func sortImagesDesc(images []models.Image) {
	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
}

func (f *fakeImageRepo) UpdateFolder(_ context.Context, ownerID string, id string, folderID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	image, ok := f.images[id]
	if !ok || image.OwnerID != ownerID {
		return repository.ErrImageNotFound
	}
	image.FolderID = folderID
	image.UpdatedAt = f.nextTime()
	f.images[id] = image
	return nil
}

func (f *fakeImageRepo) UpdateURL(_ context.Context, id string, url string) (models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	image, ok := f.images[id]
	if !ok {
		return models.Image{}, repository.ErrImageNotFound
	}
	image.URL = url
	image.UpdatedAt = f.nextTime()
	f.images[id] = image
	return image, nil
}

func (f *fakeImageRepo) UpdateMetadata(_ context.Context, id string, meta models.ImageMetadata) (models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	image, ok := f.images[id]
	if !ok {
		return models.Image{}, repository.ErrImageNotFound
	}
	if meta.Author != nil {
		image.Author = meta.Author
	}
	if meta.Title != nil {
		image.Title = meta.Title
	}
	if meta.Subject != nil {
		image.Subject = meta.Subject
	}
	if meta.Theme != nil {
		image.Theme = meta.Theme
	}
	if meta.Description != nil {
		image.Description = meta.Description
	}
	if meta.Tags != nil {
		image.Tags = meta.Tags
	}
	image.UpdatedAt = f.nextTime()
	f.images[id] = image
	return image, nil
}

func (f *fakeImageRepo) Delete(_ context.Context, ownerID string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	image, ok := f.images[id]
	if !ok || image.OwnerID != ownerID {
		return repository.ErrImageNotFound
	}
	delete(f.images, id)
	return nil
}

func (f *fakeImageRepo) CountByFolder(_ context.Context, ownerID string, folderID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, image := range f.images {
		if image.OwnerID == ownerID && image.FolderID != nil && *image.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

// --- in-memory owner gateway ---

type fakeOwnerRepo struct {
	mu     sync.Mutex
	owners map[string]models.Owner
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[string]models.Owner)}
}

func (f *fakeOwnerRepo) Create(_ context.Context, owner models.Owner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.owners {
		if existing.Email == owner.Email {
			return repository.ErrEmailTaken
		}
	}
	f.owners[owner.ID] = owner
	return nil
}

func (f *fakeOwnerRepo) FindByEmail(_ context.Context, email string) (models.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, owner := range f.owners {
		if owner.Email == email {
			return owner, nil
		}
	}
	return models.Owner{}, repository.ErrOwnerNotFound
}

func (f *fakeOwnerRepo) GetByID(_ context.Context, id string) (models.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[id]
	if !ok {
		return models.Owner{}, repository.ErrOwnerNotFound
	}
	return owner, nil
}

// --- fake media store ---

type fakeMediaStore struct {
	mu         sync.Mutex
	uploads    int
	versions   int
	assets     map[string]bool
	angles     map[string][]int
	failUpload error
	failRotate error
	failDelete error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{
		assets: make(map[string]bool),
		angles: make(map[string][]int),
	}
}

func (f *fakeMediaStore) Upload(_ context.Context, content io.Reader, params mediastore.UploadParams) (mediastore.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload != nil {
		return mediastore.Asset{}, f.failUpload
	}
	if content != nil {
		_, _ = io.ReadAll(content)
	}
	f.uploads++
	f.versions++
	publicID := fmt.Sprintf("%s/asset-%d", params.FolderName, f.uploads)
	f.assets[publicID] = true
	return mediastore.Asset{
		PublicID: publicID,
		URL:      fmt.Sprintf("https://store.test/%s?v=%d", publicID, f.versions),
	}, nil
}

func (f *fakeMediaStore) Rotate(_ context.Context, publicID string, angle int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRotate != nil {
		return "", f.failRotate
	}
	f.versions++
	f.angles[publicID] = append(f.angles[publicID], angle)
	return fmt.Sprintf("https://store.test/%s?v=%d", publicID, f.versions), nil
}

func (f *fakeMediaStore) Delete(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete != nil {
		return f.failDelete
	}
	delete(f.assets, publicID)
	return nil
}

// --- fake cache and queue ---

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payload, ok := f.entries[key]
	return payload, ok
}

func (f *fakeCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = payload
	f.sets++
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
	}
	f.deletes++
}

type fakeQueue struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (f *fakeQueue) Enqueue(_ context.Context, payload map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}
