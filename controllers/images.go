package controllers

import (
	"errors"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageStore keeps uploaded profile images on local disk under Dir.
type ImageStore struct {
	Dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir}
}

// Save writes the upload under folder with a random name and returns the
// path relative to Dir that is stored on the record.
func (s *ImageStore) Save(c *gin.Context, fh *multipart.FileHeader, folder string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	rel := filepath.Join(folder, name)
	if err := c.SaveUploadedFile(fh, filepath.Join(s.Dir, rel)); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Remove deletes a stored image. Missing files are ignored.
func (s *ImageStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// storeImage saves an optional upload. It returns "" when there is none.
func (h *Handler) storeImage(c *gin.Context, fh *multipart.FileHeader, folder string) (string, error) {
	if fh == nil {
		return "", nil
	}
	return h.Images.Save(c, fh, folder)
}

func (h *Handler) discardImage(path string) {
	if err := h.Images.Remove(path); err != nil {
		h.Log.WithComponent("images").WithError(err).Warn("Failed to remove image")
	}
}
