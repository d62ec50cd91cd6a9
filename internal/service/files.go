package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/logging"
)

const (
	FolderProducts      = "product"
	FolderCategories    = "categories"
	FolderSubcategories = "subcategories"
	FolderBrands        = "brands"
)

// folders that hold a single avatar-style image
var singleFileFolders = map[string]bool{
	FolderCategories:    true,
	FolderSubcategories: true,
	FolderBrands:        true,
}

var allowedFolders = map[string]bool{
	FolderProducts:      true,
	FolderCategories:    true,
	FolderSubcategories: true,
	FolderBrands:        true,
}

// seed images shipped with the app, never deleted on replace
var defaultAppFiles = map[string]bool{
	"public/assets/images/category.png":    true,
	"public/assets/images/brand.png":       true,
	"public/assets/images/product.png":     true,
	"public/assets/images/subcategory.png": true,
}

type FilesService struct {
	Root string
}

type FileResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Save writes the uploaded files under Root/<folder> and removes the
// files they replace. Returned URLs are app-root-relative paths.
func (s *FilesService) Save(ctx context.Context, files []*multipart.FileHeader, folder string, oldPaths []string) ([]FileResponse, error) {
	if !allowedFolders[folder] {
		return nil, apperr.New(apperr.Validation, fmt.Sprintf("invalid folder name: %s", folder))
	}
	if singleFileFolders[folder] && len(files) > 1 {
		return nil, apperr.New(apperr.Validation, "only one file can be uploaded for avatars")
	}
	if len(files) == 0 {
		return nil, apperr.New(apperr.Validation, "no files to upload")
	}

	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create upload dir", err)
	}

	s.RemoveOld(ctx, oldPaths)

	response := make([]FileResponse, 0, len(files))
	for _, fh := range files {
		name := uniqueFileName(fh.Filename)
		dst := filepath.Join(dir, name)

		if err := saveFile(fh, dst); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "could not save file", err)
		}

		response = append(response, FileResponse{
			URL:  filepath.ToSlash(dst),
			Name: name,
		})
	}
	return response, nil
}

// RemoveOld deletes replaced images from disk, skipping the shipped
// defaults. Stale files are a cleanup concern, not a request failure.
func (s *FilesService) RemoveOld(ctx context.Context, paths []string) {
	l := logging.FromContext(ctx).With("svc", "files")
	for _, p := range paths {
		if p == "" || defaultAppFiles[p] {
			continue
		}
		if err := os.Remove(filepath.FromSlash(p)); err != nil && !os.IsNotExist(err) {
			l.Warn("could not remove old file", "path", p, "error", err)
		}
	}
}

func saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func uniqueFileName(original string) string {
	ext := filepath.Ext(original)
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), ext))
	return fmt.Sprintf("%s-%d-%s%s", base, time.Now().UnixMilli(), uuid.NewString(), ext)
}
