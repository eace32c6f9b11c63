package usecases

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/pkg/logger"
)

var (
	documentExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}
	imageExtensions    = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
)

const (
	sellerDocsFolder    = "seller_docs/"
	productImagesFolder = "product_images/"
)

// validateUploads rejects files whose extension is not in allowed
func validateUploads(files []entities.Upload, allowed map[string]bool) error {
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.FileName))
		if !allowed[ext] {
			formats := make([]string, 0, len(allowed))
			for _, candidate := range []string{".jpg", ".jpeg", ".png", ".pdf"} {
				if allowed[candidate] {
					formats = append(formats, strings.TrimPrefix(candidate, "."))
				}
			}
			return domainerrors.Validationf("file %q has an unsupported format; allowed: %s", f.FileName, strings.Join(formats, ", "))
		}
		if f.Content == nil {
			return domainerrors.Validationf("file %q is empty", f.FileName)
		}
	}
	return nil
}

// putAll stores files in order and returns their URLs; on failure the files already stored are removed
func putAll(ctx context.Context, store ObjectStore, folder string, files []entities.Upload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := store.Put(ctx, folder, f.FileName, f.ContentType, f.Size, f.Content)
		if err != nil {
			logger.Error(ctx, "Upload failed", zap.String("folder", folder), zap.String("file", f.FileName), zap.Error(err))
			discardUploads(ctx, store, urls)
			return nil, domainerrors.StorageError(err)
		}
		logger.Debug(ctx, "Upload stored", zap.String("folder", folder), zap.String("url", url))
		urls = append(urls, url)
	}
	return urls, nil
}

// discardUploads removes objects stored for a write that did not commit.
// Objects that cannot be removed are logged with their URL for manual cleanup.
func discardUploads(ctx context.Context, store ObjectStore, urls []string) {
	for _, url := range urls {
		if err := store.Remove(ctx, url); err != nil {
			logger.Warn(ctx, "Orphaned upload left in storage", zap.String("url", url), zap.Error(err))
			continue
		}
		logger.Debug(ctx, "Upload discarded", zap.String("url", url))
	}
}
