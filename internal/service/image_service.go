package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"medguide/internal/diagnosis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImageBytes caps a single upload.
const MaxImageBytes = 10 << 20

// ImageService stores uploaded images and returns the placeholder analysis.
type ImageService interface {
	Analyze(ctx context.Context, upload ImageUpload) (*ImageAnalysisResponse, error)
}

// ImageUpload describes one multipart file part.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type ImageAnalysisResponse struct {
	File string `json:"file"`
	diagnosis.ImageAnalysis
}

type imageService struct {
	dir    string
	logger *zap.Logger
}

func NewImageService(uploadDir string, logger *zap.Logger) ImageService {
	return &imageService{dir: uploadDir, logger: logger}
}

func (s *imageService) Analyze(ctx context.Context, upload ImageUpload) (*ImageAnalysisResponse, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, fmt.Errorf("%w: content type %q is not an image", ErrInvalidInput, upload.ContentType)
	}

	data, err := io.ReadAll(io.LimitReader(upload.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image is empty", ErrInvalidInput)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, MaxImageBytes)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	name := uuid.NewString() + imageExt(upload.Filename)
	path := filepath.Join(s.dir, name)
	if err := writeFile(path, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	s.logger.Info("image stored", zap.String("file", name), zap.Int("bytes", len(data)))

	return &ImageAnalysisResponse{
		File:          name,
		ImageAnalysis: diagnosis.AnalyzeImage(data),
	}, nil
}

// imageExt keeps a short alphanumeric extension from the client file name.
func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 6 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}

func writeFile(path string, r io.Reader) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write upload file: %w", err)
	}
	return f.Close()
}
