// Package media uploads images and videos to the media CDN and builds
// transformation URLs for them.
//
// Files are checked for type and size before any network call; rejected
// files never reach the backend.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// Resource types understood by the backend.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

// Upload limits.
const (
	MaxImageBytes int64 = 10 << 20
	MaxVideoBytes int64 = 100 << 20
)

// Folders used by the admin screens.
const (
	FolderBooks        = "books"
	FolderSpeeches     = "speeches"
	FolderBlogs        = "blogs"
	FolderTestimonials = "testimonials"
	FolderVideos       = "videos"
)

// MsgUploadFailed is shown for every backend failure.
const MsgUploadFailed = "Upload failed. Please try again."

// sniffLen is how much of a file mimetype needs to see.
const sniffLen = 3072

// File is an upload candidate.
type File struct {
	Name string
	Size int64
	Body io.Reader
}

// Result is what the backend reports for a stored asset.
type Result struct {
	PublicID     string
	SecureURL    string
	URL          string
	Width        int
	Height       int
	Format       string
	ResourceType string
	Bytes        int
	Version      int
}

// UploadParams is passed to the backend.
type UploadParams struct {
	Folder       string
	ResourceType string
	Filename     string
}

// Backend is the hosted media API.
type Backend interface {
	Upload(ctx context.Context, body io.Reader, p UploadParams) (Result, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

// ValidationError is a file rejected before upload.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UploadError wraps a backend failure with the fixed user message.
type UploadError struct {
	Op  string
	Err error
}

func (e *UploadError) Error() string     { return MsgUploadFailed }
func (e *UploadError) Unwrap() error     { return e.Err }
func (e *UploadError) ErrorCode() string { return "upload-failed" }

// IsValidation reports whether err was a pre-upload rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Service validates files and hands them to the backend.
type Service struct {
	backend   Backend
	cloudName string
	log       *zap.Logger
}

func NewService(backend Backend, cloudName string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{backend: backend, cloudName: cloudName, log: log}
}

// CloudName is used by the URL builders.
func (s *Service) CloudName() string { return s.cloudName }

// Enabled reports whether a backend is configured.
func (s *Service) Enabled() bool { return s != nil && s.backend != nil }

// UploadImage uploads an image of at most MaxImageBytes.
func (s *Service) UploadImage(ctx context.Context, f File, folder string) (Result, error) {
	return s.upload(ctx, f, folder, ResourceImage, MaxImageBytes)
}

// UploadVideo uploads a video of at most MaxVideoBytes.
func (s *Service) UploadVideo(ctx context.Context, f File, folder string) (Result, error) {
	return s.upload(ctx, f, folder, ResourceVideo, MaxVideoBytes)
}

// DeleteResource removes an asset.
func (s *Service) DeleteResource(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = ResourceImage
	}
	if !s.Enabled() {
		return &UploadError{Op: "destroy", Err: errors.New("media backend not configured")}
	}
	if err := s.backend.Destroy(ctx, publicID, resourceType); err != nil {
		s.log.Warn("media delete failed",
			zap.String("public_id", publicID),
			zap.String("resource_type", resourceType),
			zap.Error(err))
		return &UploadError{Op: "destroy", Err: err}
	}
	return nil
}

func (s *Service) upload(ctx context.Context, f File, folder, kind string, limit int64) (Result, error) {
	body, err := Validate(f, kind, limit)
	if err != nil {
		return Result{}, err
	}
	if !s.Enabled() {
		return Result{}, &UploadError{Op: "upload", Err: errors.New("media backend not configured")}
	}

	res, err := s.backend.Upload(ctx, body, UploadParams{
		Folder:       folder,
		ResourceType: kind,
		Filename:     f.Name,
	})
	if err != nil {
		s.log.Warn("media upload failed",
			zap.String("file", f.Name),
			zap.String("resource_type", kind),
			zap.Error(err))
		return Result{}, &UploadError{Op: "upload", Err: err}
	}
	s.log.Info("media uploaded",
		zap.String("public_id", res.PublicID),
		zap.String("resource_type", kind),
		zap.Int("bytes", res.Bytes))
	return res, nil
}

// CheckImage runs the image upload checks on f without uploading it.
func CheckImage(f File) error {
	_, err := Validate(f, ResourceImage, MaxImageBytes)
	return err
}

// CheckVideo runs the video upload checks on f without uploading it.
func CheckVideo(f File) error {
	_, err := Validate(f, ResourceVideo, MaxVideoBytes)
	return err
}

// Validate checks the declared size and sniffed content type of f. It
// returns a reader that replays the sniffed prefix followed by the rest of
// the body.
func Validate(f File, kind string, limit int64) (io.Reader, error) {
	noun := "image"
	if kind == ResourceVideo {
		noun = "video"
	}
	if f.Body == nil {
		return nil, &ValidationError{Msg: fmt.Sprintf("Please select a valid %s file", noun)}
	}
	if f.Size > limit {
		return nil, &ValidationError{Msg: fmt.Sprintf("%s file size must be less than %dMB", titleCase(noun), limit>>20)}
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), kind+"/") {
		return nil, &ValidationError{Msg: fmt.Sprintf("Please select a valid %s file", noun)}
	}
	return io.MultiReader(bytes.NewReader(head), f.Body), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
