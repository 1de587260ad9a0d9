package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary is the production Backend.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	preset string
}

// NewCloudinary builds a backend from account credentials. preset is an
// optional upload preset name.
func NewCloudinary(cloudName, apiKey, apiSecret, preset string) (*Cloudinary, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary: cloud name, api key and api secret are required")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, preset: preset}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, body io.Reader, p UploadParams) (Result, error) {
	resp, err := c.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		Folder:       p.Folder,
		ResourceType: p.ResourceType,
		UploadPreset: c.preset,
	})
	if err != nil {
		return Result{}, err
	}
	if resp.Error.Message != "" {
		return Result{}, errors.New(resp.Error.Message)
	}
	return Result{
		PublicID:     resp.PublicID,
		SecureURL:    resp.SecureURL,
		URL:          resp.URL,
		Width:        resp.Width,
		Height:       resp.Height,
		Format:       resp.Format,
		ResourceType: resp.ResourceType,
		Bytes:        resp.Bytes,
		Version:      resp.Version,
	}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID, resourceType string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	if resp.Result != "ok" {
		return fmt.Errorf("destroy %s: %s", publicID, resp.Result)
	}
	return nil
}
