package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryHost implements Host using Cloudinary
type CloudinaryHost struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryHost creates a CloudinaryHost from a CLOUDINARY_URL-style URL
func NewCloudinaryHost(cloudinaryURL, folder string) (*CloudinaryHost, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL not provided")
	}
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("error initializing cloudinary client: %w", err)
	}
	return &CloudinaryHost{client: client, folder: folder}, nil
}

// Upload stores the payload under a fresh public ID and returns the secure URL
func (h *CloudinaryHost) Upload(ctx context.Context, payload string) (string, error) {
	result, err := h.client.Upload.Upload(ctx, payload, uploader.UploadParams{
		Folder:   h.folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// Delete removes the asset behind a previously returned URL
func (h *CloudinaryHost) Delete(ctx context.Context, url string) error {
	publicID := publicIDFromURL(url)
	if publicID == "" {
		return fmt.Errorf("cannot derive public ID from url %q", url)
	}
	if h.folder != "" {
		publicID = h.folder + "/" + publicID
	}
	_, err := h.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL extracts the last path segment without its extension,
// matching how Cloudinary delivery URLs encode the public ID.
func publicIDFromURL(url string) string {
	segments := strings.Split(url, "/")
	last := segments[len(segments)-1]
	if last == "" {
		return ""
	}
	if dot := strings.LastIndex(last, "."); dot > 0 {
		last = last[:dot]
	}
	return last
}
