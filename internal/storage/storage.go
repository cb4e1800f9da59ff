package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// Bucket specs for the two public upload targets. Buckets are created on
// demand with their size limits when first used.
var (
	ProfilePictures = BucketSpec{Name: "profile-pictures", FileSizeLimit: "5mb"}
	TruckImages     = BucketSpec{Name: "truck-images", FileSizeLimit: "10mb"}
)

// BucketSpec names a public bucket and its upload size limit.
type BucketSpec struct {
	Name          string
	FileSizeLimit string
}

// Uploader stores a file publicly and returns its URL. Satisfied by Client;
// mocked in service tests.
type Uploader interface {
	UploadPublic(spec BucketSpec, filename string, data io.Reader, contentType string) (string, error)
}

// Client wraps the storage backend used for profile pictures and truck images.
type Client struct {
	storage *storage_go.Client
}

// New creates a storage client against the configured storage URL using the
// service-role key.
func New(rawURL, serviceKey string) *Client {
	return &Client{storage: storage_go.NewClient(rawURL, serviceKey, nil)}
}

// UploadPublic ensures the bucket exists, uploads under the given name and
// returns the public URL.
func (c *Client) UploadPublic(spec BucketSpec, filename string, data io.Reader, contentType string) (string, error) {
	if err := c.ensureBucket(spec); err != nil {
		return "", err
	}

	opts := storage_go.FileOptions{ContentType: &contentType}
	if _, err := c.storage.UploadFile(spec.Name, filename, data, opts); err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", spec.Name, filename, err)
	}

	res := c.storage.GetPublicUrl(spec.Name, filename)
	return res.SignedURL, nil
}

// ensureBucket creates the bucket as public with its size limit if missing.
func (c *Client) ensureBucket(spec BucketSpec) error {
	if _, err := c.storage.GetBucket(spec.Name); err == nil {
		return nil
	}

	_, err := c.storage.CreateBucket(spec.Name, storage_go.BucketOptions{
		Public:        true,
		FileSizeLimit: spec.FileSizeLimit,
	})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return fmt.Errorf("create bucket %s: %w", spec.Name, err)
	}
	return nil
}

// RandomObjectName builds a randomized object name preserving the extension of
// the uploaded file.
func RandomObjectName(originalName string) string {
	ext := ""
	if i := strings.LastIndex(originalName, "."); i >= 0 {
		ext = originalName[i:]
	}
	return uuid.New().String() + ext
}
