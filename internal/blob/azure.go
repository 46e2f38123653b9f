package blob

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"

	"proofpack/internal/platform/config"
)

// Azure signs read-only SAS URLs for blobs in one container. The client must
// be built from a connection string carrying an account key.
type Azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

func NewAzure(cfg config.BlobConfig, logger *slog.Logger) (*Azure, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &Azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger,
	}, nil
}

// EnsureContainer creates the container when missing.
func (a *Azure) EnsureContainer(ctx context.Context) error {
	_, err := a.client.CreateContainer(ctx, a.container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return fmt.Errorf("create container %s: %w", a.container, err)
	}
	a.logger.InfoContext(ctx, "blob container ready", "container", a.container)
	return nil
}

// Resolve checks the blob exists and returns a read-only SAS URL for it.
func (a *Azure) Resolve(ctx context.Context, key string, ttl time.Duration) (*Handle, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	blobClient := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)

	if _, err := blobClient.GetProperties(ctx, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("check blob %s: %w", key, err)
	}

	expiresAt := time.Now().UTC().Add(ttl)
	url, err := blobClient.GetSASURL(sas.BlobPermissions{Read: true}, expiresAt, nil)
	if err != nil {
		return nil, fmt.Errorf("sign blob %s: %w", key, err)
	}
	return &Handle{URL: url, ExpiresAt: expiresAt}, nil
}
