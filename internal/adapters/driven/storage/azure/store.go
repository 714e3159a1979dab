package azure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docdeck-cli/internal/adapters/driven/storage/objectkey"
	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DocumentStore    = (*Store)(nil)
	_ driven.LanguageStore    = (*Store)(nil)
	_ driven.ContentStore     = (*Store)(nil)
	_ driven.DocumentImporter = (*Store)(nil)
	_ API                     = (*azblob.Client)(nil)
)

// deleteConcurrency bounds parallel DeleteBlob calls.
const deleteConcurrency = 8

// API is the subset of *azblob.Client used by Store.
type API interface {
	NewListBlobsFlatPager(containerName string, o *azblob.ListBlobsFlatOptions) *runtime.Pager[azblob.ListBlobsFlatResponse]
	UploadStream(ctx context.Context, containerName, blobName string, body io.Reader, o *azblob.UploadStreamOptions) (azblob.UploadStreamResponse, error)
	DownloadStream(ctx context.Context, containerName, blobName string, o *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error)
	DeleteBlob(ctx context.Context, containerName, blobName string, o *azblob.DeleteBlobOptions) (azblob.DeleteBlobResponse, error)
	CreateContainer(ctx context.Context, containerName string, o *azblob.CreateContainerOptions) (azblob.CreateContainerResponse, error)
}

// Store keeps documents in a blob container.
type Store struct {
	client    API
	container string
	now       func() time.Time
}

// New creates a store from settings. A connection string wins over an
// account URL.
func New(settings domain.AzureSettings) (*Store, error) {
	container := settings.Container
	if container == "" {
		container = domain.DefaultAzureContainer
	}

	var (
		client *azblob.Client
		err    error
	)
	switch {
	case settings.ConnectionString != "":
		client, err = azblob.NewClientFromConnectionString(settings.ConnectionString, nil)
	case settings.AccountURL != "":
		var cred *azidentity.DefaultAzureCredential
		cred, err = azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure credential: %w", err)
		}
		client, err = azblob.NewClient(settings.AccountURL, cred, nil)
	default:
		return nil, fmt.Errorf("%w: azure connection string or account URL required", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return NewWithClient(client, container), nil
}

// NewWithClient creates a store around an existing client.
func NewWithClient(client API, container string) *Store {
	return &Store{
		client:    client,
		container: container,
		now:       time.Now,
	}
}

// FetchDocuments lists the owner's blobs, skipping markers.
func (s *Store) FetchDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	items, err := s.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(items))
	for _, item := range items {
		name, ok := objectkey.Filename("", ownerID, item.name)
		if !ok {
			continue
		}
		docs = append(docs, domain.Document{
			ID:         item.name,
			OwnerID:    ownerID,
			Filename:   name,
			FileSize:   item.size,
			UploadedAt: item.modified,
		})
	}
	return docs, nil
}

type blobInfo struct {
	name     string
	size     int64
	modified time.Time
}

func (s *Store) list(ctx context.Context, ownerID string) ([]blobInfo, error) {
	prefix := objectkey.OwnerPrefix("", ownerID)
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})

	var items []blobInfo
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if bloberror.HasCode(err, bloberror.ContainerNotFound) {
				return items, nil
			}
			return nil, fmt.Errorf("listing blobs: %w", err)
		}
		if page.Segment == nil {
			continue
		}
		for _, b := range page.Segment.BlobItems {
			if b == nil || b.Name == nil {
				continue
			}
			info := blobInfo{name: *b.Name}
			if p := b.Properties; p != nil {
				if p.ContentLength != nil {
					info.size = *p.ContentLength
				}
				if p.LastModified != nil {
					info.modified = *p.LastModified
				}
			}
			items = append(items, info)
		}
	}
	return items, nil
}

// DeleteDocuments deletes the documents concurrently. Existence is checked
// first so a batch naming a missing document deletes nothing.
func (s *Store) DeleteDocuments(ctx context.Context, docs []domain.Document) error {
	existing := make(map[string]bool)
	listed := make(map[string]bool)
	for _, d := range docs {
		if listed[d.OwnerID] {
			continue
		}
		items, err := s.list(ctx, d.OwnerID)
		if err != nil {
			return err
		}
		for _, item := range items {
			existing[item.name] = true
		}
		listed[d.OwnerID] = true
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		name := objectkey.Key("", d.OwnerID, d.Filename)
		if !existing[name] {
			return fmt.Errorf("%s: %w", d.Filename, domain.ErrNotFound)
		}
		names = append(names, name)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for _, name := range names {
		g.Go(func() error {
			_, err := s.client.DeleteBlob(gctx, s.container, name, nil)
			if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
				return fmt.Errorf("deleting %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Reload writes the .reload marker with the request time.
func (s *Store) Reload(ctx context.Context, ownerID string) error {
	stamp := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.putMarker(ctx, ownerID, objectkey.ReloadMarker, stamp); err != nil {
		return fmt.Errorf("writing reload marker: %w", err)
	}
	logger.Debug("azure: reload requested for %s", ownerID)
	return nil
}

// SetLanguage writes the .language marker.
func (s *Store) SetLanguage(ctx context.Context, update domain.LanguageUpdate) error {
	if !update.Language.IsValid() {
		return domain.ErrUnsupportedLanguage
	}
	if err := s.putMarker(ctx, update.OwnerID, objectkey.LanguageMarker, update.Language.String()); err != nil {
		return fmt.Errorf("writing language: %w", err)
	}
	return nil
}

// GetLanguage reads the .language marker.
func (s *Store) GetLanguage(ctx context.Context, ownerID string) (domain.Language, error) {
	rc, _, err := s.get(ctx, objectkey.Marker("", ownerID, objectkey.LanguageMarker))
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading language: %w", err)
	}
	return domain.ParseLanguage(strings.TrimSpace(string(data)))
}

// Download opens a document.
func (s *Store) Download(ctx context.Context, ownerID, filename string) (io.ReadCloser, int64, error) {
	if !objectkey.ValidFilename(filename) {
		return nil, 0, fmt.Errorf("%w: filename %q", domain.ErrInvalidInput, filename)
	}
	return s.get(ctx, objectkey.Key("", ownerID, filename))
}

// Put uploads a document.
func (s *Store) Put(ctx context.Context, doc domain.Document, content io.Reader) error {
	if doc.OwnerID == "" {
		return domain.ErrOwnerRequired
	}
	if !objectkey.ValidFilename(doc.Filename) {
		return fmt.Errorf("%w: filename %q", domain.ErrInvalidInput, doc.Filename)
	}
	// Buffered so the upload can be repeated after creating the container.
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	if err := s.upload(ctx, objectkey.Key("", doc.OwnerID, doc.Filename), data); err != nil {
		return fmt.Errorf("uploading %s: %w", doc.Filename, err)
	}
	return nil
}

func (s *Store) putMarker(ctx context.Context, ownerID, marker, body string) error {
	if ownerID == "" {
		return domain.ErrOwnerRequired
	}
	return s.upload(ctx, objectkey.Marker("", ownerID, marker), []byte(body))
}

// upload writes a blob, creating the container on first use.
func (s *Store) upload(ctx context.Context, name string, data []byte) error {
	_, err := s.client.UploadStream(ctx, s.container, name, bytes.NewReader(data), nil)
	if err == nil || !bloberror.HasCode(err, bloberror.ContainerNotFound) {
		return err
	}

	logger.Debug("azure: creating container %s", s.container)
	if _, err := s.client.CreateContainer(ctx, s.container, nil); err != nil &&
		!bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return fmt.Errorf("creating container: %w", err)
	}
	_, err = s.client.UploadStream(ctx, s.container, name, bytes.NewReader(data), nil)
	return err
}

func (s *Store) get(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("downloading %s: %w", name, err)
	}
	size := int64(-1)
	if resp.ContentLength != nil {
		size = *resp.ContentLength
	}
	if resp.Body == nil {
		return nil, 0, fmt.Errorf("downloading %s: empty response body", name)
	}
	return resp.Body, size, nil
}
