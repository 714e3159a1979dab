package azure

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// fakeBlobs is an in-memory container.
type fakeBlobs struct {
	mu        sync.Mutex
	exists    bool
	blobs     map[string][]byte
	modified  time.Time
	deleted   []string
	created   int
	deleteErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{
		exists:   true,
		blobs:    make(map[string][]byte),
		modified: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func responseError(code bloberror.Code, status int) error {
	return &azcore.ResponseError{ErrorCode: string(code), StatusCode: status}
}

func (f *fakeBlobs) NewListBlobsFlatPager(_ string, o *azblob.ListBlobsFlatOptions) *runtime.Pager[azblob.ListBlobsFlatResponse] {
	return runtime.NewPager(runtime.PagingHandler[azblob.ListBlobsFlatResponse]{
		More: func(azblob.ListBlobsFlatResponse) bool { return false },
		Fetcher: func(context.Context, *azblob.ListBlobsFlatResponse) (azblob.ListBlobsFlatResponse, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if !f.exists {
				return azblob.ListBlobsFlatResponse{}, responseError(bloberror.ContainerNotFound, http.StatusNotFound)
			}

			var names []string
			for name := range f.blobs {
				if o != nil && o.Prefix != nil && !strings.HasPrefix(name, *o.Prefix) {
					continue
				}
				names = append(names, name)
			}
			sort.Strings(names)

			var items []*container.BlobItem
			for _, name := range names {
				size := int64(len(f.blobs[name]))
				items = append(items, &container.BlobItem{
					Name: &name,
					Properties: &container.BlobProperties{
						ContentLength: &size,
						LastModified:  &f.modified,
					},
				})
			}
			return azblob.ListBlobsFlatResponse{
				ListBlobsFlatSegmentResponse: container.ListBlobsFlatSegmentResponse{
					Segment: &container.BlobFlatListSegment{BlobItems: items},
				},
			}, nil
		},
	})
}

func (f *fakeBlobs) UploadStream(_ context.Context, _, name string, body io.Reader, _ *azblob.UploadStreamOptions) (azblob.UploadStreamResponse, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return azblob.UploadStreamResponse{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.exists {
		return azblob.UploadStreamResponse{}, responseError(bloberror.ContainerNotFound, http.StatusNotFound)
	}
	f.blobs[name] = data
	return azblob.UploadStreamResponse{}, nil
}

func (f *fakeBlobs) DownloadStream(_ context.Context, _, name string, _ *azblob.DownloadStreamOptions) (azblob.DownloadStreamResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[name]
	if !ok {
		return azblob.DownloadStreamResponse{}, responseError(bloberror.BlobNotFound, http.StatusNotFound)
	}
	size := int64(len(data))
	return azblob.DownloadStreamResponse{
		DownloadResponse: blob.DownloadResponse{
			Body:          io.NopCloser(bytes.NewReader(data)),
			ContentLength: &size,
		},
	}, nil
}

func (f *fakeBlobs) DeleteBlob(_ context.Context, _, name string, _ *azblob.DeleteBlobOptions) (azblob.DeleteBlobResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return azblob.DeleteBlobResponse{}, f.deleteErr
	}
	delete(f.blobs, name)
	f.deleted = append(f.deleted, name)
	return azblob.DeleteBlobResponse{}, nil
}

func (f *fakeBlobs) CreateContainer(context.Context, string, *azblob.CreateContainerOptions) (azblob.CreateContainerResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exists = true
	f.created++
	return azblob.CreateContainerResponse{}, nil
}

func newTestStore(t *testing.T) (*Store, *fakeBlobs) {
	t.Helper()
	fake := newFakeBlobs()
	store := NewWithClient(fake, "documents")
	store.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return store, fake
}

func put(t *testing.T, store *Store, owner, name, content string) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), domain.Document{OwnerID: owner, Filename: name}, strings.NewReader(content)))
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(domain.AzureSettings{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew_ConnectionString(t *testing.T) {
	store, err := New(domain.AzureSettings{
		ConnectionString: "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;" +
			"AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;" +
			"BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAzureContainer, store.container)
}

func TestStore_PutFetchDownload(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	put(t, store, "alice", "a.txt", "hello")
	put(t, store, "alice", "b.pdf", "pdf")
	put(t, store, "bob", "c.txt", "c")
	require.NoError(t, store.Reload(ctx, "alice"))

	docs, err := store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, domain.Document{
		ID:         "alice/a.txt",
		OwnerID:    "alice",
		Filename:   "a.txt",
		FileSize:   5,
		UploadedAt: fake.modified,
	}, docs[0])

	rc, size, err := store.Download(ctx, "alice", "a.txt")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, int64(5), size)

	_, _, err = store.Download(ctx, "alice", "missing.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PutCreatesContainer(t *testing.T) {
	store, fake := newTestStore(t)
	fake.exists = false

	docs, err := store.FetchDocuments(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, docs)

	put(t, store, "alice", "a.txt", "hello")
	assert.Equal(t, 1, fake.created)
	assert.Contains(t, fake.blobs, "alice/a.txt")
}

func TestStore_DeleteDocuments(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	put(t, store, "alice", "a.txt", "a")
	put(t, store, "alice", "b.txt", "b")
	put(t, store, "alice", "c.txt", "c")

	err := store.DeleteDocuments(ctx, []domain.Document{
		{OwnerID: "alice", Filename: "a.txt"},
		{OwnerID: "alice", Filename: "nope.txt"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, fake.deleted)

	err = store.DeleteDocuments(ctx, []domain.Document{
		{OwnerID: "alice", Filename: "a.txt"},
		{OwnerID: "alice", Filename: "c.txt"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice/a.txt", "alice/c.txt"}, fake.deleted)

	docs, err := store.FetchDocuments(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b.txt", docs[0].Filename)
}

func TestStore_DeleteDocuments_Failure(t *testing.T) {
	store, fake := newTestStore(t)
	put(t, store, "alice", "a.txt", "a")
	fake.deleteErr = responseError(bloberror.AuthorizationFailure, http.StatusForbidden)

	err := store.DeleteDocuments(context.Background(), []domain.Document{{OwnerID: "alice", Filename: "a.txt"}})
	require.Error(t, err)
	assert.True(t, bloberror.HasCode(err, bloberror.AuthorizationFailure))
}

func TestStore_Language(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetLanguage(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SetLanguage(ctx, domain.LanguageUpdate{Language: domain.LanguageGerman, OwnerID: "alice"}))
	assert.Equal(t, "de", string(fake.blobs["alice/.language"]))

	lang, err := store.GetLanguage(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageGerman, lang)
}

func TestStore_ReloadMarker(t *testing.T) {
	store, fake := newTestStore(t)

	require.NoError(t, store.Reload(context.Background(), "alice"))
	assert.Equal(t, "1700000000", string(fake.blobs["alice/.reload"]))

	assert.ErrorIs(t, store.Reload(context.Background(), ""), domain.ErrOwnerRequired)
}
