package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

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
)

// maxDeleteBatch is the DeleteObjects limit per request.
const maxDeleteBatch = 1000

// API is the subset of the S3 client used by Store.
type API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, in *s3.DeleteObjectsInput, opts ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// Store keeps documents in an S3 bucket.
type Store struct {
	client API
	bucket string
	prefix string
	now    func() time.Time
}

// New creates a store from settings using the default AWS configuration
// chain. Static keys and a custom endpoint are applied when set.
func New(ctx context.Context, settings domain.S3Settings) (*Store, error) {
	if settings.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket required", domain.ErrInvalidInput)
	}

	var opts []func(*config.LoadOptions) error
	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}
	if settings.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, settings.Bucket, settings.Prefix), nil
}

// NewWithClient creates a store around an existing client.
func NewWithClient(client API, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

// FetchDocuments lists the owner's objects, skipping markers.
func (s *Store) FetchDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	objects, err := s.list(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(objects))
	for _, obj := range objects {
		key := aws.ToString(obj.Key)
		name, ok := objectkey.Filename(s.prefix, ownerID, key)
		if !ok {
			continue
		}
		docs = append(docs, domain.Document{
			ID:         key,
			OwnerID:    ownerID,
			Filename:   name,
			FileSize:   aws.ToInt64(obj.Size),
			UploadedAt: aws.ToTime(obj.LastModified),
		})
	}
	return docs, nil
}

func (s *Store) list(ctx context.Context, ownerID string) ([]types.Object, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(objectkey.OwnerPrefix(s.prefix, ownerID)),
		Delimiter: aws.String("/"),
	})

	var objects []types.Object
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		objects = append(objects, page.Contents...)
	}
	return objects, nil
}

// DeleteDocuments deletes the documents. Existence is checked first so a
// batch naming a missing document deletes nothing.
func (s *Store) DeleteDocuments(ctx context.Context, docs []domain.Document) error {
	existing := make(map[string]bool)
	listed := make(map[string]bool)
	for _, d := range docs {
		if listed[d.OwnerID] {
			continue
		}
		objects, err := s.list(ctx, d.OwnerID)
		if err != nil {
			return err
		}
		for _, obj := range objects {
			existing[aws.ToString(obj.Key)] = true
		}
		listed[d.OwnerID] = true
	}

	ids := make([]types.ObjectIdentifier, 0, len(docs))
	for _, d := range docs {
		key := objectkey.Key(s.prefix, d.OwnerID, d.Filename)
		if !existing[key] {
			return fmt.Errorf("%s: %w", d.Filename, domain.ErrNotFound)
		}
		ids = append(ids, types.ObjectIdentifier{Key: aws.String(key)})
	}

	for start := 0; start < len(ids); start += maxDeleteBatch {
		end := min(start+maxDeleteBatch, len(ids))
		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: ids[start:end], Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("deleting objects: %w", err)
		}
		if len(out.Errors) > 0 {
			return deleteErrors(out.Errors)
		}
	}
	return nil
}

func deleteErrors(errs []types.Error) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", aws.ToString(e.Key), aws.ToString(e.Message)))
	}
	return fmt.Errorf("deleting objects: %s", strings.Join(msgs, "; "))
}

// Reload writes the .reload marker with the request time.
func (s *Store) Reload(ctx context.Context, ownerID string) error {
	stamp := strconv.FormatInt(s.now().Unix(), 10)
	if err := s.putMarker(ctx, ownerID, objectkey.ReloadMarker, stamp); err != nil {
		return fmt.Errorf("writing reload marker: %w", err)
	}
	logger.Debug("s3: reload requested for %s", ownerID)
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
	rc, _, err := s.get(ctx, objectkey.Marker(s.prefix, ownerID, objectkey.LanguageMarker))
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("reading language: %w", err)
	}
	return domain.ParseLanguage(string(data))
}

// Download opens a document.
func (s *Store) Download(ctx context.Context, ownerID, filename string) (io.ReadCloser, int64, error) {
	if !objectkey.ValidFilename(filename) {
		return nil, 0, fmt.Errorf("%w: filename %q", domain.ErrInvalidInput, filename)
	}
	return s.get(ctx, objectkey.Key(s.prefix, ownerID, filename))
}

// Put uploads a document.
func (s *Store) Put(ctx context.Context, doc domain.Document, content io.Reader) error {
	if doc.OwnerID == "" {
		return domain.ErrOwnerRequired
	}
	if !objectkey.ValidFilename(doc.Filename) {
		return fmt.Errorf("%w: filename %q", domain.ErrInvalidInput, doc.Filename)
	}
	// PutObject needs a seekable body to compute the payload checksum.
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectkey.Key(s.prefix, doc.OwnerID, doc.Filename)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", doc.Filename, err)
	}
	return nil
}

func (s *Store) putMarker(ctx context.Context, ownerID, marker, body string) error {
	if ownerID == "" {
		return domain.ErrOwnerRequired
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectkey.Marker(s.prefix, ownerID, marker)),
		Body:   strings.NewReader(body),
	})
	return err
}

func (s *Store) get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("getting %s: %w", key, err)
	}
	size := int64(-1)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}
