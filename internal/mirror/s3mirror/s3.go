// Package s3mirror mirrors collections into an S3-compatible object store.
//
// Each account/table pair is one JSON object at <account>/<table>.json in the
// configured bucket. Push and Remove rewrite that object; concurrent writers
// from different processes are last-writer-wins at object granularity.
package s3mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
)

// ObjectAPI is the part of *s3.Client the mirror uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type objectRow struct {
	ID        string     `json:"id"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	Payload   []byte     `json:"payload"`
	Nonce     []byte     `json:"nonce,omitempty"`
}

type object struct {
	Rows []objectRow `json:"rows"`
}

// Mirror stores rows as JSON objects in one bucket.
type Mirror struct {
	api     ObjectAPI
	bucket  string
	account string

	// serializes read-modify-write cycles of this process
	mu sync.Mutex
}

var _ mirror.Mirror = (*Mirror)(nil)

func New(api ObjectAPI, bucket, account string) *Mirror {
	return &Mirror{api: api, bucket: bucket, account: account}
}

// Open builds an S3 client for s. s.URL is the endpoint, s.Key holds
// "accessKey:secretKey". Path-style addressing is used so MinIO works.
func Open(ctx context.Context, s mirror.Settings) (*Mirror, error) {
	access, secret, ok := strings.Cut(s.Key, ":")
	if !ok {
		return nil, mirror.Unavailable("s3 open", errors.New(`key must be "accessKey:secretKey"`))
	}
	if s.S3Bucket == "" {
		return nil, mirror.Unavailable("s3 open", errors.New("bucket is not set"))
	}
	region := s.S3Region
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(access, secret, "")),
	)
	if err != nil {
		return nil, mirror.Unavailable("s3 config", err)
	}
	api := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.URL)
		o.UsePathStyle = true
	})

	account := s.Account
	if account == "" {
		account = access
	}
	return New(api, s.S3Bucket, account), nil
}

func (m *Mirror) key(table string) string {
	return path.Join(m.account, table+".json")
}

func (m *Mirror) Configured() bool { return true }

func (m *Mirror) Fetch(ctx context.Context, table string) ([]mirror.Row, error) {
	obj, err := m.load(ctx, table)
	if err != nil {
		return nil, mirror.Unavailable("fetch "+table, err)
	}
	rows := make([]mirror.Row, 0, len(obj))
	for _, r := range obj {
		rows = append(rows, mirror.Row(r))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (m *Mirror) Push(ctx context.Context, table string, rows []mirror.Row) error {
	if len(rows) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, err := m.load(ctx, table)
	if err != nil {
		return mirror.Unavailable("push "+table, err)
	}
	for _, r := range rows {
		obj[r.ID] = objectRow(r)
	}
	return mirror.Unavailable("push "+table, m.store(ctx, table, obj))
}

func (m *Mirror) Remove(ctx context.Context, table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, err := m.load(ctx, table)
	if err != nil {
		return mirror.Unavailable("remove "+table, err)
	}
	n := len(obj)
	for _, id := range ids {
		delete(obj, id)
	}
	if len(obj) == n {
		return nil
	}
	return mirror.Unavailable("remove "+table, m.store(ctx, table, obj))
}

func (m *Mirror) Ping(ctx context.Context) error {
	_, err := m.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(m.bucket)})
	return mirror.Unavailable("ping", err)
}

func (m *Mirror) Close() error { return nil }

// load returns the table object keyed by id; a missing object is empty.
func (m *Mirror) load(ctx context.Context, table string) (map[string]objectRow, error) {
	out, err := m.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(m.key(table)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var nf *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &nf) {
			return make(map[string]objectRow), nil
		}
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode object %s: %w", m.key(table), err)
	}
	byID := make(map[string]objectRow, len(obj.Rows))
	for _, r := range obj.Rows {
		byID[r.ID] = r
	}
	return byID, nil
}

func (m *Mirror) store(ctx context.Context, table string, byID map[string]objectRow) error {
	obj := object{Rows: make([]objectRow, 0, len(byID))}
	for _, r := range byID {
		obj.Rows = append(obj.Rows, r)
	}
	sort.Slice(obj.Rows, func(i, j int) bool { return obj.Rows[i].ID < obj.Rows[j].ID })

	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	_, err = m.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(m.key(table)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	return err
}
