package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/directory"
)

// Object keys of the snapshots inside the bucket.
const (
	UsersKey = "users.json"
	PostsKey = "posts.json"
)

// ObjectStore is the part of *s3.Client the snapshot source needs.
type ObjectStore interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Settings describes an S3-compatible endpoint (MinIO in development).
type S3Settings struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

// NewS3Client builds a path-style client with static credentials.
func NewS3Client(ctx context.Context, st S3Settings) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(st.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			st.AccessKey,
			st.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(st.BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// S3Source serves the directory from two JSON array objects. Edits rewrite
// the users snapshot; writes from this process are serialized, concurrent
// writers elsewhere are last-write-wins.
type S3Source struct {
	store  ObjectStore
	bucket string
	mu     sync.Mutex
}

func NewS3Source(store ObjectStore, bucket string) *S3Source {
	return &S3Source{store: store, bucket: bucket}
}

func (s *S3Source) read(ctx context.Context, key string, out any) error {
	obj, err := s.store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return loadErr(fmt.Errorf("%s: %w", key, common.ErrorNotFound))
		}
		return loadErr(fmt.Errorf("get %s: %w", key, err))
	}
	defer obj.Body.Close()

	if err := json.NewDecoder(obj.Body).Decode(out); err != nil {
		return loadErr(fmt.Errorf("decode %s: %w", key, err))
	}
	return nil
}

func (s *S3Source) Users(ctx context.Context) ([]directory.User, error) {
	users := []directory.User{}
	if err := s.read(ctx, UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *S3Source) UserByID(ctx context.Context, id int) (*directory.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, loadErr(common.ErrorNotFound)
}

func (s *S3Source) PostsByUserID(ctx context.Context, userID int) ([]directory.Post, error) {
	all := []directory.Post{}
	if err := s.read(ctx, PostsKey, &all); err != nil {
		return nil, err
	}
	posts := []directory.Post{}
	for _, p := range all {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *S3Source) UpdateUser(ctx context.Context, u directory.User) (*directory.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range users {
		if users[i].ID == u.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, loadErr(common.ErrorNotFound)
	}
	users[idx] = u

	b, err := json.Marshal(users)
	if err != nil {
		return nil, loadErr(err)
	}

	_, err = s.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(UsersKey),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, loadErr(fmt.Errorf("put %s: %w", UsersKey, err))
	}

	return &u, nil
}
