package sources

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/directory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	getErr  error
	putErr  error
	puts    int
}

func (m *memBucket) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (m *memBucket) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return nil, m.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Key)] = b
	m.puts++
	return &s3.PutObjectOutput{}, nil
}

func seededBucket() *memBucket {
	return &memBucket{objects: map[string][]byte{
		UsersKey: []byte(`[{"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz"},
			{"id":2,"name":"Ervin Howell","username":"Antonette","email":"Shanna@melissa.tv"}]`),
		PostsKey: []byte(`[{"id":1,"userId":1,"title":"a","body":"x"},
			{"id":2,"userId":2,"title":"b","body":"y"},
			{"id":3,"userId":1,"title":"c","body":"z"}]`),
	}}
}

func TestS3Source_Reads(t *testing.T) {
	src := NewS3Source(seededBucket(), "directory")
	ctx := context.Background()

	users, err := src.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	u, err := src.UserByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Antonette", u.Username)

	posts, err := src.PostsByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, []int{posts[0].ID, posts[1].ID})

	none, err := src.PostsByUserID(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestS3Source_UserByID_Missing(t *testing.T) {
	_, err := NewS3Source(seededBucket(), "b").UserByID(context.Background(), 9)
	require.ErrorIs(t, err, common.ErrDataLoad)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestS3Source_MissingSnapshot(t *testing.T) {
	_, err := NewS3Source(&memBucket{objects: map[string][]byte{}}, "b").Users(context.Background())
	require.ErrorIs(t, err, common.ErrDataLoad)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestS3Source_GetError(t *testing.T) {
	_, err := NewS3Source(&memBucket{getErr: errors.New("403")}, "b").Users(context.Background())
	require.ErrorIs(t, err, common.ErrDataLoad)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestS3Source_UpdateUser(t *testing.T) {
	bucket := seededBucket()
	src := NewS3Source(bucket, "b")
	ctx := context.Background()

	edited := directory.User{ID: 2, Name: "Ervin H.", Username: "Antonette", Email: "ervin@example.com"}
	got, err := src.UpdateUser(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, edited, *got)
	assert.Equal(t, 1, bucket.puts)

	again, err := src.UserByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, edited, *again)

	first, err := src.UserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Leanne Graham", first.Name)
}

func TestS3Source_UpdateUser_Missing(t *testing.T) {
	bucket := seededBucket()
	_, err := NewS3Source(bucket, "b").UpdateUser(context.Background(), directory.User{ID: 77})
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Zero(t, bucket.puts)
}

func TestS3Source_UpdateUser_PutError(t *testing.T) {
	bucket := seededBucket()
	bucket.putErr = errors.New("read-only")
	_, err := NewS3Source(bucket, "b").UpdateUser(context.Background(), directory.User{ID: 1})
	require.ErrorIs(t, err, common.ErrDataLoad)
}

func TestNewS3Client(t *testing.T) {
	c, err := NewS3Client(context.Background(), S3Settings{
		Region: "us-east-1", AccessKey: "a", SecretKey: "b", BaseEndpoint: "http://127.0.0.1:9000",
	})
	require.NoError(t, err)
	assert.NotNil(t, c)
}
