package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	key := GenerateKey("products", "My GPU Photo.PNG", now)

	assert.True(t, strings.HasPrefix(key, "products/2026/03/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
	assert.NotContains(t, key, "My GPU")
	assert.NotEqual(t, key, GenerateKey("products", "My GPU Photo.PNG", now))
}

func TestPublicURL(t *testing.T) {
	c, err := NewS3Client(S3Config{Bucket: "pcmall", Region: "auto"})
	require.NoError(t, err)
	assert.Equal(t, "https://pcmall.s3.amazonaws.com/a/b.png", c.PublicURL("a/b.png"))

	c, err = NewS3Client(S3Config{Bucket: "pcmall", Region: "auto", CDNURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a/b.png", c.PublicURL("a/b.png"))
}

func TestNewS3Client_RequiresBucket(t *testing.T) {
	_, err := NewS3Client(S3Config{})
	assert.Error(t, err)
}
