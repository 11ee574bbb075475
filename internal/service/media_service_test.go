package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/damoang/pcmall-backend/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader keeps uploads in memory
type fakeUploader struct {
	objects map[string][]byte
	deleted []string
}

func (f *fakeUploader) Upload(_ context.Context, key string, body io.Reader, contentType string, size int64) (*storage.UploadResult, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = data
	return &storage.UploadResult{Key: key, URL: "https://cdn.test/" + key, ContentType: contentType, Size: size}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

// multipartFile builds a *multipart.FileHeader the way gin hands it to handlers
func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestMediaService_UploadImage(t *testing.T) {
	up := &fakeUploader{}
	svc := NewMediaService(up, 1)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }

	// declared extension is ignored; the sniffed type decides
	res, err := svc.UploadImage(context.Background(), multipartFile(t, "photo.gif", pngBytes(t, 4, 3)), "products")
	require.NoError(t, err)

	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, 4, res.Width)
	assert.Equal(t, 3, res.Height)
	assert.Equal(t, "photo.gif", res.Filename)
	assert.Contains(t, res.Key, "products/")
	assert.True(t, len(res.Key) > 4 && res.Key[len(res.Key)-4:] == ".png", res.Key)
	assert.Contains(t, up.objects, res.Key)
}

func TestMediaService_Rejects(t *testing.T) {
	svc := NewMediaService(&fakeUploader{}, 1)
	ctx := context.Background()

	_, err := svc.UploadImage(ctx, multipartFile(t, "a.png", []byte("<html><script>x</script></html>")), "products")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = svc.UploadImage(ctx, multipartFile(t, "a.png", pngBytes(t, 1, 1)), "secrets")
	assert.ErrorIs(t, err, ErrInvalidFolder)

	big := append(pngBytes(t, 1, 1), make([]byte, 1024*1024)...)
	_, err = svc.UploadImage(ctx, multipartFile(t, "big.png", big), "products")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestMediaService_Disabled(t *testing.T) {
	svc := NewMediaService(nil, 10)
	assert.False(t, svc.Enabled())

	_, err := svc.UploadImage(context.Background(), multipartFile(t, "a.png", pngBytes(t, 1, 1)), "")
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.ErrorIs(t, svc.Delete(context.Background(), "products/a.png"), ErrStorageDisabled)
}

func TestMediaService_Delete(t *testing.T) {
	up := &fakeUploader{}
	svc := NewMediaService(up, 10)

	require.NoError(t, svc.Delete(context.Background(), "/products/2026/10/a.png"))
	assert.Equal(t, []string{"products/2026/10/a.png"}, up.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), "products/../etc/passwd"), ErrInvalidFolder)
	assert.ErrorIs(t, svc.Delete(context.Background(), "a.png"), ErrInvalidFolder)
}
