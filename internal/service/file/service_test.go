package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/attendify/attendify-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileService(t *testing.T) FileService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewFileService(store)
}

// testImagePNG renders a small noisy PNG so the JPEG encoder has real work.
func testImagePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 7 % 256), uint8(y * 13 % 256), uint8((x + y) % 256), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadAttendanceProof_PNGBecomesJPEGURL(t *testing.T) {
	ctx := context.Background()
	svc := newTestFileService(t)

	data := testImagePNG(t, 320, 240)
	url, err := svc.UploadAttendanceProof(ctx, "user-1", bytes.NewReader(data), "selfie.png", "CLOCK_IN")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/attendance/user-1/"), "url = %s", url)
	assert.True(t, strings.HasSuffix(url, "-CLOCK_IN.jpg"), "url = %s", url)
}

func TestUploadAttendanceProof_UniqueFilenames(t *testing.T) {
	ctx := context.Background()
	svc := newTestFileService(t)
	data := testImagePNG(t, 100, 100)

	first, err := svc.UploadAttendanceProof(ctx, "user-1", bytes.NewReader(data), "a.png", "CLOCK_IN")
	require.NoError(t, err)
	second, err := svc.UploadAttendanceProof(ctx, "user-1", bytes.NewReader(data), "a.png", "CLOCK_IN")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestUploadAttendanceProof_RejectsBadExtension(t *testing.T) {
	ctx := context.Background()
	svc := newTestFileService(t)

	_, err := svc.UploadAttendanceProof(ctx, "user-1", strings.NewReader("gif89a"), "proof.gif", "CLOCK_IN")
	assert.Error(t, err)
}

func TestUploadAttendanceProof_RejectsUndecodableBytes(t *testing.T) {
	ctx := context.Background()
	svc := newTestFileService(t)

	_, err := svc.UploadAttendanceProof(ctx, "user-1", strings.NewReader("not an image"), "proof.jpg", "CLOCK_IN")
	assert.Error(t, err)
}

func TestDeleteProof(t *testing.T) {
	ctx := context.Background()
	svc := newTestFileService(t)

	data := testImagePNG(t, 100, 100)
	url, err := svc.UploadAttendanceProof(ctx, "user-1", bytes.NewReader(data), "a.png", "CLOCK_OUT")
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteProof(ctx, url))

	// Foreign URLs do not resolve to this store.
	assert.Error(t, svc.DeleteProof(ctx, "https://elsewhere.example/x.jpg"))
}

func TestCompressImage_OutputIsJPEG(t *testing.T) {
	data := testImagePNG(t, 1600, 1200)

	out, err := compressImage(data, 150*1024, 50*1024)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	_, err = jpeg.Decode(bytes.NewReader(out))
	assert.NoError(t, err)
}
