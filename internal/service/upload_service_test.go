package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubStorage struct {
	uploads int
}

func (s *stubStorage) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	s.uploads++
	return "https://cdn.example.com/" + name, nil
}

func multipartFile(t *testing.T, name string, payload []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

// Minimal valid PNG header plus padding.
func pngPayload() []byte {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	return append(payload, bytes.Repeat([]byte{0}, 64)...)
}

func TestUploadServiceAcceptsImage(t *testing.T) {
	storage := &stubStorage{}
	svc := NewUploadService(storage, 5, testLogger())

	file := multipartFile(t, "Course Banner.PNG", pngPayload())
	result, err := svc.Upload(context.Background(), file, "teacher1@email.com")
	require.NoError(t, err)
	require.Equal(t, 1, storage.uploads)
	require.Equal(t, "image/png", result.MimeType)
	require.Equal(t, "course-banner.png", result.FileName)
	require.NotEmpty(t, result.Checksum)
	require.Contains(t, result.URL, "course-banner.png")
}

func TestUploadServiceRejectsDisallowedType(t *testing.T) {
	storage := &stubStorage{}
	svc := NewUploadService(storage, 5, testLogger())

	file := multipartFile(t, "notes.html", []byte("<html><body>hi</body></html>"))
	_, err := svc.Upload(context.Background(), file, "teacher1@email.com")
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
	require.Zero(t, storage.uploads)
}

func TestUploadServiceRejectsOversizedFile(t *testing.T) {
	storage := &stubStorage{}
	svc := NewUploadService(storage, 1, testLogger())

	file := multipartFile(t, "big.png", append(pngPayload(), bytes.Repeat([]byte{0}, 2<<20)...))
	_, err := svc.Upload(context.Background(), file, "teacher1@email.com")
	require.ErrorIs(t, err, ErrUploadTooLarge)
	require.Zero(t, storage.uploads)
}
