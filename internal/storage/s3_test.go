package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpload_PathStyleAndURL(t *testing.T) {
	var gotMethod, gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewS3Client(context.Background(), Options{
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "cuattro-items",
	}, zap.NewNop())
	require.NoError(t, err)

	url, err := client.Upload(context.Background(), "items/1/abc.png", strings.NewReader("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/cuattro-items/items/1/abc.png", gotPath)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, srv.URL+"/cuattro-items/items/1/abc.png", url)
}

func TestURL_PublicBaseURL(t *testing.T) {
	client, err := NewS3Client(context.Background(), Options{
		Endpoint:      "http://minio:9000",
		Bucket:        "cuattro-items",
		PublicBaseURL: "https://cdn.example.com/img/",
	}, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/img/items/2/x.jpg", client.URL("items/2/x.jpg"))
}
