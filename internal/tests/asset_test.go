package tests

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"carpool/internal/service"
)

func TestAssetUpload_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := NewMockAssetRepository()
	assets := service.NewAssetService(repo, "http://localhost:8080/")

	payload := []byte{0x89, 'P', 'N', 'G'}
	result, err := assets.Upload(context.Background(), base64.StdEncoding.EncodeToString(payload), "image/png")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !strings.HasPrefix(result.URL, "http://localhost:8080/v1/assets/") {
		t.Errorf("unexpected asset URL: %s", result.URL)
	}

	stored, err := assets.Get(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bytes.Equal(stored.Data, payload) {
		t.Error("stored bytes do not match the uploaded payload")
	}
	if stored.ContentType != "image/png" {
		t.Errorf("expected image/png, got %s", stored.ContentType)
	}
}

func TestAssetUpload_DataURIPrefixStripped(t *testing.T) {
	t.Parallel()

	repo := NewMockAssetRepository()
	assets := service.NewAssetService(repo, "http://localhost:8080")

	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pixels"))
	result, err := assets.Upload(context.Background(), encoded, "image/png")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	stored, err := assets.Get(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(stored.Data) != "pixels" {
		t.Errorf("expected decoded payload, got %q", stored.Data)
	}
}

func TestAssetUpload_InvalidPayload(t *testing.T) {
	t.Parallel()

	repo := NewMockAssetRepository()
	assets := service.NewAssetService(repo, "http://localhost:8080")

	testCases := []struct {
		name string
		data string
	}{
		{"not base64", "!!not-base64!!"},
		{"empty payload", ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := assets.Upload(context.Background(), tc.data, "image/png")
			if !errors.Is(err, service.ErrInvalidAssetData) {
				t.Errorf("expected ErrInvalidAssetData, got: %v", err)
			}
		})
	}
}
