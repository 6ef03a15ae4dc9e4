package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shoplocal/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalHTTPPublisher_PublishVendorVisit(t *testing.T) {
	var got PubSubPushMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewLocalHTTPPublisher(server.URL, logger)

	event := &service.VendorVisitEvent{
		RequestID:  "req-1",
		VendorID:   12,
		VendorSlug: "corner-bakery",
		VisitedAt:  time.Now().UTC(),
	}

	require.NoError(t, publisher.PublishVendorVisit(context.Background(), event))

	assert.Equal(t, "12", got.Message.Attributes["vendor_id"])
	assert.Equal(t, "corner-bakery", got.Message.Attributes["vendor_slug"])

	data, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)

	var decoded service.VendorVisitEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(12), decoded.VendorID)
}

func TestLocalHTTPPublisher_NonSuccessStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := NewLocalHTTPPublisher(server.URL, logger)

	err := publisher.PublishVendorVisit(context.Background(), &service.VendorVisitEvent{VendorID: 1, VisitedAt: time.Now()})

	assert.Error(t, err)
}

func TestNoopPublisher_AlwaysSucceeds(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := &noopPublisher{logger: logger}

	assert.NoError(t, publisher.PublishVendorVisit(context.Background(), &service.VendorVisitEvent{VendorID: 1}))
	assert.NoError(t, publisher.Close())
}
