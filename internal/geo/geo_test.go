package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Locate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"203.0.113.7","city":"Prague","region":"Prague","country":"CZ"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil)
	loc, err := c.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Prague", loc.City)
	assert.True(t, loc.Complete())
}

func TestClient_LocateErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"city":`))
		}},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, 50*time.Millisecond, nil)
			_, err := c.Locate(context.Background())
			assert.Error(t, err)
			assert.Nil(t, BestEffort(context.Background(), c, nil))
		})
	}
}

type failingLocator struct{}

func (failingLocator) Locate(ctx context.Context) (*Location, error) {
	return nil, errors.New("offline")
}

func TestBestEffort(t *testing.T) {
	assert.Nil(t, BestEffort(context.Background(), nil, nil))
	assert.Nil(t, BestEffort(context.Background(), failingLocator{}, nil))
}

func TestLocationComplete(t *testing.T) {
	var nilLoc *Location
	assert.False(t, nilLoc.Complete())
	assert.False(t, (&Location{City: "Prague"}).Complete())
	assert.True(t, (&Location{City: "Prague", Region: "Bohemia"}).Complete())
}
