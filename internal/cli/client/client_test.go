package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
)

func newTestClient(t *testing.T, handler http.Handler) (*APIClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewAPIClient(srv.URL)
	require.NoError(t, err)

	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func testAlbum(id int) types.Album {
	return types.Album{
		ID:        id,
		Title:     "The Wall",
		Artist:    "Pink Floyd",
		Price:     24.99,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain host gets scheme", in: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash dropped", in: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "https preserved", in: "https://api.example.com", want: "https://api.example.com"},
		{name: "empty is invalid", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeServerURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListAlbums(t *testing.T) {
	var gotCacheControl string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/albums", r.URL.Path)
		gotCacheControl = r.Header.Get("Cache-Control")
		writeJSON(w, http.StatusOK, []types.Album{testAlbum(1), testAlbum(2)})
	}))

	albums, err := c.ListAlbums(context.Background())
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, 1, albums[0].ID)
	assert.Equal(t, "Pink Floyd", albums[0].Artist)

	// Reads must bypass caches so lists are fresh after mutations
	assert.Equal(t, "no-cache", gotCacheControl)
}

func TestListAlbumsServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve albums"})
	}))

	_, err := c.ListAlbums(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to retrieve albums", apiErr.Message)
}

func TestGetAlbumNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Album not found"})
	}))

	_, err := c.GetAlbum(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestGetAlbum(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/albums/7", r.URL.Path)
		writeJSON(w, http.StatusOK, testAlbum(7))
	}))

	album, err := c.GetAlbum(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, album.ID)
	assert.Equal(t, "The Wall", album.Title)
}

func TestCreateAlbum(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/albums", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var input types.CreateAlbumInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Equal(t, "The Wall", input.Title)
		require.Equal(t, 24.99, input.Price)

		created := testAlbum(1)
		created.Title = input.Title
		created.Artist = input.Artist
		created.Price = input.Price
		writeJSON(w, http.StatusCreated, created)
	}))

	album, err := c.CreateAlbum(context.Background(), types.CreateAlbumInput{
		Title:  "The Wall",
		Artist: "Pink Floyd",
		Price:  24.99,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, album.ID)
	assert.Equal(t, "The Wall", album.Title)
}

func TestUpdateAlbum(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/albums/1", r.URL.Path)

		var input types.UpdateAlbumInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))

		updated := testAlbum(1)
		updated.Title = input.Title
		updated.Artist = input.Artist
		updated.Price = input.Price
		writeJSON(w, http.StatusOK, updated)
	}))

	album, err := c.UpdateAlbum(context.Background(), 1, types.UpdateAlbumInput{
		Title:  "The Wall",
		Artist: "Pink Floyd",
		Price:  22.99,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, album.ID)
	assert.Equal(t, 22.99, album.Price)
}

func TestDeleteAlbum(t *testing.T) {
	// The delete contract ignores the response body; both empty and JSON
	// bodies succeed
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "no body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		},
		{
			name: "album body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, testAlbum(1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/albums/1", r.URL.Path)
				tt.handler(w, r)
			}))

			require.NoError(t, c.DeleteAlbum(context.Background(), 1))
		})
	}
}

func TestDeleteAlbumFailure(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Album not found"})
	}))

	err := c.DeleteAlbum(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestTransportFailureHasStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // Nothing listens anymore

	c, err := NewAPIClient(srv.URL)
	require.NoError(t, err)

	_, err = c.ListAlbums(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
}

func TestMalformedBodyHasStatusZero(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))

	_, err := c.ListAlbums(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
}

func TestSendChat(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)

		var req types.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "Show me all albums", req.Messages[1].Content)

		writeJSON(w, http.StatusOK, types.ChatResponse{Message: "Here are your albums."})
	}))

	resp, err := c.SendChat(context.Background(), []types.ChatMessage{
		{Role: "assistant", Content: "Hello!"},
		{Role: "user", Content: "Show me all albums"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Here are your albums.", resp.Message)
}

func TestSendChatEmptyTranscript(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())

	_, err := c.SendChat(context.Background(), nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
}

func TestSendChatServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "assistant unavailable"})
	}))

	_, err := c.SendChat(context.Background(), []types.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "assistant unavailable", apiErr.Message)
}

func TestStreamChat(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "text/event-stream", r.Header.Get("Accept"))

		var req types.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		for _, delta := range []string{"Here ", "are ", "your albums."} {
			chunk := types.ChatStreamChunk{
				Choices: []types.ChatStreamChunkChoice{
					{Delta: types.ChatStreamChunkDelta{Content: delta}},
				},
			}
			data, err := json.Marshal(chunk)
			require.NoError(t, err)
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		flusher.Flush()
	}))

	chunkCh, errCh, err := c.StreamChat(context.Background(), []types.ChatMessage{{Role: "user", Content: "albums?"}})
	require.NoError(t, err)

	var content string
	for chunk := range chunkCh {
		if len(chunk.Choices) > 0 {
			content += chunk.Choices[0].Delta.Content
		}
	}
	for err := range errCh {
		require.NoError(t, err)
	}

	assert.Equal(t, "Here are your albums.", content)
}
