package client

import (
	"context"
	"fmt"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
)

// ListAlbums returns every album in the catalog, in server order.
func (c *APIClient) ListAlbums(ctx context.Context) ([]types.Album, error) {
	var albums []types.Album
	if err := c.doJSON(ctx, "GET", endpointAlbums, nil, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// GetAlbum returns a single album by id. A missing album surfaces as an
// APIError with status 404.
func (c *APIClient) GetAlbum(ctx context.Context, id int) (*types.Album, error) {
	var album types.Album
	path := fmt.Sprintf(endpointAlbumByID, id)
	if err := c.doJSON(ctx, "GET", path, nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// CreateAlbum creates a new album and returns it with its server-assigned id
// and timestamps.
func (c *APIClient) CreateAlbum(ctx context.Context, input types.CreateAlbumInput) (*types.Album, error) {
	var album types.Album
	if err := c.doJSON(ctx, "POST", endpointAlbums, input, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// UpdateAlbum replaces an album's title, artist and price. Full-replacement
// semantics: all three fields are sent on every update.
func (c *APIClient) UpdateAlbum(ctx context.Context, id int, input types.UpdateAlbumInput) (*types.Album, error) {
	var album types.Album
	path := fmt.Sprintf(endpointAlbumByID, id)
	if err := c.doJSON(ctx, "PUT", path, input, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

// DeleteAlbum removes an album. Any 2xx response is success; the response
// body, if any, is ignored.
func (c *APIClient) DeleteAlbum(ctx context.Context, id int) error {
	path := fmt.Sprintf(endpointAlbumByID, id)
	return c.doJSON(ctx, "DELETE", path, nil, nil)
}
