package client

const (
	// Album endpoints
	endpointAlbums    = "/albums"    // GET, POST
	endpointAlbumByID = "/albums/%d" // GET, PUT, DELETE

	// Chat endpoint
	endpointChat = "/chat" // POST
)
