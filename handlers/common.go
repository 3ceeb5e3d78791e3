package handlers

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors. Store failures are collapsed so that internal
	// details never reach the client.
	AlbumNotFoundResponse = Response{"album not found"}
	MediaNotFoundResponse = Response{"media not found"}
	DBError1Response      = Response{"DB error 1"}
	DBError2Response      = Response{"DB error 2"}
	StorageErrorResponse  = Response{"failed to store file"}
	SignErrorResponse     = Response{"failed to sign media URL"}
)
