package request

// SetSyncTokenRequest stores the access token for the remote snapshot store.
// The token is encrypted at rest.
type SetSyncTokenRequest struct {
	Token string `json:"token"`
}
