package httputil

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"no token, authorization denied"`
}
