package testutil

import "net/http"

// WithBearer sets the Authorization header the identity middleware reads.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
