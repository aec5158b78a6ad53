package xhttp

import "net/http"

// Client is the subset of *http.Client that request senders depend on.
type Client interface {
	Do(*http.Request) (*http.Response, error)
}
