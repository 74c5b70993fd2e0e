// Package clients holds the out-of-vocabulary transcribers: a JSON HTTP
// service and the t2p decision-tree binary.
package clients

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds one transcription request.
const DefaultTimeout = 10 * time.Second

type HTTP struct {
	c   *http.Client
	url string
}

// NewHTTP returns a transcriber for the service at url. A zero timeout means
// DefaultTimeout.
func NewHTTP(url string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTP{c: &http.Client{Timeout: timeout}, url: url}
}
