package channel

import (
	"fmt"
	"net/url"
	"strings"
)

// channelURL derives the push endpoint from the service base endpoint:
// the http-family scheme swaps to the ws-family and the project id becomes
// a path segment.
func channelURL(endpoint, project string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("channel: parse endpoint %q: %w", endpoint, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("channel: unsupported endpoint scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/" + url.PathEscape(project)
	return u.String(), nil
}
