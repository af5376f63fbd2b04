package content

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// systemIDClient fetches remote system identifiers. Each fetch blocks the
// calling parse until the body is fully read.
var systemIDClient = &http.Client{Timeout: 30 * time.Second}

// open returns a reader for src along with a function releasing it.
func (src InputSource) open() (io.Reader, func() error, error) {
	if src.Reader != nil {
		return src.Reader, func() error { return nil }, nil
	}
	if src.SystemID == "" {
		return nil, nil, ErrNoInput
	}

	u, err := url.Parse(src.SystemID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid system id %q: %w", src.SystemID, err)
	}

	switch u.Scheme {
	case "http", "https":
		res, err := systemIDClient.Get(u.String())
		if err != nil {
			return nil, nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, nil, fmt.Errorf("fetching %s: unexpected status %s", u, res.Status)
		}
		return res.Body, res.Body.Close, nil
	case "file", "":
		path := u.Path
		if u.Scheme == "" {
			path = src.SystemID
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported system id scheme %q", u.Scheme)
	}
}
