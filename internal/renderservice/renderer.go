package renderservice

import (
	"errors"
	"net/url"

	"github.com/sushihentaime/contentfilter/internal/content"
)

var ErrInvalidBaseURL = errors.New("base url must be absolute")

func NewRenderer(filter content.ContentFilter, excerptWidth int) Renderer {
	return &contentRenderer{filter: filter, excerptWidth: excerptWidth}
}

func (r *contentRenderer) render(job Job) Result {
	res := Result{ID: job.ID}

	var base *url.URL
	if job.BaseURL != "" {
		u, err := url.Parse(job.BaseURL)
		if err != nil || !u.IsAbs() {
			res.Error = ErrInvalidBaseURL.Error()
			return res
		}
		base = u
	}

	html, err := content.FormatText(job.Content, base, content.ContentType(job.ContentType), r.filter)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.HTML = html
	res.Excerpt = content.Excerpt(html, r.excerptWidth)
	return res
}
