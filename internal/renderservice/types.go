package renderservice

import (
	"context"

	"github.com/sushihentaime/contentfilter/internal/common"
	"github.com/sushihentaime/contentfilter/internal/content"
)

type RenderService struct {
	mc     common.MessageConsumer
	mp     common.MessageProducer
	r      Renderer
	logger RenderLogger
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type RenderLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Renderer interface {
	render(job Job) Result
}

// Job is a request to render one piece of content.
type Job struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	BaseURL     string `json:"base_url,omitempty"`
}

// Result is published for every job. Error is set instead of HTML when the
// content could not be rendered.
type Result struct {
	ID      string `json:"id"`
	HTML    string `json:"html,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Error   string `json:"error,omitempty"`
}

type contentRenderer struct {
	filter       content.ContentFilter
	excerptWidth int
}
