package renderservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sushihentaime/contentfilter/internal/common"
	"golang.org/x/exp/rand"
)

const (
	maxRetries     = 5
	baseDelay      = 500 * time.Millisecond
	publishTimeout = 5 * time.Second
)

func NewRenderService(mc common.MessageConsumer, mp common.MessageProducer, r Renderer, logger *slog.Logger) *RenderService {
	ctx, cancel := context.WithCancel(context.Background())
	return &RenderService{
		mc:     mc,
		mp:     mp,
		r:      r,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// NewJob returns a job with a fresh id.
func NewJob(contentType, content, baseURL string) Job {
	return Job{
		ID:          uuid.NewString(),
		ContentType: contentType,
		Content:     content,
		BaseURL:     baseURL,
	}
}

// Submit publishes job for rendering.
func Submit(ctx context.Context, mp common.MessageProducer, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return mp.Publish(ctx, body, common.RenderKey, common.ContentExchange)
}

// RenderContent consumes render jobs until Close is called or the delivery
// channel closes. Every delivery is acknowledged, including malformed ones.
func (s *RenderService) RenderContent() {
	s.done = make(chan struct{})

	msgs, err := s.mc.Consume(common.RenderKey, common.ContentExchange, common.RenderQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		close(s.done)
		return
	}

	go func() {
		defer close(s.done)

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var job Job
				err := json.Unmarshal(msg.Body, &job)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}
				if job.ID == "" {
					job.ID = uuid.NewString()
				}

				res := s.r.render(job)
				if res.Error != "" {
					s.logger.Info("content rejected", slog.String("id", job.ID), slog.String("error", res.Error))
				}

				if err := s.publish(res); err != nil {
					s.logger.Error("could not publish render result", slog.String("id", job.ID), slog.String("error", err.Error()))
				} else {
					s.logger.Info("content rendered", slog.String("id", job.ID))
				}
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping RenderContent due to context cancellation")
				return
			}
		}
	}()
}

// publish retries with exponential backoff and jitter.
func (s *RenderService) publish(res Result) error {
	body, err := json.Marshal(res)
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		ctx, cancel := context.WithTimeout(s.ctx, publishTimeout)
		err = s.mp.Publish(ctx, body, common.RenderedKey, common.ContentExchange)
		cancel()
		if err == nil || attempt == maxRetries-1 {
			return err
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying render result", slog.String("id", res.ID), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}
}

// Close stops consuming and waits for the current job to finish.
func (s *RenderService) Close() {
	s.cancel()
	if s.done != nil {
		<-s.done
	}
}
