// Package tasks moves outgoing email off the request path onto an asynq
// queue and delivers it from a worker.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookly/internal/logging"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailSend = "email:send"
	QueueDefault  = "default"

	maxRetry    = 5
	taskTimeout = time.Minute
)

var ErrNoRecipients = errors.New("email: no recipients")

type EmailPayload struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}

func NewEmailTask(p EmailPayload) (*asynq.Task, error) {
	if len(p.Recipients) == 0 {
		return nil, ErrNoRecipients
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, b,
		asynq.MaxRetry(maxRetry),
		asynq.Queue(QueueDefault),
		asynq.Timeout(taskTimeout),
	), nil
}

// Enqueuerはasynq.Clientが満たす
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueMailerはメールをキューに積むだけ。送信はworkerがやる
type QueueMailer struct {
	client Enqueuer
	logger *slog.Logger
}

// DI
func NewQueueMailer(client Enqueuer, logger *slog.Logger) *QueueMailer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &QueueMailer{client: client, logger: logger}
}

func (m *QueueMailer) SendEmail(ctx context.Context, recipients []string, subject, body string) error {
	task, err := NewEmailTask(EmailPayload{Recipients: recipients, Subject: subject, Body: body})
	if err != nil {
		return err
	}
	info, err := m.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeEmailSend, err)
	}
	m.logger.InfoContext(ctx, "email enqueued", "task_id", info.ID, "queue", info.Queue, "recipients", len(recipients))
	return nil
}

// MailSenderはSMTP側（mail.Senderが実装）
type MailSender interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

type EmailHandler struct {
	sender MailSender
	logger *slog.Logger
}

// DI
func NewEmailHandler(sender MailSender, logger *slog.Logger) *EmailHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &EmailHandler{sender: sender, logger: logger}
}

// ProcessTaskは失敗するとasynqがリトライする。壊れたpayloadはリトライしない
func (h *EmailHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p EmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode email payload: %v: %w", err, asynq.SkipRetry)
	}
	if len(p.Recipients) == 0 {
		return fmt.Errorf("%w: %w", ErrNoRecipients, asynq.SkipRetry)
	}

	if err := h.sender.Send(ctx, p.Recipients, p.Subject, p.Body); err != nil {
		h.logger.WarnContext(ctx, "email delivery failed", "subject", p.Subject, "error", err)
		return err
	}
	h.logger.InfoContext(ctx, "email delivered", "subject", p.Subject, "recipients", len(p.Recipients))
	return nil
}
