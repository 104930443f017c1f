package tasks

import (
	"fmt"
	"log/slog"
	"os"

	"bookly/internal/logging"

	"github.com/hibiken/asynq"
)

// NewServeMuxはタスク種別とハンドラを結びつける
func NewServeMux(email *EmailHandler) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeEmailSend, email)
	return mux
}

// NewServerはメール用のworkerを作る
func NewServer(redis asynq.RedisConnOpt, concurrency int, logger *slog.Logger) *asynq.Server {
	if concurrency <= 0 {
		concurrency = 5
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return asynq.NewServer(redis, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueDefault: 1},
		Logger:      &asynqLogger{log: logger},
	})
}

// ParseRedisはREDIS_URLをasynqの接続情報にする
func ParseRedis(url string) (asynq.RedisConnOpt, error) {
	return asynq.ParseRedisURI(url)
}

// asynqのログをslogに流す
type asynqLogger struct {
	log *slog.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) { l.log.Debug(fmt.Sprint(args...), "component", "asynq") }
func (l *asynqLogger) Info(args ...interface{})  { l.log.Info(fmt.Sprint(args...), "component", "asynq") }
func (l *asynqLogger) Warn(args ...interface{})  { l.log.Warn(fmt.Sprint(args...), "component", "asynq") }
func (l *asynqLogger) Error(args ...interface{}) { l.log.Error(fmt.Sprint(args...), "component", "asynq") }
func (l *asynqLogger) Fatal(args ...interface{}) {
	l.log.Error(fmt.Sprint(args...), "component", "asynq")
	os.Exit(1)
}
