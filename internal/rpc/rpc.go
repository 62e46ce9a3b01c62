// Package rpc exposes the app.Service operations as NATS request/reply
// subjects. Every reply is the JSON envelope of the matching operation.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"docsum/internal/app"
	"docsum/internal/retry"
)

// Subjects served by the worker.
const (
	SubjectSummarize      = "docsum.summarize"
	SubjectChat           = "docsum.chat"
	SubjectTestConnection = "docsum.connection.test"
	SubjectAnalyze        = "docsum.analyze"
	SubjectExtract        = "docsum.extract"
)

// Subjects lists every subject in subscription order.
var Subjects = []string{
	SubjectSummarize,
	SubjectChat,
	SubjectTestConnection,
	SubjectAnalyze,
	SubjectExtract,
}

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Server answers requests on Subjects within a queue group.
type Server struct {
	log     *slog.Logger
	backend app.API
	group   string
	timeout time.Duration
}

// NewServer builds a Server. timeout bounds one request; zero means no bound.
func NewServer(log *slog.Logger, backend app.API, group string, timeout time.Duration) *Server {
	return &Server{log: log, backend: backend, group: group, timeout: timeout}
}

// Serve subscribes to every subject and blocks until ctx is done.
func (s *Server) Serve(ctx context.Context, nc *nats.Conn) error {
	subs := make([]*nats.Subscription, 0, len(Subjects))
	defer func() {
		for _, sub := range subs {
			if err := sub.Drain(); err != nil {
				s.log.Warn("failed to drain subscription", "subject", sub.Subject, "err", err)
			}
		}
	}()

	for _, subject := range Subjects {
		sub, err := nc.QueueSubscribe(subject, s.group, func(msg *nats.Msg) {
			s.reply(ctx, msg)
		})
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		subs = append(subs, sub)
	}
	s.log.Info("worker subscribed", "subjects", Subjects, "group", s.group)

	<-ctx.Done()
	return nil
}

func (s *Server) reply(ctx context.Context, msg *nats.Msg) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	body := s.Handle(ctx, msg.Subject, msg.Data)
	if msg.Reply == "" {
		s.log.Warn("dropping reply for request without reply subject", "subject", msg.Subject)
		return
	}
	if err := msg.Respond(body); err != nil {
		s.log.Error("failed to respond", "subject", msg.Subject, "err", err)
	}
}

// Handle decodes data for subject, runs the operation and returns the encoded
// envelope. Undecodable payloads and unknown subjects yield a failure envelope.
func (s *Server) Handle(ctx context.Context, subject string, data []byte) []byte {
	log := s.log.With("subject", subject, "msg_id", uuid.NewString())
	var resp any
	var err error
	switch subject {
	case SubjectSummarize:
		var req app.SummarizeRequest
		if err = json.Unmarshal(data, &req); err == nil {
			resp = s.backend.Summarize(ctx, req)
		}
	case SubjectChat:
		var req app.ChatRequest
		if err = json.Unmarshal(data, &req); err == nil {
			resp = s.backend.Chat(ctx, req)
		}
	case SubjectTestConnection:
		var req app.ConnectionRequest
		if err = json.Unmarshal(data, &req); err == nil {
			resp = s.backend.TestConnection(ctx, req)
		}
	case SubjectAnalyze:
		var req app.AnalyzeRequest
		if err = json.Unmarshal(data, &req); err == nil {
			resp = s.backend.Analyze(ctx, req)
		}
	case SubjectExtract:
		var req app.AnalyzeRequest
		if err = json.Unmarshal(data, &req); err == nil {
			resp = s.backend.ExtractText(ctx, req)
		}
	default:
		log.Warn("unknown subject")
		return encode(log, failure{Error: "unknown subject: " + subject})
	}
	if err != nil {
		log.Warn("failed to decode request", "err", err)
		return encode(log, failure{Error: "invalid payload: " + err.Error()})
	}
	return encode(log, resp)
}

func encode(log *slog.Logger, v any) []byte {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to encode reply", "err", err)
		body, _ = json.Marshal(failure{Error: "failed to encode reply"})
	}
	return body
}

// Connect dials url, retrying with exponential backoff.
func Connect(ctx context.Context, log *slog.Logger, url string, attempts int) (*nats.Conn, error) {
	var nc *nats.Conn
	err := retry.Do(ctx, attempts, 500*time.Millisecond, func(attempt int) error {
		var err error
		nc, err = nats.Connect(url, nats.Name("docsum-worker"))
		if err != nil {
			log.Warn("nats connect failed", "url", url, "attempt", attempt+1, "err", err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("connected to NATS", "url", nc.ConnectedUrl())
	return nc, nil
}
