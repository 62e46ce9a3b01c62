package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"docsum/internal/llm"
	"docsum/internal/pdfdoc"
)

const (
	msgConfigureAPIKey = "Please configure a valid API key in settings"
	msgProvideAPIKey   = "Please provide a valid API key"
	msgEmptyPrompt     = "Prompt cannot be empty"
	msgEmptyFilePath   = "File path is required"
	unknown            = "Unknown"

	probeMaxTokens   = 20
	probeTemperature = 0.1
)

// API is the set of operations exposed to callers. *Service implements it.
type API interface {
	Summarize(ctx context.Context, req SummarizeRequest) SummarizeResponse
	Chat(ctx context.Context, req ChatRequest) ChatResponse
	TestConnection(ctx context.Context, req ConnectionRequest) ConnectionResponse
	Analyze(ctx context.Context, req AnalyzeRequest) AnalyzeResponse
	ExtractText(ctx context.Context, req AnalyzeRequest) ExtractResponse
}

var _ API = (*Service)(nil)

// Extractor reads PDFs from local paths.
type Extractor interface {
	Extract(path string) (string, error)
	Info(path string) (pdfdoc.Info, error)
}

// LLMFactory builds a provider client for one call.
type LLMFactory func(llm.Config) (llm.Service, error)

// Service is the boundary every outer surface calls. It never returns Go
// errors; each failure is folded into the response envelope.
type Service struct {
	log           *slog.Logger
	extractor     Extractor
	newLLM        LLMFactory
	maxFileSizeMB int64
	validate      *validator.Validate
}

// NewService wires a Service. A nil factory uses llm.NewService.
func NewService(log *slog.Logger, extractor Extractor, newLLM LLMFactory, maxFileSizeMB int64) *Service {
	if newLLM == nil {
		newLLM = llm.NewService
	}
	return &Service{
		log:           log,
		extractor:     extractor,
		newLLM:        newLLM,
		maxFileSizeMB: maxFileSizeMB,
		validate:      newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates req and maps the first failing field to a user-facing message.
func (s *Service) check(req any, apiKeyMsg string) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch field := verrs[0].Field(); field {
	case "api_key":
		return errors.New(apiKeyMsg)
	case "prompt":
		return errors.New(msgEmptyPrompt)
	case "file_path":
		return errors.New(msgEmptyFilePath)
	default:
		return fmt.Errorf("Invalid %s", field)
	}
}

func (s *Service) requestLog(op string) *slog.Logger {
	return s.log.With("request_id", uuid.NewString(), "op", op)
}

// Summarize extracts the PDF text and asks the selected provider to summarize it.
func (s *Service) Summarize(ctx context.Context, req SummarizeRequest) SummarizeResponse {
	log := s.requestLog("summarize")
	start := time.Now()

	summary, err := s.summarize(ctx, log, req)
	if err != nil {
		log.Warn("summarize failed", "err", err)
		return SummarizeResponse{Error: errMessage(err)}
	}
	log.Info("summarize completed", "duration_ms", time.Since(start).Milliseconds(), "summary_chars", len(summary))
	return SummarizeResponse{Summary: summary, Success: true}
}

func (s *Service) summarize(ctx context.Context, log *slog.Logger, req SummarizeRequest) (string, error) {
	req.normalize()
	req.FilePath = strings.TrimSpace(req.FilePath)
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := s.check(req, msgConfigureAPIKey); err != nil {
		return "", err
	}
	if err := s.checkFile(req.FilePath); err != nil {
		return "", err
	}

	text, err := s.extractor.Extract(req.FilePath)
	if err != nil {
		return "", err
	}
	log.Debug("extracted document text", "path", req.FilePath, "chars", len(text))

	client, err := s.newLLM(req.llmConfig())
	if err != nil {
		return "", err
	}
	return client.Summarize(ctx, text, req.Prompt)
}

func (s *Service) checkFile(path string) error {
	if err := pdfdoc.Validate(path); err != nil {
		return err
	}
	return pdfdoc.ValidateSize(path, s.maxFileSizeMB)
}

// Chat sends a single prompt to the selected provider.
func (s *Service) Chat(ctx context.Context, req ChatRequest) ChatResponse {
	log := s.requestLog("chat")
	start := time.Now()

	res, err := s.chat(ctx, req)
	if err != nil {
		log.Warn("chat failed", "err", err)
		return ChatResponse{Error: errMessage(err)}
	}
	log.Info("chat completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"has_reasoning", res.Reasoning != nil,
	)
	if !req.IncludeReasoning {
		res.Reasoning = nil
	}
	return ChatResponse{Response: &res, Success: true}
}

func (s *Service) chat(ctx context.Context, req ChatRequest) (llm.ChatResult, error) {
	req.normalize()
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := s.check(req, msgConfigureAPIKey); err != nil {
		return llm.ChatResult{}, err
	}
	client, err := s.newLLM(req.llmConfig())
	if err != nil {
		return llm.ChatResult{}, err
	}
	return client.Chat(ctx, req.Prompt)
}

// TestConnection sends a short probe through a low-budget client.
func (s *Service) TestConnection(ctx context.Context, req ConnectionRequest) ConnectionResponse {
	log := s.requestLog("test_connection")

	msg, err := s.testConnection(ctx, req)
	if err != nil {
		log.Warn("connection test failed", "err", err)
		return ConnectionResponse{Error: errMessage(err)}
	}
	log.Info("connection test succeeded")
	return ConnectionResponse{Success: true, Message: &msg}
}

func (s *Service) testConnection(ctx context.Context, req ConnectionRequest) (string, error) {
	req.APIKey = strings.TrimSpace(req.APIKey)
	req.BaseURL = strings.TrimSpace(req.BaseURL)
	req.Model = strings.TrimSpace(req.Model)
	if err := s.check(req, msgProvideAPIKey); err != nil {
		return "", err
	}

	temperature := probeTemperature
	cfg := llm.Config{
		APIKey:      req.APIKey,
		BaseURL:     req.BaseURL,
		Model:       req.Model,
		MaxTokens:   probeMaxTokens,
		Temperature: &temperature,
	}
	if req.Timeout != nil {
		cfg.Timeout = time.Duration(*req.Timeout) * time.Second
	}
	client, err := s.newLLM(cfg)
	if err != nil {
		return "", err
	}
	return client.TestConnection(ctx)
}

// Analyze reports page count, title, text presence and size of a PDF.
func (s *Service) Analyze(_ context.Context, req AnalyzeRequest) AnalyzeResponse {
	log := s.requestLog("analyze")

	resp, err := s.analyze(req)
	if err != nil {
		log.Warn("analyze failed", "err", err)
		return AnalyzeResponse{Title: unknown, FileSize: unknown, Error: errMessage(err)}
	}
	log.Info("analyze completed", "pages", resp.PageCount, "has_text", resp.HasText)
	return resp
}

func (s *Service) analyze(req AnalyzeRequest) (AnalyzeResponse, error) {
	req.FilePath = strings.TrimSpace(req.FilePath)
	if err := s.check(req, msgConfigureAPIKey); err != nil {
		return AnalyzeResponse{}, err
	}
	info, err := s.extractor.Info(req.FilePath)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	st, err := os.Stat(req.FilePath)
	if err != nil {
		return AnalyzeResponse{}, fmt.Errorf("Failed to get file info: %w", err)
	}
	return AnalyzeResponse{
		PageCount: info.PageCount,
		Title:     info.Title,
		HasText:   info.HasText,
		FileSize:  pdfdoc.FormatSize(st.Size()),
		Success:   true,
	}, nil
}

// ExtractText returns the cleaned text of a PDF.
func (s *Service) ExtractText(_ context.Context, req AnalyzeRequest) ExtractResponse {
	log := s.requestLog("extract")

	req.FilePath = strings.TrimSpace(req.FilePath)
	err := s.check(req, msgConfigureAPIKey)
	var text string
	if err == nil {
		text, err = s.extractor.Extract(req.FilePath)
	}
	if err != nil {
		log.Warn("extract failed", "err", err)
		return ExtractResponse{Error: errMessage(err)}
	}
	log.Info("extract completed", "chars", len(text))
	return ExtractResponse{Content: &text, Success: true}
}
