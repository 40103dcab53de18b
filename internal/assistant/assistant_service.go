package assistant

import (
	"context"
	"fmt"

	assistanterrors "hr-dashboard/internal/assistant/errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultModel     = openai.GPT4oMini
	defaultMaxTokens = 512

	systemPrompt = "You are a helpful assistant for an internal HR dashboard. " +
		"Answer questions about hiring, leave policies and candidate evaluation concisely."
)

// CompletionClient is the slice of the OpenAI client the service needs.
// *openai.Client satisfies it.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Service interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	MatchResume(ctx context.Context, req MatchResumeRequest) (ChatResponse, error)
}

type service struct {
	client CompletionClient
	logger *zap.Logger
}

// NewService accepts a nil client; every call then fails with a service
// unavailable error instead of panicking, so the API can run without a key.
func NewService(client CompletionClient, logger ...*zap.Logger) Service {
	l := zap.L().Named("assistant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assistant.service")
	}
	return &service{client: client, logger: l}
}

func (s *service) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	completionReq := openai.ChatCompletionRequest{
		Model: defaultModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens: maxTokens,
	}
	if req.Temperature != nil {
		completionReq.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		completionReq.TopP = *req.TopP
	}

	return s.complete(ctx, completionReq)
}

func (s *service) MatchResume(ctx context.Context, req MatchResumeRequest) (ChatResponse, error) {
	prompt := fmt.Sprintf("%s\n\nJob Description: %s\n\nResume: %s",
		req.Prompt, req.JobDescription, req.Resume)

	return s.complete(ctx, openai.ChatCompletionRequest{
		Model: defaultModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: defaultMaxTokens,
	})
}

func (s *service) complete(ctx context.Context, req openai.ChatCompletionRequest) (ChatResponse, error) {
	if s.client == nil {
		return ChatResponse{}, assistanterrors.ErrAssistantDisabled
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		s.logger.Error("chat completion failed", zap.Error(err))
		return ChatResponse{}, assistanterrors.ErrAssistantUpstream
	}
	if len(resp.Choices) == 0 {
		return ChatResponse{}, assistanterrors.ErrEmptyCompletion
	}

	return ChatResponse{Reply: resp.Choices[0].Message.Content}, nil
}
