package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inmobot/internal/model"
)

type fakeChatCompleter struct {
	got    ChatCompletionRequest
	answer string
	err    error
}

func (f *fakeChatCompleter) ChatCompletion(_ context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &ChatCompletionResponse{
		Choices: []ChatChoice{{Message: model.ChatMessage{Role: model.RoleAssistant, Content: f.answer}}},
	}, nil
}

func TestChatService_Reply(t *testing.T) {
	fc := &fakeChatCompleter{answer: "¿En qué zona?"}
	s := NewChatService(fc, "gpt-4o-mini", 0.3, 500, zap.NewNop())

	msgs := []model.ChatMessage{
		{Role: model.RoleAssistant, Content: "¿Qué tipo de propiedad te interesa?"},
		{Role: model.RoleUser, Content: "un apartamento"},
	}
	reply, err := s.Reply(context.Background(), msgs)

	require.NoError(t, err)
	assert.Equal(t, "¿En qué zona?", reply)
	assert.Equal(t, "gpt-4o-mini", fc.got.Model)
	assert.Equal(t, 0.3, fc.got.Temperature)
	assert.Equal(t, 500, fc.got.MaxTokens)
	require.Len(t, fc.got.Messages, 3)
	assert.Equal(t, model.RoleSystem, fc.got.Messages[0].Role)
	assert.Equal(t, SystemPrompt, fc.got.Messages[0].Content)
	assert.Equal(t, msgs, fc.got.Messages[1:])
}

func TestChatService_ReplyError(t *testing.T) {
	s := NewChatService(&fakeChatCompleter{err: errors.New("rate limited")}, "m", 0.3, 500, nil)

	_, err := s.Reply(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
