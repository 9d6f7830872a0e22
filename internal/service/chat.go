package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inmobot/internal/metrics"
	"inmobot/internal/model"
)

// SystemPrompt steers the conversational model. The closing phrase it is
// told to use is one of the assistant cues the client watches for.
const SystemPrompt = `Eres un asistente inmobiliario experto en Uruguay que ayuda a encontrar la propiedad perfecta. Tu objetivo es recopilar información del cliente de manera natural y conversacional.

INFORMACIÓN A RECOPILAR:
1. Tipo de propiedad (apartamento, casa, terreno, etc.)
2. Tipo de transacción (compra o alquiler)
3. Zona/Barrio de preferencia en Uruguay
4. Presupuesto en dólares (USD)
5. Cantidad de dormitorios
6. Cantidad de baños
7. Si es alquiler: período (anual, mensual, temporada)

REGLAS:
- Habla en español rioplatense (vos, che, bo)
- Sé amable, profesional pero cercano
- Pregunta UNA cosa a la vez
- Sé breve (máximo 2 oraciones)
- NUNCA repitas lo que el usuario dijo
- NO hagas resúmenes
- Cuando tengas suficiente info, di SOLO: "¡Perfecto! Te busco opciones."
- NO inventes propiedades ni enlaces

PRIMER MENSAJE:
¡Hola! Soy tu asistente inmobiliario. Para ayudarte a encontrar la propiedad perfecta, necesito saber un poco más sobre lo que estás buscando.

¿Qué tipo de propiedad te interesa? Por ejemplo: apartamento, casa, terreno, oficina, etc.`

// ChatCompleter is the part of OpenAIClient the chat service uses
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// ChatService relays a conversation to the model behind the system prompt
type ChatService struct {
	client      ChatCompleter
	model       string
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// NewChatService creates a chat service. model should already be alias-resolved.
func NewChatService(client ChatCompleter, model string, temperature float64, maxTokens int, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		client:      client,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// Reply returns the assistant's next message for the conversation so far
func (s *ChatService) Reply(ctx context.Context, messages []model.ChatMessage) (string, error) {
	full := make([]model.ChatMessage, 0, len(messages)+1)
	full = append(full, model.ChatMessage{Role: model.RoleSystem, Content: SystemPrompt})
	full = append(full, messages...)

	resp, err := s.client.ChatCompletion(ctx, ChatCompletionRequest{
		Model:       s.model,
		Messages:    full,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	if err != nil {
		metrics.ChatCompletions.WithLabelValues(metrics.ResultError).Inc()
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	content, err := resp.FirstContent()
	if err != nil {
		metrics.ChatCompletions.WithLabelValues(metrics.ResultError).Inc()
		return "", err
	}

	metrics.ChatCompletions.WithLabelValues(metrics.ResultOK).Inc()
	s.logger.Debug("chat completion",
		zap.Int("messages", len(messages)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return content, nil
}
