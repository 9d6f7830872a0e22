package extractor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inmobot/internal/model"
	"inmobot/internal/utils"
)

// Completer is the slice of a chat-completion client the model extractor needs
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const criteriaPrompt = `Extraé los criterios de búsqueda inmobiliaria del texto del usuario (Uruguay).
Respondé SOLO con un objeto JSON con estas claves, omitiendo las que no se mencionan:
- "propertyType": "apartment" | "house" | "land"
- "transactionType": "rent" | "sale"
- "zone": barrio o ciudad tal como lo escribió el usuario
- "budgetUSD": número entero en dólares ("150 mil" = 150000)
- "bedrooms": número entero de dormitorios
- "bathrooms": número entero de baños
- "rentalPeriod": "annual" | "monthly" | "biweekly" | "seasonal" | "winter"
No inventes valores.`

// ModelExtractor asks the conversational model for the criteria and falls
// back to the rule tables when the call or the answer is unusable. Fields
// the model leaves out are filled from the rules.
type ModelExtractor struct {
	completer Completer
	fallback  Extractor
	logger    *zap.Logger
}

// NewModelExtractor creates a model-backed extractor
func NewModelExtractor(completer Completer, fallback Extractor, logger *zap.Logger) *ModelExtractor {
	if fallback == nil {
		fallback = NewRuleExtractor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelExtractor{completer: completer, fallback: fallback, logger: logger}
}

// Extract implements Extractor
func (e *ModelExtractor) Extract(ctx context.Context, text string) model.Criteria {
	ruled := e.fallback.Extract(ctx, text)
	if text == "" || e.completer == nil {
		return ruled
	}

	parsed, err := e.extractWithModel(ctx, text)
	if err != nil {
		e.logger.Warn("model extraction failed, using rules", zap.Error(err))
		return ruled
	}
	if parsed.Zone != "" {
		parsed.Zone = CanonicalZone(parsed.Zone)
	}
	return parsed.FillFrom(ruled)
}

func (e *ModelExtractor) extractWithModel(ctx context.Context, text string) (model.Criteria, error) {
	answer, err := e.completer.Complete(ctx, criteriaPrompt, text)
	if err != nil {
		return model.Criteria{}, fmt.Errorf("completion failed: %w", err)
	}

	obj, err := utils.DecodeObject(answer)
	if err != nil {
		return model.Criteria{}, fmt.Errorf("failed to parse criteria: %w", err)
	}
	return model.CriteriaFromMap(obj), nil
}
