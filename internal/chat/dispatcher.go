package chat

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bobmcallan/ava/internal/common"
	"github.com/bobmcallan/ava/internal/interfaces"
	"github.com/bobmcallan/ava/internal/models"
)

// maxOverrideTokens is the utterance length, in whitespace tokens, up to
// which a generic classification is treated as a bare entity mention and
// the previous intent carries over.
const maxOverrideTokens = 3

// Dispatcher runs the per-turn pipeline and implements the ChatService
// interface. One dispatcher holds one conversation's memory; concurrent
// sessions each get their own via NewSession.
type Dispatcher struct {
	resolver    *Resolver
	memory      *Memory
	classifier  interfaces.IntentClassifier
	analyzer    interfaces.MorphAnalyzer // optional
	handlers    map[string]Handler
	instruments map[string]models.Instrument
	threshold   float64
	logger      *common.Logger
}

var _ interfaces.ChatService = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher over the given instrument table.
// The table drives both the entity gazetteer and the code lookup, so a
// configured instrument is always resolvable. analyzer may be nil, in
// which case annotation falls back to the rule-based default.
func NewDispatcher(
	instruments []models.Instrument,
	classifier interfaces.IntentClassifier,
	analyzer interfaces.MorphAnalyzer,
	handlers map[string]Handler,
	threshold float64,
	historyDepth int,
	logger *common.Logger,
) *Dispatcher {
	index := make(map[string]models.Instrument, len(instruments))
	for _, inst := range instruments {
		index[inst.Code] = inst
	}
	return &Dispatcher{
		resolver:    NewResolver(AliasesFrom(instruments)),
		memory:      NewMemory(historyDepth),
		classifier:  classifier,
		analyzer:    analyzer,
		handlers:    handlers,
		instruments: index,
		threshold:   threshold,
		logger:      logger,
	}
}

// NewSession returns a dispatcher sharing the handlers and clients but
// with its own empty conversation memory.
func (d *Dispatcher) NewSession() *Dispatcher {
	clone := *d
	clone.memory = NewMemory(d.memory.depth)
	return &clone
}

// Memory exposes the conversation state, mainly for session reset.
func (d *Dispatcher) Memory() *Memory {
	return d.memory
}

// Reply runs one full turn. Early exits (no entity, low confidence)
// return a canned prompt and leave the memory untouched; only a fully
// dispatched turn updates it.
func (d *Dispatcher) Reply(ctx context.Context, utterance string) (string, error) {
	question := strings.TrimSpace(utterance)
	if question == "" {
		return UnknownEntityPrompt, nil
	}

	entity, resolved := d.resolver.Resolve(question)
	if !resolved {
		if HasReference(question) && d.memory.LastEntity() != "" {
			entity = d.memory.LastEntity()
			d.logger.Debug().Str("entity", entity).Msg("Entity carried over from memory")
		} else {
			d.logger.Debug().Str("question", question).Msg("No entity resolved")
			return UnknownEntityPrompt, nil
		}
	}

	inst, known := d.instruments[entity]
	if !known {
		d.logger.Warn().Str("entity", entity).Msg("Resolved entity has no instrument entry")
		return UnknownEntityPrompt, nil
	}

	prediction, err := d.classifier.Classify(ctx, question)
	if err != nil {
		return "", fmt.Errorf("intent classification failed: %w", err)
	}
	intent := prediction.Intent

	// A short turn like "peki akbank?" classifies generic; the user is
	// switching entity, not topic, so the previous intent wins.
	if intent == IntentGeneralInfo && len(strings.Fields(question)) <= maxOverrideTokens {
		if last := d.memory.LastIntent(); last != "" && last != IntentGeneralInfo {
			d.logger.Debug().Str("intent", last).Msg("Context override: previous intent retained")
			intent = last
		}
	}

	if prediction.Confidence < d.threshold {
		d.logger.Warn().
			Float64("confidence", prediction.Confidence).
			Float64("threshold", d.threshold).
			Str("intent", prediction.Intent).
			Msg("Confidence below threshold")
		return fmt.Sprintf(LowConfidenceReply, entity), nil
	}

	annotation := d.annotate(ctx, question)

	handler, ok := d.handlers[intent]
	if !ok {
		handler = d.handlers[IntentGeneralInfo]
	}
	if handler == nil {
		return "", fmt.Errorf("no handler registered for intent %q", intent)
	}

	d.logger.Info().Str("entity", entity).Str("intent", intent).Float64("confidence", prediction.Confidence).Msg("Dispatching")

	reply, err := handler.Execute(ctx, inst, question, annotation)
	if err != nil {
		return "", err
	}

	final := reply + Disclaimer
	d.memory.Update(entity, intent, question, final)
	return final, nil
}

// annotate combines the morphological analysis with the rule-based
// question check. The rule layer can only set the question flag, never
// clear it.
func (d *Dispatcher) annotate(ctx context.Context, question string) *models.Annotation {
	isQuestion := looksLikeQuestion(question)
	if d.analyzer == nil {
		return models.DefaultAnnotation(isQuestion)
	}

	annotation, err := d.analyzer.Annotate(ctx, question)
	if err != nil || annotation == nil {
		d.logger.Debug().Err(err).Msg("Morphological analysis unavailable, using rule-based default")
		return models.DefaultAnnotation(isQuestion)
	}
	if isQuestion {
		annotation.IsQuestion = true
	}
	return annotation
}

var questionWords = []string{"ne", "nasıl", "kaç", "ne kadar", "ne zaman", "niçin", "neden", "kim"}

var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N} ]+`)

// looksLikeQuestion applies the rule-based layer: a trailing question
// mark or a whole-word interrogative anywhere in the utterance.
func looksLikeQuestion(text string) bool {
	lowered := strings.TrimSpace(turkishLower.String(text))
	if strings.HasSuffix(lowered, "?") {
		return true
	}

	padded := " " + nonWordPattern.ReplaceAllString(lowered, " ") + " "
	for _, word := range questionWords {
		if strings.Contains(padded, " "+word+" ") {
			return true
		}
	}
	return false
}
