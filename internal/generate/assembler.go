package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/deckgen/internal/deck"
)

// ErrEmptyTopic rejects blank or whitespace-only topics.
var ErrEmptyTopic = errors.New("topic must be a non-empty string")

// Completer is the generator boundary. *Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// Options tune the two generation passes.
type Options struct {
	Depth             int
	DraftMaxTokens    int
	PolishMaxTokens   int
	DraftTemperature  float64
	PolishTemperature float64
}

func (o *Options) applyDefaults() {
	if o.Depth <= 0 {
		o.Depth = 3
	}
	if o.DraftMaxTokens <= 0 {
		o.DraftMaxTokens = 2000
	}
	if o.PolishMaxTokens <= 0 {
		o.PolishMaxTokens = 1800
	}
	if o.DraftTemperature <= 0 {
		o.DraftTemperature = 0.4
	}
	if o.PolishTemperature <= 0 {
		o.PolishTemperature = 0.2
	}
}

// Assembler runs the draft and polish generation passes and hands every
// response through the repair engine.
type Assembler struct {
	client Completer
	log    *slog.Logger
	opts   Options
}

func NewAssembler(client Completer, log *slog.Logger, opts Options) *Assembler {
	opts.applyDefaults()
	return &Assembler{client: client, log: log, opts: opts}
}

// Assemble builds the final deck for a topic. A draft-pass transport
// failure is fatal; a polish-pass failure degrades to the unpolished
// draft. The returned deck is always normalized.
func (a *Assembler) Assemble(ctx context.Context, topic string, facts []string) (*deck.Deck, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	raw, err := a.client.Complete(ctx, DraftSystemPrompt, BuildDraftPrompt(topic, facts, a.opts.Depth), a.opts.DraftMaxTokens, a.opts.DraftTemperature)
	if err != nil {
		return nil, fmt.Errorf("draft generation: %w", err)
	}
	draft := deck.Repair(raw)

	final := a.polish(ctx, draft, facts)
	return deck.Normalize(final, facts), nil
}

// polish runs the second generation pass. Any failure keeps the draft.
func (a *Assembler) polish(ctx context.Context, draft *deck.Deck, facts []string) *deck.Deck {
	draftJSON, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		a.log.Warn("draft re-encode failed, skipping polish", "error", err)
		return draft
	}

	raw, err := a.client.Complete(ctx, PolishSystemPrompt, BuildPolishPrompt(string(draftJSON), facts), a.opts.PolishMaxTokens, a.opts.PolishTemperature)
	if err != nil {
		a.log.Warn("polish pass failed, keeping draft", "error", err)
		return draft
	}
	return deck.Repair(raw)
}
