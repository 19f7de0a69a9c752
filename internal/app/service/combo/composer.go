package combo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/llm"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/numerology"
)

// Document is a finished combo.
type Document struct {
	HTML string
	// Sections maps section keys to their plain text. Empty in html mode.
	Sections map[string]string
}

// Composer turns a Reading into a Document using the text generator.
type Composer struct {
	gen      llm.TextGenerator
	prompts  *PromptBuilder
	sections []config.PromptSection
	mode     config.ComboMode
	metrics  *metrics.Recorder
	now      func() time.Time
}

func NewComposer(gen llm.TextGenerator, cfg config.ComboConfig, m *metrics.Recorder) *Composer {
	mode := cfg.Mode
	if mode == "" {
		mode = config.ComboModeSections
	}
	return &Composer{
		gen:      gen,
		prompts:  NewPromptBuilder(cfg.Prompt),
		sections: cfg.Prompt.Sections,
		mode:     mode,
		metrics:  m,
		now:      time.Now,
	}
}

// Compose runs the configured mode. Generator failures and empty output wrap
// ErrUpstream; a template render failure is returned as is.
func (c *Composer) Compose(ctx context.Context, r *numerology.Reading) (*Document, error) {
	if c.mode == config.ComboModeHTML {
		return c.composeHTML(ctx, r)
	}
	return c.composeSections(ctx, r)
}

func (c *Composer) complete(ctx context.Context, subtype, prompt string) (string, error) {
	start := time.Now()
	defer c.metrics.ObserveSince("llm", subtype, start)
	return c.gen.Complete(ctx, llm.Request{System: c.prompts.System(), Prompt: prompt})
}

func (c *Composer) composeHTML(ctx context.Context, r *numerology.Reading) (*Document, error) {
	out, err := c.complete(ctx, "document", c.prompts.Document(r))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	html := StripCodeFences(out)
	if html == "" {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, llm.ErrEmptyCompletion)
	}
	return &Document{HTML: html, Sections: map[string]string{}}, nil
}

// composeSections generates every section concurrently. The first failure
// cancels the remaining calls.
func (c *Composer) composeSections(ctx context.Context, r *numerology.Reading) (*Document, error) {
	if len(c.sections) == 0 {
		return nil, fmt.Errorf("%w: no prompt sections configured", ErrUpstream)
	}
	texts := make([]string, len(c.sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range c.sections {
		g.Go(func() error {
			out, err := c.complete(gctx, "section", c.prompts.Section(r, s))
			if err != nil {
				return fmt.Errorf("section %s: %w", s.Key, err)
			}
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("section %s: %w", s.Key, llm.ErrEmptyCompletion)
			}
			texts[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	rendered := make([]RenderedSection, len(c.sections))
	byKey := make(map[string]string, len(c.sections))
	for i, s := range c.sections {
		rendered[i] = RenderedSection{Key: s.Key, Title: s.Title, Paragraphs: Paragraphs(texts[i])}
		byKey[s.Key] = texts[i]
	}
	html, err := RenderDocument(r, rendered, c.now())
	if err != nil {
		return nil, err
	}
	return &Document{HTML: html, Sections: byKey}, nil
}
