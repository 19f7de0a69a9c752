package combo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/entitlement"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/archive"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/numerology"
)

type Request struct {
	Name      string
	BirthDate string
	Email     string
}

// Analyses mirrors the "analises" response object.
type Analyses struct {
	Name               string `json:"nome"`
	ZodiacSign         string `json:"signoZodiacal"`
	Numerology         string `json:"numerologia"`
	BirthChart         string `json:"mapaAstral"`
	SpiritualCleansing string `json:"limpezaEspiritual"`
}

type Result struct {
	HTML     string
	Reading  *numerology.Reading
	Analyses *Analyses
}

// Service runs one combo generation: gate, derive, compose, consume.
type Service struct {
	gate     *entitlement.Gate
	composer *Composer
	archiver archive.Archiver
	policy   config.ConsumePolicy
	prefix   string
	metrics  *metrics.Recorder
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewService(cfg *config.Config, gate *entitlement.Gate, composer *Composer, archiver archive.Archiver, m *metrics.Recorder, log *zap.SugaredLogger) *Service {
	policy := cfg.Combo.Consume
	if policy == "" {
		policy = config.ConsumeReserve
	}
	return &Service{
		gate:     gate,
		composer: composer,
		archiver: archiver,
		policy:   policy,
		prefix:   cfg.Archive.Prefix,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// Generate produces the customer's document. Gate failures are returned as
// entitlement.ErrNotFound or entitlement.ErrAlreadyConsumed before any text
// generation is attempted. A generation failure leaves the entitlement
// unconsumed.
func (s *Service) Generate(ctx context.Context, req Request) (res *Result, err error) {
	defer func() { s.metrics.ComboGeneration(resultLabel(err)) }()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.BirthDate) == "" {
		return nil, invalid("Nome, data de nascimento e email são obrigatórios")
	}
	birth, err := numerology.ParseBirthDate(req.BirthDate)
	if err != nil {
		return nil, invalid("Data de nascimento inválida")
	}

	ctx = logctx.WithEmail(ctx, email)
	log := logctx.FromCtx(ctx, s.log)

	p, err := s.gate.CheckAccess(ctx, email)
	if err != nil {
		log.Infow("combo_gate_denied", "reason", err.Error())
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(p.CustomerName)
	}
	if name == "" {
		return nil, invalid("Nome, data de nascimento e email são obrigatórios")
	}

	reading, err := numerology.Derive(name, birth.Format("2006-01-02"))
	if err != nil {
		return nil, invalid("%s", err.Error())
	}

	reserved := false
	if s.policy == config.ConsumeReserve {
		if err := s.gate.Reserve(ctx, email); err != nil {
			if errors.Is(err, entitlement.ErrAlreadyConsumed) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrStore, err)
		}
		reserved = true
	}

	// Bookkeeping must survive a client disconnect during generation.
	bg := context.WithoutCancel(ctx)

	doc, err := s.composer.Compose(ctx, reading)
	if err != nil {
		log.Errorw("combo_generation_failed", "error", err.Error())
		if reserved {
			s.gate.Release(bg, email)
		}
		return nil, err
	}

	s.gate.Complete(bg, email)
	s.archive(bg, email, doc.HTML)

	log.Infow("combo_generated", "sign", reading.Sign, "html_bytes", len(doc.HTML))
	return &Result{
		HTML:     doc.HTML,
		Reading:  reading,
		Analyses: analysesOf(reading, doc),
	}, nil
}

func (s *Service) archive(ctx context.Context, email, html string) {
	if s.archiver == nil {
		return
	}
	key := archive.Key(s.prefix, email, s.now())
	if err := s.archiver.Put(ctx, key, []byte(html)); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("combo_archive_failed", "key", key, "error", err.Error())
	}
}

func analysesOf(r *numerology.Reading, doc *Document) *Analyses {
	if len(doc.Sections) == 0 {
		return nil
	}
	return &Analyses{
		Name:               r.Name,
		ZodiacSign:         string(r.Sign),
		Numerology:         doc.Sections[config.SectionNumerology],
		BirthChart:         doc.Sections[config.SectionBirthChart],
		SpiritualCleansing: doc.Sections[config.SectionSpiritualCleansing],
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, entitlement.ErrNotFound):
		return "not_found"
	case errors.Is(err, entitlement.ErrAlreadyConsumed):
		return "already_consumed"
	case errors.Is(err, ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
