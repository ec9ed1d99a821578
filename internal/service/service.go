// Package service wires request validation, document generation, rendering
// and the optional history and notification side effects into the
// operations exposed by the HTTP API and the CLI.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	dm "git.home.luguber.info/inful/policygen/internal/docmodel"
	"git.home.luguber.info/inful/policygen/internal/eventstore"
	"git.home.luguber.info/inful/policygen/internal/events"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/logfields"
	"git.home.luguber.info/inful/policygen/internal/metrics"
	"git.home.luguber.info/inful/policygen/internal/policy"
	"git.home.luguber.info/inful/policygen/internal/render"
	"git.home.luguber.info/inful/policygen/internal/validation"
)

// FormatPreview labels history records and metrics for the text preview
// returned by the generate endpoint.
const FormatPreview = "preview"

const sideEffectTimeout = 3 * time.Second

// ErrHistoryDisabled is returned by History when no store is configured.
var ErrHistoryDisabled = errors.NotFoundError("generation history is not enabled").Build()

// Options configures a PolicyService. Nil fields fall back to defaults:
// the default catalog, an unbranded renderer, no metrics, no history and
// no notifications.
type Options struct {
	Generator *policy.Generator
	Renderer  *render.Renderer
	Validator *validation.Validator
	Recorder  metrics.Recorder
	Store     eventstore.Store
	Publisher events.Publisher
	Logger    *slog.Logger
	// Now supplies the wall clock; tests pin it.
	Now func() time.Time
}

// PolicyService produces privacy policies. It is safe for concurrent use.
type PolicyService struct {
	generator *policy.Generator
	renderer  *render.Renderer
	validator *validation.Validator
	recorder  metrics.Recorder
	store     eventstore.Store
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// New builds a PolicyService from opts.
func New(opts Options) *PolicyService {
	s := &PolicyService{
		generator: opts.Generator,
		renderer:  opts.Renderer,
		validator: opts.Validator,
		recorder:  opts.Recorder,
		store:     opts.Store,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if s.generator == nil {
		s.generator = policy.NewGenerator(nil)
	}
	if s.renderer == nil {
		s.renderer = render.New(render.Options{})
	}
	if s.validator == nil {
		s.validator = validation.New()
	}
	if s.recorder == nil {
		s.recorder = metrics.NoopRecorder{}
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Preview validates req and returns the policy as intermediate markup, the
// text shown by the questionnaire.
func (s *PolicyService) Preview(ctx context.Context, req *validation.PolicyRequest) (string, error) {
	if err := s.validate(req); err != nil {
		return "", err
	}
	art, err := s.produce(ctx, req.Settings(), render.FormatText, FormatPreview)
	if err != nil {
		return "", err
	}
	return string(art.Body), nil
}

// Download validates req and renders it in the requested format, HTML when
// none is given.
func (s *PolicyService) Download(ctx context.Context, req *validation.PolicyRequest) (*render.Artifact, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	f := render.FormatHTML
	if strings.TrimSpace(req.Format) != "" {
		parsed, err := render.ParseFormat(req.Format)
		if err != nil {
			s.recorder.IncGenerationResult(metrics.ResultInvalid)
			return nil, errors.ValidationError("Validation error: unsupported format").
				WithContext("format", req.Format).
				Build()
		}
		f = parsed
	}
	return s.produce(ctx, req.Settings(), f, string(f))
}

// Render produces an artifact from settings that were already validated,
// as read by the CLI.
func (s *PolicyService) Render(ctx context.Context, settings policy.Settings, f render.Format) (*render.Artifact, error) {
	return s.produce(ctx, settings, f, string(f))
}

// History returns up to limit recent generations, newest first.
func (s *PolicyService) History(ctx context.Context, limit int) ([]eventstore.GenerationRecord, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	return s.store.Recent(ctx, limit)
}

// HistoryEnabled reports whether generations are recorded.
func (s *PolicyService) HistoryEnabled() bool { return s.store != nil }

// Catalog exposes the generator's phrase tables.
func (s *PolicyService) Catalog() *policy.Catalog { return s.generator.Catalog() }

func (s *PolicyService) validate(req *validation.PolicyRequest) error {
	if err := s.validator.Validate(req); err != nil {
		s.recorder.IncGenerationResult(metrics.ResultInvalid)
		return err
	}
	return nil
}

func (s *PolicyService) produce(ctx context.Context, settings policy.Settings, f render.Format, label string) (*render.Artifact, error) {
	start := time.Now()
	now := s.now()

	doc := s.generator.Generate(settings, now)
	meta := render.Meta{
		WebsiteName:   settings.WebsiteName,
		EffectiveDate: policy.EffectiveDate(&settings, now).String(),
	}
	art, err := s.renderer.Render(doc, meta, f)
	if err != nil {
		s.recorder.IncGenerationResult(metrics.ResultFailed)
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to render policy").
			WithContext("format", string(f)).
			Build()
	}

	s.countSections(doc)
	s.recorder.ObserveGeneration(label, time.Since(start))
	s.recorder.IncGenerationResult(metrics.ResultSuccess)

	rec := eventstore.NewGenerationRecord(now, strings.TrimSpace(settings.WebsiteName), label, doc.SectionIDs(), art.Fingerprint)
	s.logger.Debug("Generated policy",
		logfields.GenerationID(rec.ID),
		logfields.Format(label),
		logfields.Sections(len(doc.Sections)),
		logfields.Fingerprint(art.Fingerprint),
		logfields.Duration(time.Since(start)))

	s.afterGenerate(ctx, rec)
	return art, nil
}

func (s *PolicyService) countSections(doc *dm.Document) {
	for _, sec := range doc.Sections {
		s.recorder.IncSectionRendered(sec.ID)
	}
}

// afterGenerate records and announces a generation. Failures are logged and
// never reach the caller.
func (s *PolicyService) afterGenerate(ctx context.Context, rec eventstore.GenerationRecord) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if s.store != nil {
		err := s.store.Append(ctx, rec)
		s.recorder.IncHistoryWrite(err == nil)
		if err != nil {
			s.logger.Warn("Failed to record generation", logfields.GenerationID(rec.ID), logfields.Error(err))
		}
	}

	err := s.publisher.Publish(ctx, events.FromRecord(rec))
	if _, noop := s.publisher.(events.NoopPublisher); noop {
		return
	}
	s.recorder.IncEventPublish(err == nil)
	if err != nil {
		s.logger.Warn("Failed to publish generation event", logfields.GenerationID(rec.ID), logfields.Error(err))
	}
}
