package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"vdcode/internal/domain"
	"vdcode/internal/logger"
	"vdcode/internal/repository"
	"vdcode/internal/shortcode"
)

const maxRetries = 5

// Bounds on the length of an issued code. The core accepts the empty code,
// but an issued code has to be printable and addressable.
const (
	MinLength = 1
	MaxLength = 64
)

var (
	// ErrRetriesExhausted is returned when every generated code collided with
	// an issued one.
	ErrRetriesExhausted = errors.New("max retries exceeded: unable to generate unique code")

	// ErrInvalidLength is returned for a length outside MinLength..MaxLength.
	ErrInvalidLength = errors.New("invalid code length")

	// ErrInvalidTTL is returned for a TTL that is not positive.
	ErrInvalidTTL = errors.New("ttl must be positive")
)

// CodeGenerator produces a code for a generator configuration.
type CodeGenerator interface {
	Generate(cfg shortcode.Generator) (shortcode.Code, error)
}

// SourceGenerator draws codes from a randomness source.
type SourceGenerator struct {
	src rand.Source
}

// NewSourceGenerator binds src. The source is shared by every request, so it
// must be safe for concurrent use (shortcode.CryptoSource, shortcode.LockedSource).
func NewSourceGenerator(src rand.Source) *SourceGenerator {
	return &SourceGenerator{src: src}
}

func (g *SourceGenerator) Generate(cfg shortcode.Generator) (shortcode.Code, error) {
	return cfg.Generate(g.src)
}

// Defaults apply when an issue request leaves a setting out.
type Defaults struct {
	Length            int
	NoRepeats         bool
	NoAdjacentRepeats bool
	TTL               time.Duration
}

// Generator returns the code generator described by d.
func (d Defaults) Generator() shortcode.Generator {
	gen := shortcode.NewGenerator().Length(d.Length)
	if d.NoRepeats {
		gen = gen.NoRepeats()
	}
	if d.NoAdjacentRepeats {
		gen = gen.NoAdjacentRepeats()
	}
	return gen
}

// Validate checks that d describes codes the service can issue.
func (d Defaults) Validate() error {
	if d.Length < MinLength || d.Length > MaxLength {
		return fmt.Errorf("%w: %d is not between %d and %d", ErrInvalidLength, d.Length, MinLength, MaxLength)
	}
	if d.TTL <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTTL, d.TTL)
	}
	return d.Generator().Validate()
}

// DefaultDefaults matches shortcode.NewGenerator with a one day TTL.
var DefaultDefaults = Defaults{
	Length: shortcode.DefaultLength,
	TTL:    24 * time.Hour,
}

// IssueParams describes a code to issue. Nil fields take the defaults.
type IssueParams struct {
	Label             string
	TTL               time.Duration
	Length            *int
	NoRepeats         *bool
	NoAdjacentRepeats *bool
}

// CodeService handles issuing and resolving codes.
type CodeService struct {
	repo      repository.Repository
	generator CodeGenerator
	clock     domain.Clock
	defaults  Defaults
	log       *slog.Logger
}

// Option configures a CodeService.
type Option func(*CodeService)

// WithDefaults overrides DefaultDefaults.
func WithDefaults(d Defaults) Option {
	return func(s *CodeService) { s.defaults = d }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log *slog.Logger) Option {
	return func(s *CodeService) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCodeService creates a CodeService.
func NewCodeService(repo repository.Repository, generator CodeGenerator, clock domain.Clock, opts ...Option) *CodeService {
	s := &CodeService{
		repo:      repo,
		generator: generator,
		clock:     clock,
		defaults:  DefaultDefaults,
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("code_service"))
	return s
}

// Resolve applies params over the defaults.
func (s *CodeService) Resolve(p IssueParams) Defaults {
	d := s.defaults
	if p.Length != nil {
		d.Length = *p.Length
	}
	if p.NoRepeats != nil {
		d.NoRepeats = *p.NoRepeats
	}
	if p.NoAdjacentRepeats != nil {
		d.NoAdjacentRepeats = *p.NoAdjacentRepeats
	}
	if p.TTL != 0 {
		d.TTL = p.TTL
	}
	return d
}

// Issue generates a new code and stores it. Generator errors are returned
// as is; storage collisions are retried with a fresh code.
func (s *CodeService) Issue(ctx context.Context, p IssueParams) (*domain.CodeRecord, error) {
	settings := s.Resolve(p)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	gen := settings.Generator()

	now := s.clock.Now()

	for attempt := 0; attempt < maxRetries; attempt++ {
		code, err := s.generator.Generate(gen)
		if err != nil {
			return nil, fmt.Errorf("generating code: %w", err)
		}

		record := &domain.CodeRecord{
			Code:      code,
			Label:     p.Label,
			CreatedAt: now,
			ExpiresAt: now.Add(settings.TTL),
		}

		err = s.repo.SaveIfNotExists(ctx, record)
		if err == nil {
			s.log.DebugContext(ctx, "code issued", logger.Code(code), slog.Int("attempt", attempt+1))
			return record, nil
		}

		if errors.Is(err, domain.ErrCodeExists) {
			continue // Collision, retry with new code
		}

		return nil, fmt.Errorf("saving record: %w", err)
	}

	s.log.WarnContext(ctx, "code space exhausted", slog.Int("length", gen.Len()))
	return nil, ErrRetriesExhausted
}

// Validate parses raw without touching storage.
func (s *CodeService) Validate(raw string) (shortcode.Code, error) {
	return shortcode.Parse(raw)
}

// Lookup returns the record for raw and counts the lookup.
// Returns a shortcode.InvalidCharacterError for malformed input,
// domain.ErrNotFound if not found, domain.ErrExpired if expired.
func (s *CodeService) Lookup(ctx context.Context, raw string) (*domain.CodeRecord, error) {
	record, err := s.find(ctx, raw)
	if err != nil {
		return nil, err
	}

	// Counting is best effort; a failed increment doesn't fail the lookup
	now := s.clock.Now()
	if err := s.repo.IncrementLookupCount(ctx, record.Code, now); err != nil {
		s.log.WarnContext(ctx, "counting lookup", logger.Code(record.Code), logger.Error(err))
	} else {
		record.LookupCount++
		record.LastLookupAt = now
	}

	return record, nil
}

// Stats returns the record for raw without counting.
func (s *CodeService) Stats(ctx context.Context, raw string) (*domain.CodeRecord, error) {
	return s.find(ctx, raw)
}

func (s *CodeService) find(ctx context.Context, raw string) (*domain.CodeRecord, error) {
	code, err := shortcode.Parse(raw)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if record.IsExpired(s.clock.Now()) {
		return nil, domain.ErrExpired
	}

	return record, nil
}
