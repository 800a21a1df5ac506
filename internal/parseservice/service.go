// Package parseservice coordinates recognition, expression building,
// evaluation, and history recording behind one service type.
package parseservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/BenjaminIrwin/scatexparser/internal/apperr"
	"github.com/BenjaminIrwin/scatexparser/internal/checksum"
	"github.com/BenjaminIrwin/scatexparser/internal/history"
	"github.com/BenjaminIrwin/scatexparser/internal/recognize"
	"github.com/BenjaminIrwin/scatexparser/internal/sse"
	"github.com/BenjaminIrwin/scatexparser/scatex"
)

// ParseResult is the full outcome of one parse attempt. Interval is nil
// when the expression could not be resolved against the anchor, and
// Expression is nil when nothing matched at all.
type ParseResult struct {
	Input      string           `json:"input"`
	Matched    bool             `json:"matched"`
	Locale     string           `json:"locale,omitempty"`
	Period     string           `json:"period,omitempty"`
	Expression map[string]any   `json:"expression,omitempty"`
	Text       string           `json:"text,omitempty"`
	Resolved   bool             `json:"resolved"`
	Interval   *scatex.Interval `json:"interval,omitempty"`
	HistoryID  int64            `json:"history_id,omitempty"`
}

// Service turns free text into evaluated intervals and records every
// attempt. The recognizer is swapped atomically on Reload, so concurrent
// parses are safe during dictionary reloads.
type Service struct {
	mu  sync.RWMutex
	rec *recognize.Recognizer

	languages    []string
	overridesDir string

	db     *history.DB
	broker *sse.Broker
	logger *slog.Logger
}

// NewService builds a service around an initial recognizer. db and broker
// may be nil; parsing then skips recording and event publishing.
func NewService(rec *recognize.Recognizer, languages []string, overridesDir string, db *history.DB, broker *sse.Broker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		rec:          rec,
		languages:    languages,
		overridesDir: overridesDir,
		db:           db,
		broker:       broker,
		logger:       logger,
	}
}

// Languages returns the configured locale codes in match order.
func (s *Service) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Languages()
}

// Reload rebuilds the recognizer from the embedded dictionaries plus the
// override directory and swaps it in.
func (s *Service) Reload() error {
	rec, err := recognize.NewWithOverrides(s.languages, s.overridesDir)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rec = rec
	s.mu.Unlock()

	s.logger.Info("parse service: dictionaries reloaded", slog.Any("languages", s.languages))
	if s.broker != nil {
		s.broker.Publish(sse.Event{Type: "locales.reloaded", Data: map[string]any{"languages": s.languages}})
	}
	return nil
}

// Parse recognizes text, builds and evaluates the expression against
// anchor, and records the attempt. An input that matches nothing is not an
// error; the result reports Matched false.
func (s *Service) Parse(ctx context.Context, text string, anchor time.Time) (*ParseResult, error) {
	s.mu.RLock()
	rec := s.rec
	s.mu.RUnlock()

	res := &ParseResult{Input: text}

	frag, locale, ok := rec.Recognize(text)
	if !ok {
		s.logger.Debug("parse: no match", slog.String("input", text))
		s.publish(sse.ParseEvent{Input: text})
		return res, nil
	}

	expr, err := scatex.Build(frag)
	if err != nil {
		return nil, err
	}

	res.Matched = true
	res.Locale = locale
	res.Period = scatex.Granularity(expr)
	res.Expression = scatex.EncodeExpression(expr)
	res.Text = scatex.FormatExpression(expr)

	if interval, ok := scatex.Evaluate(expr, anchor); ok {
		res.Resolved = true
		res.Interval = &interval
	}

	if err := s.record(ctx, res); err != nil {
		s.logger.Error("parse: record failed", slog.String("error", err.Error()))
	}
	s.publish(sse.ParseEvent{
		Input:    text,
		Locale:   locale,
		Period:   res.Period,
		Matched:  true,
		Resolved: res.Resolved,
	})
	return res, nil
}

// History lists recorded parses, optionally restricted to one locale.
func (s *Service) History(_ context.Context, locale string, limit, offset int) ([]history.Entry, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.List(locale, limit, offset)
}

// HistoryEntry returns one recorded parse by id.
func (s *Service) HistoryEntry(_ context.Context, id int64) (history.Entry, error) {
	if s.db == nil {
		return history.Entry{}, apperr.ErrNotFound
	}
	return s.db.Get(id)
}

// PurgeHistory deletes every recorded parse.
func (s *Service) PurgeHistory(_ context.Context) (int64, error) {
	if s.db == nil {
		return 0, nil
	}
	return s.db.Purge()
}

func (s *Service) record(_ context.Context, res *ParseResult) error {
	if s.db == nil {
		return nil
	}
	exprJSON, err := json.Marshal(res.Expression)
	if err != nil {
		return err
	}
	e := history.Entry{
		Checksum:   checksum.Sum([]byte(res.Locale + "\x00" + res.Input)),
		Input:      res.Input,
		Locale:     res.Locale,
		Period:     res.Period,
		Expression: string(exprJSON),
		Resolved:   res.Resolved,
	}
	if res.Interval != nil {
		start, end := res.Interval.Start, res.Interval.End
		e.Start, e.End = &start, &end
	}
	id, err := s.db.Record(e)
	if err != nil {
		return err
	}
	res.HistoryID = id
	return nil
}

func (s *Service) publish(ev sse.ParseEvent) {
	if s.broker != nil {
		s.broker.PublishParseEvent(ev)
	}
}
