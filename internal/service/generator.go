package service

import (
	"log/slog"
	"slices"

	"github.com/sakif/prompt-library/internal/generator"
	"github.com/sakif/prompt-library/internal/metrics"
)

// GeneratorService wraps generator.Generate with metrics and logging.
type GeneratorService struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewGeneratorService(m *metrics.Metrics, logger *slog.Logger) *GeneratorService {
	return &GeneratorService{metrics: m, logger: logger}
}

// Generate builds a prompt for req. See generator.Generate for the rules.
func (s *GeneratorService) Generate(req generator.Request) (generator.Result, error) {
	res, err := generator.Generate(req)
	if err != nil {
		return generator.Result{}, err
	}

	s.metrics.Generated(res.Model)
	s.logger.Debug("prompt generated",
		slog.String("aiModel", res.Model),
		slog.String("tone", res.Tone),
		slog.Bool("image", res.Image),
	)
	return res, nil
}

// Options lists the models and tones Generate accepts.
func (s *GeneratorService) Options() (models, tones []string) {
	return slices.Clone(generator.Models), slices.Clone(generator.Tones)
}
