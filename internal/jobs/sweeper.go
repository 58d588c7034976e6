package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"autoecole/config"
	"autoecole/infras/otel"
	documentService "autoecole/internal/domains/document/service"
	"autoecole/shared/constant"
	"autoecole/shared/timezone"
)

// Sweeper periodically removes staged uploads that were never finalized.
type Sweeper struct {
	cron      *cron.Cron
	documents documentService.Document
	config    *config.Config
	otel      otel.Otel
}

func NewSweeper(documents documentService.Document, cfg *config.Config, otel otel.Otel) *Sweeper {
	return &Sweeper{
		cron:      cron.New(cron.WithLocation(timezone.GetLocation())),
		documents: documents,
		config:    cfg,
		otel:      otel,
	}
}

// Start registers the sweep job and begins the scheduler.
func (s *Sweeper) Start() {
	if !s.config.Upload.SweepEnable {
		log.Info().Msg("Staged document sweeper is disabled")

		return
	}

	schedule := s.config.Upload.SweepSchedule

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("Failed to register staged document sweep job")

		return
	}

	s.cron.Start()

	log.Info().Str("schedule", schedule).Msg("Staged document sweeper started")
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	log.Info().Msg("Staged document sweeper stopped")
}

func (s *Sweeper) run() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelJobScopeName, constant.OtelJobScopeName+".SweepStagedDocuments")
	defer scope.End()

	swept, err := s.documents.Sweep(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("Staged document sweep failed")

		return
	}

	if swept > 0 {
		log.Info().Int("swept", swept).Msg("Expired staged documents removed")
	}

	scope.SetAttribute("job.swept", swept)
}
