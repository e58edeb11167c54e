package pipeline

import (
	"context"
	"log/slog"
	"time"

	"ladle/internal/logging"
	"ladle/internal/recipe"
	"ladle/internal/services"
)

type stageResult struct {
	step recipe.ProgressStep
	err  error
}

func (m *Manager) run(ctx context.Context, rec *recipe.Recipe) {
	logger := logging.WithContext(ctx, m.logger)
	start := time.Now()
	logger.Info("pipeline started",
		logging.String(logging.FieldEventType, "pipeline_start"),
		logging.String("video_id", rec.VideoID))

	artifact, ok := m.runReadyStage(ctx, logger, rec)
	if !ok {
		return
	}

	stages := m.generationStages(rec, artifact)
	results := make(chan stageResult, len(stages))
	for _, st := range stages {
		m.wg.Add(1)
		go func(st generationStage) {
			defer m.wg.Done()
			results <- stageResult{step: st.step, err: m.runGenerationStage(ctx, rec, st)}
		}(st)
	}

	for settled := 0; settled < len(stages); settled++ {
		res := <-results
		if res.err == nil {
			continue
		}
		// Fail fast: resolve the recipe now, let the surviving siblings
		// finish on their own, and compensate once the last one settles.
		m.finalizeFailure(logger, rec, res.err, artifact)
		pending := len(stages) - settled - 1
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for i := 0; i < pending; i++ {
				<-results
			}
			m.compensate(logger, rec.ID)
		}()
		return
	}

	m.finalizeSuccess(logger, rec, artifact)
	logger.Info("pipeline completed",
		logging.String(logging.FieldEventType, "pipeline_complete"),
		logging.Duration("pipeline_duration", time.Since(start)))
}

// runReadyStage resolves video metadata and verifies eligibility. Both run
// under the READY step: one RUNNING event before, one terminal event after.
func (m *Manager) runReadyStage(ctx context.Context, logger *slog.Logger, rec *recipe.Recipe) (recipe.Artifact, bool) {
	var empty recipe.Artifact
	if err := m.recordProgress(logger, rec.ID, recipe.StepReady, recipe.DetailReady, recipe.StateRunning); err != nil {
		m.finalizeFailure(logger, rec, err, empty)
		return empty, false
	}

	meta, err := m.resolver.Resolve(ctx, rec.VideoID)
	if err != nil {
		m.recordProgress(logger, rec.ID, recipe.StepReady, recipe.DetailReady, recipe.StateFailed)
		m.finalizeFailure(logger, rec, err, empty)
		return empty, false
	}
	if _, err := m.store.SaveVideoMeta(ctx, &recipe.VideoMeta{
		RecipeID:        rec.ID,
		VideoURI:        rec.SourceURL,
		Title:           meta.Title,
		ThumbnailURI:    meta.ThumbnailURI,
		DurationSeconds: meta.DurationSeconds,
		ChannelID:       meta.ChannelID,
		Status:          recipe.MetaStatusActive,
	}); err != nil {
		m.recordProgress(logger, rec.ID, recipe.StepReady, recipe.DetailReady, recipe.StateFailed)
		m.finalizeFailure(logger, rec, err, empty)
		return empty, false
	}

	artifact, err := m.verifier.Verify(ctx, rec.VideoID)
	if err != nil {
		m.recordProgress(logger, rec.ID, recipe.StepReady, recipe.DetailReady, recipe.StateFailed)
		m.finalizeFailure(logger, rec, err, empty)
		return empty, false
	}

	m.recordProgress(logger, rec.ID, recipe.StepReady, recipe.DetailReady, recipe.StateSuccess)
	return artifact, true
}

type generationStage struct {
	step   recipe.ProgressStep
	detail recipe.ProgressDetail
	run    func(ctx context.Context) error
}

func (m *Manager) generationStages(rec *recipe.Recipe, artifact recipe.Artifact) []generationStage {
	return []generationStage{
		{
			step:   recipe.StepCaption,
			detail: recipe.DetailCaption,
			run: func(ctx context.Context) error {
				segments, err := m.generators.Caption(ctx, rec.VideoID)
				if err != nil {
					return err
				}
				return m.store.SaveCaptions(ctx, rec.ID, segments)
			},
		},
		{
			step:   recipe.StepBriefing,
			detail: recipe.DetailBriefing,
			run: func(ctx context.Context) error {
				lines, err := m.generators.Briefing(ctx, artifact)
				if err != nil {
					return err
				}
				return m.store.SaveBriefing(ctx, rec.ID, lines)
			},
		},
		{
			step:   recipe.StepDetail,
			detail: recipe.DetailDetailMeta,
			run: func(ctx context.Context) error {
				result, err := m.generators.Detail(ctx, artifact)
				if err != nil {
					return err
				}
				return m.store.SaveDetail(ctx, rec.ID, result.Detail, result.Ingredients, result.Tags)
			},
		},
		{
			step:   recipe.StepStep,
			detail: recipe.DetailStep,
			run: func(ctx context.Context) error {
				steps, err := m.generators.Steps(ctx, artifact)
				if err != nil {
					return err
				}
				return m.store.SaveSteps(ctx, rec.ID, steps)
			},
		},
	}
}

func (m *Manager) runGenerationStage(ctx context.Context, rec *recipe.Recipe, st generationStage) error {
	stageCtx := services.WithStage(ctx, string(st.step))
	logger := logging.WithContext(stageCtx, m.logger)

	start := time.Now()
	if err := m.recordProgress(logger, rec.ID, st.step, st.detail, recipe.StateRunning); err != nil {
		return err
	}
	logger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))

	if err := st.run(stageCtx); err != nil {
		m.recordProgress(logger, rec.ID, st.step, st.detail, recipe.StateFailed)
		logger.Error("stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.Error(err),
			logging.Duration("stage_duration", time.Since(start)))
		return err
	}

	m.recordProgress(logger, rec.ID, st.step, st.detail, recipe.StateSuccess)
	logger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("stage_duration", time.Since(start)))
	return nil
}

// recordProgress appends a progress event. Terminal bookkeeping must not be
// lost to request cancellation, so appends run against the background
// context; the passed logger keeps the recipe correlation.
func (m *Manager) recordProgress(logger *slog.Logger, recipeID int64, step recipe.ProgressStep, detail recipe.ProgressDetail, state recipe.ProgressState) error {
	if err := m.store.AppendProgress(context.Background(), recipeID, step, detail, state); err != nil {
		logger.Error("failed to append progress event",
			logging.String("step", string(step)),
			logging.String("state", string(state)),
			logging.Error(err))
		return err
	}
	return nil
}
