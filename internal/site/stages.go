package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/navigation"
	"git.home.luguber.info/inful/sitegen/internal/render"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries the values stages hand to each other during one build.
type BuildState struct {
	Generator *Generator
	Report    *Report
	Posts     []*content.Post
	Pages     []*content.Page
	Nav       *navigation.Menu
	Renderer  *render.Renderer
	// Written lists every HTML file written this run, slash separated and relative to the output root.
	Written []string

	stage    StageName
	warnings []error // per-stage skipped outputs, reset by runStages
}

func newBuildState(g *Generator, report *Report) *BuildState {
	return &BuildState{Generator: g, Report: report}
}

// warn records a non-fatal problem in the current stage.
func (bs *BuildState) warn(err error) {
	bs.warnings = append(bs.warnings, err)
}

// stageWarning folds the warnings collected during a stage into one StageError.
func (bs *BuildState) stageWarning() error {
	if len(bs.warnings) == 0 {
		return nil
	}
	return newWarnStageError(bs.stage, errors.Join(bs.warnings...))
}

// runStages executes stages in order, recording timing and stopping on the first
// fatal or canceled stage.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	rec := bs.Generator.recorder
	logger := bs.Generator.logger

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newCanceledStageError(st.Name, err)
			bs.Report.recordStage(st.Name, se)
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		}

		bs.stage = st.Name
		bs.warnings = nil

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		if err == nil {
			err = bs.stageWarning()
		}
		dur := time.Since(t0)
		bs.Report.StageDurations[st.Name] = dur
		rec.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			bs.Report.recordStage(st.Name, nil)
			rec.IncStageResult(string(st.Name), metrics.ResultSuccess)
			logger.Debug("Stage completed", logfields.Stage(string(st.Name)),
				logfields.DurationMS(float64(dur.Microseconds())/1000))
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.Name, err)
		}
		if errors.Is(se.Err, context.Canceled) || errors.Is(se.Err, context.DeadlineExceeded) {
			se.Kind = StageErrorCanceled
		}
		bs.Report.recordStage(st.Name, se)

		switch se.Kind {
		case StageErrorWarning:
			rec.IncStageResult(string(st.Name), metrics.ResultWarning)
			logger.Warn("Stage completed with warnings", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			continue
		case StageErrorCanceled:
			rec.IncStageResult(string(st.Name), metrics.ResultCanceled)
			return se
		default:
			rec.IncStageResult(string(st.Name), metrics.ResultFatal)
			logger.Error("Stage failed", logfields.Stage(string(st.Name)), logfields.Error(se.Err))
			return se
		}
	}
	return nil
}

// stageLogger returns the generator logger tagged with the running stage.
func (bs *BuildState) stageLogger() *slog.Logger {
	return bs.Generator.logger.With(logfields.Stage(string(bs.stage)))
}
