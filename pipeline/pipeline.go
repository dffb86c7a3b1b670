/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package pipeline runs an ordered chain of stylesheet transformation stages.
package pipeline

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bennypowers.dev/utilicss/css"
)

// Stage is one transformation step of the build.
type Stage interface {
	// Name identifies the stage in logs and errors (e.g., "nesting").
	Name() string

	// Transform consumes the previous stage's output and returns its own.
	Transform(ctx context.Context, src []byte) ([]byte, error)
}

// StageError reports a stage that could not process its input.
type StageError struct {
	// Stage is the failing stage's name.
	Stage string
	// Pos is the offending source location, when known.
	Pos css.Position
	// After names the stage whose output the failing stage was reading.
	// Empty when the failing stage read the pipeline input, in which case
	// Pos refers to the user's source.
	After string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Stage)
	sb.WriteString(": ")
	msg := e.Err.Error()
	var cerr *css.Error
	if errors.As(e.Err, &cerr) {
		msg = cerr.Message
	}
	if e.Pos.IsValid() || e.Pos.File != "" {
		sb.WriteString(e.Pos.String())
		if e.After != "" && e.Pos.File == "" {
			sb.WriteString(" in output of ")
			sb.WriteString(e.After)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(msg)
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Pipeline is a fixed, ordered list of stages.
type Pipeline struct {
	stages []Stage
	log    *zap.Logger
}

// New creates a pipeline that runs stages in the given order.
func New(log *zap.Logger, stages ...Stage) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{stages: stages, log: log.Named("pipeline")}
}

// Stages returns the stage names in run order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run applies every stage in order. The first failure aborts the run with a
// *StageError and no output.
func (p *Pipeline) Run(ctx context.Context, src []byte) ([]byte, error) {
	current := src
	for i, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.log.Debug("Running stage",
			zap.Int("index", i),
			zap.String("stage", stage.Name()),
			zap.Int("bytes", len(current)))

		out, err := stage.Transform(ctx, current)
		if err != nil {
			after := ""
			if i > 0 {
				after = p.stages[i-1].Name()
			}
			return nil, wrap(stage.Name(), after, err)
		}
		current = out
	}
	return current, nil
}

func wrap(stage, after string, err error) error {
	var serr *StageError
	if errors.As(err, &serr) {
		return err
	}
	serr = &StageError{Stage: stage, After: after, Err: err}
	var cerr *css.Error
	if errors.As(err, &cerr) {
		serr.Pos = cerr.Pos
	}
	return serr
}

type funcStage struct {
	name string
	fn   func(ctx context.Context, src []byte) ([]byte, error)
}

// Func adapts a function to a Stage.
func Func(name string, fn func(ctx context.Context, src []byte) ([]byte, error)) Stage {
	return &funcStage{name: name, fn: fn}
}

func (s *funcStage) Name() string { return s.name }

func (s *funcStage) Transform(ctx context.Context, src []byte) ([]byte, error) {
	return s.fn(ctx, src)
}
