/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package minify compresses the final stylesheet for production builds.
package minify

import (
	"context"
	"errors"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	parse "github.com/tdewolff/parse/v2"

	"bennypowers.dev/utilicss/css"
)

// Name is the stage name.
const Name = "minify"

const mediaType = "text/css"

// Stage minifies CSS with tdewolff/minify.
type Stage struct {
	m *minify.M
}

// New creates a minify stage. Precision limits the significant digits kept
// in numbers; 0 keeps them all.
func New(precision int) *Stage {
	m := minify.New()
	m.Add(mediaType, &mincss.Minifier{Precision: precision})
	return &Stage{m: m}
}

// Name implements pipeline.Stage.
func (s *Stage) Name() string { return Name }

// Transform implements pipeline.Stage.
func (s *Stage) Transform(_ context.Context, src []byte) ([]byte, error) {
	out, err := s.m.Bytes(mediaType, src)
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			return nil, css.Errorf(css.Position{Line: perr.Line, Column: perr.Column}, "%s", perr.Message)
		}
		return nil, err
	}
	return out, nil
}
