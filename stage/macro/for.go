/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package macro

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/utilicss/css"
	"bennypowers.dev/utilicss/pipeline"
)

// ForName is the @for stage name.
const ForName = "for"

// MaxIterations bounds a single @for loop.
const MaxIterations = 10000

// @for $i from 1 to 3 [by 1]
var forHeader = regexp.MustCompile(`^\$([A-Za-z_][\w-]*)\s+from\s+(\S+)\s+to\s+(\S+)(?:\s+by\s+(\S+))?$`)

// NewFor creates the stage expanding
//
//	@for $i from 1 to 3 { .mt-$(i) { margin-top: calc($i * 1rem); } }
//
// Bounds are inclusive; the loop counts down when from exceeds to.
func NewFor() pipeline.Stage {
	return &stage{name: ForName, expand: expandFor}
}

func expandFor(at *css.AtRule) ([]css.Node, error) {
	if !at.Block {
		return nil, css.Errorf(at.Position, "@for requires a block")
	}
	m := forHeader.FindStringSubmatch(strings.TrimSpace(at.Params))
	if m == nil {
		return nil, css.Errorf(at.Position, "malformed @for header %q: expected \"$var from A to B [by S]\"", at.Params)
	}
	name := m[1]
	from, err := number(at, "from", m[2])
	if err != nil {
		return nil, err
	}
	to, err := number(at, "to", m[3])
	if err != nil {
		return nil, err
	}
	step := 1.0
	if m[4] != "" {
		if step, err = number(at, "by", m[4]); err != nil {
			return nil, err
		}
	}
	step = math.Abs(step)
	if step == 0 {
		return nil, css.Errorf(at.Position, "@for step must not be zero")
	}
	if (math.Abs(to-from))/step >= MaxIterations {
		return nil, css.Errorf(at.Position, "@for exceeds %d iterations", MaxIterations)
	}
	if from > to {
		step = -step
	}

	var out []css.Node
	for i := 0; ; i++ {
		v := from + float64(i)*step
		if step > 0 && v > to || step < 0 && v < to {
			break
		}
		out = append(out, bind(at.Nodes, map[string]string{name: strconv.FormatFloat(v, 'f', -1, 64)})...)
	}
	return out, nil
}

func number(at *css.AtRule, what, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, css.Errorf(at.Position, "@for %s value %q is not a number", what, s)
	}
	return v, nil
}
