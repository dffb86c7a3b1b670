/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package macro

import (
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/utilicss/css"
	"bennypowers.dev/utilicss/pipeline"
)

// EachName is the @each stage name.
const EachName = "each"

// @each $value[, $index] in a, b, c
var eachHeader = regexp.MustCompile(`^\$([A-Za-z_][\w-]*)(?:\s*,\s*\$([A-Za-z_][\w-]*))?\s+in\s+(.+)$`)

// NewEach creates the stage expanding
//
//	@each $icon, $i in add, remove { .icon-$(icon) { order: $i; } }
//
// into one copy of the body per list item. The index is 0-based.
func NewEach() pipeline.Stage {
	return &stage{name: EachName, expand: expandEach}
}

func expandEach(at *css.AtRule) ([]css.Node, error) {
	if !at.Block {
		return nil, css.Errorf(at.Position, "@each requires a block")
	}
	m := eachHeader.FindStringSubmatch(strings.TrimSpace(at.Params))
	if m == nil {
		return nil, css.Errorf(at.Position, "malformed @each header %q: expected \"$var[, $index] in a, b\"", at.Params)
	}
	value, index, list := m[1], m[2], strings.TrimSpace(m[3])
	list = strings.TrimSuffix(strings.TrimPrefix(list, "("), ")")
	items := css.SplitList(list)
	if len(items) == 0 {
		return nil, css.Errorf(at.Position, "@each over an empty list")
	}

	var out []css.Node
	for i, item := range items {
		vars := map[string]string{value: item}
		if index != "" {
			vars[index] = strconv.Itoa(i)
		}
		out = append(out, bind(at.Nodes, vars)...)
	}
	return out, nil
}
