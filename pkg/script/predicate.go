/*
 * Copyright (C) 2020-2026, IrineSistiana
 *
 * This file is part of seqlist.
 *
 * seqlist is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * seqlist is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package script

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/pmkol/seqlist/pkg/sequence"
)

const valueParam = "value"

// predicate is a govaluate expression over a single parameter named value.
// Int elements are passed as float64, the only number type govaluate
// knows.
type predicate struct {
	expr *govaluate.EvaluableExpression
	err  error
}

func newPredicate(s string, k sequence.Kind) (*predicate, error) {
	expr, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return nil, err
	}
	for _, v := range expr.Vars() {
		if v != valueParam {
			return nil, fmt.Errorf("unknown variable %s, only %s is available", v, valueParam)
		}
	}

	// params type check
	expr.ChecksTypes = true
	var sample any = ""
	if k == sequence.KindInt {
		sample = float64(0)
	}
	res, err := expr.Eval(predicateParams{v: sample})
	if err != nil {
		return nil, fmt.Errorf("invalid expression, %w", err)
	}
	if _, ok := res.(bool); !ok {
		return nil, fmt.Errorf("expression %q is not a condition, got %T", s, res)
	}
	return &predicate{expr: expr}, nil
}

type predicateParams struct {
	v any
}

func (p predicateParams) Get(name string) (any, error) {
	if name != valueParam {
		return nil, fmt.Errorf("unknown variable %s", name)
	}
	return p.v, nil
}

// match reports whether v satisfies the expression. The first evaluation
// error is kept in p.err and every later call returns false.
func (p *predicate) match(v any) bool {
	if p.err != nil {
		return false
	}
	if n, ok := v.(int64); ok {
		v = float64(n)
	}
	res, err := p.expr.Eval(predicateParams{v: v})
	if err != nil {
		p.err = err
		return false
	}
	b, _ := res.(bool)
	return b
}
