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

package http_handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pmkol/seqlist/pkg/seq_store"
	"github.com/pmkol/seqlist/pkg/sequence"
	"github.com/pmkol/seqlist/pkg/snapshot"
)

type namesResp struct {
	Names []string `json:"names"`
}

type countResp struct {
	Count int `json:"count"`
}

type removedResp struct {
	Removed int `json:"removed"`
}

type containsResp struct {
	Contains bool `json:"contains"`
}

type indexResp struct {
	Index int `json:"index"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, namesResp{Names: h.opts.Store.Names()})
	return nil
}

func (h *Handler) get(w http.ResponseWriter, req *http.Request) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
	return nil
}

// put creates or replaces a sequence from a snapshot body.
func (h *Handler) put(w http.ResponseWriter, req *http.Request) error {
	b, err := h.readBody(w, req)
	if err != nil {
		return err
	}
	sn, err := snapshot.DecodeJSON(b)
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	s, err := sn.Restore()
	if err != nil {
		return err
	}
	name := mux.Vars(req)["name"]
	h.opts.Store.Put(name, s)
	h.opts.Logger.Debug("sequence replaced", zap.String("seq", name), zap.Int("len", s.Len()))
	writeJSON(w, http.StatusOK, countResp{Count: s.Len()})
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, req *http.Request) error {
	name := mux.Vars(req)["name"]
	if !h.opts.Store.Delete(name) {
		return fmt.Errorf("%w: %s", seq_store.ErrNotFound, name)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) add(w http.ResponseWriter, req *http.Request) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	values, err := h.readValues(w, req)
	if err != nil {
		return err
	}
	var n int
	err = c.Do(func(s *sequence.Seq) error {
		if err := s.AddAll(values); err != nil {
			return err
		}
		n = s.Len()
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, countResp{Count: n})
	return nil
}

func (h *Handler) removeWith(w http.ResponseWriter, req *http.Request, f func(s *sequence.Seq, values []any) (int, error)) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	values, err := h.readValues(w, req)
	if err != nil {
		return err
	}
	var n int
	err = c.Do(func(s *sequence.Seq) (err error) {
		n, err = f(s, values)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, removedResp{Removed: n})
	return nil
}

func (h *Handler) remove(w http.ResponseWriter, req *http.Request) error {
	return h.removeWith(w, req, (*sequence.Seq).RemoveAll)
}

func (h *Handler) removeEvery(w http.ResponseWriter, req *http.Request) error {
	return h.removeWith(w, req, (*sequence.Seq).RemoveAllAndEveryOccurrence)
}

// mutate runs f under the lock and answers with the resulting snapshot.
func (h *Handler) mutate(w http.ResponseWriter, req *http.Request, f func(s *sequence.Seq)) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	var sn *snapshot.Snapshot
	err = c.Do(func(s *sequence.Seq) error {
		f(s)
		sn = snapshot.Take(s)
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, sn)
	return nil
}

func (h *Handler) reverse(w http.ResponseWriter, req *http.Request) error {
	return h.mutate(w, req, (*sequence.Seq).Reverse)
}

func (h *Handler) unique(w http.ResponseWriter, req *http.Request) error {
	return h.mutate(w, req, func(s *sequence.Seq) { s.Unique() })
}

func (h *Handler) merge(w http.ResponseWriter, req *http.Request) error {
	name := mux.Vars(req)["name"]
	with := req.URL.Query().Get("with")
	if len(with) == 0 {
		return fmt.Errorf("%w: missing with", errBadRequest)
	}
	var n int
	err := h.opts.Store.Do2(name, with, func(dst, src *sequence.Seq) error {
		if err := dst.Merge(src); err != nil {
			return err
		}
		n = dst.Len()
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, countResp{Count: n})
	return nil
}

func (h *Handler) save(w http.ResponseWriter, req *http.Request) error {
	if err := h.opts.Store.Save(req.Context(), mux.Vars(req)["name"]); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) load(w http.ResponseWriter, req *http.Request) error {
	c, err := h.opts.Store.Load(req.Context(), mux.Vars(req)["name"])
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, c.Snapshot())
	return nil
}

func (h *Handler) readOne(w http.ResponseWriter, req *http.Request, f func(s *sequence.Seq) (any, error)) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	var v any
	err = c.Do(func(s *sequence.Seq) (err error) {
		v, err = f(s)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResp{Value: v})
	return nil
}

func (h *Handler) first(w http.ResponseWriter, req *http.Request) error {
	return h.readOne(w, req, (*sequence.Seq).First)
}

func (h *Handler) last(w http.ResponseWriter, req *http.Request) error {
	return h.readOne(w, req, (*sequence.Seq).Last)
}

func (h *Handler) at(w http.ResponseWriter, req *http.Request) error {
	i, err := strconv.Atoi(mux.Vars(req)["i"])
	if err != nil {
		return fmt.Errorf("%w: invalid index", errBadRequest)
	}
	return h.readOne(w, req, func(s *sequence.Seq) (any, error) { return s.At(i) })
}

func (h *Handler) contains(w http.ResponseWriter, req *http.Request) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	v, err := queryValue(req, c.Kind())
	if err != nil {
		return err
	}
	ok, err := c.Contains(v)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, containsResp{Contains: ok})
	return nil
}

func (h *Handler) indexOf(w http.ResponseWriter, req *http.Request) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	v, err := queryValue(req, c.Kind())
	if err != nil {
		return err
	}
	var i int
	err = c.Do(func(s *sequence.Seq) (err error) {
		i, err = s.IndexOf(v)
		return err
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, indexResp{Index: i})
	return nil
}

func (h *Handler) bound(w http.ResponseWriter, req *http.Request, f func(s *sequence.Seq, v any) (*sequence.Seq, error)) error {
	c, err := h.lookup(req)
	if err != nil {
		return err
	}
	v, err := queryValue(req, c.Kind())
	if err != nil {
		return err
	}
	var sn *snapshot.Snapshot
	err = c.Do(func(s *sequence.Seq) error {
		res, err := f(s, v)
		if err != nil {
			return err
		}
		sn = snapshot.Take(res)
		return nil
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, sn)
	return nil
}

func (h *Handler) greaterThan(w http.ResponseWriter, req *http.Request) error {
	return h.bound(w, req, (*sequence.Seq).GreaterThan)
}

func (h *Handler) lessThan(w http.ResponseWriter, req *http.Request) error {
	return h.bound(w, req, (*sequence.Seq).LessThan)
}
