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
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pmkol/seqlist/pkg/seq_store"
	"github.com/pmkol/seqlist/pkg/sequence"
	"github.com/pmkol/seqlist/pkg/snapshot"
)

var nopLogger = zap.NewNop()

const defaultMaxBodySize = 4 << 20

var errBadRequest = errors.New("bad request")

type HandlerOpts struct {
	// Store holds the served sequences. Required.
	Store *seq_store.Store

	// HealthPath defaults to "/health".
	HealthPath string

	// MaxBodySize limits request bodies. Default is 4MiB.
	MaxBodySize int64

	// MetricsReg registers the per-operation request counter. Optional.
	MetricsReg prometheus.Registerer

	Logger *zap.Logger
}

func (opts *HandlerOpts) Init() error {
	if opts.Store == nil {
		return errors.New("nil store")
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	if opts.HealthPath == "" {
		opts.HealthPath = "/health"
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}
	return nil
}

// Handler serves the sequence API.
type Handler struct {
	opts     HandlerOpts
	router   *mux.Router
	requests *prometheus.CounterVec
}

func NewHandler(opts HandlerOpts) (*Handler, error) {
	if err := opts.Init(); err != nil {
		return nil, err
	}
	h := &Handler{
		opts:   opts,
		router: mux.NewRouter(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "The total number of api requests by operation and result",
		}, []string{"op", "result"}),
	}
	if reg := opts.MetricsReg; reg != nil {
		if err := reg.Register(h.requests); err != nil {
			return nil, fmt.Errorf("failed to register metrics, %w", err)
		}
	}
	h.routes()
	return h, nil
}

func (h *Handler) routes() {
	r := h.router
	r.HandleFunc(h.opts.HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.HandleFunc("/seqs", h.handle("list", h.list)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}", h.handle("get", h.get)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}", h.handle("put", h.put)).Methods(http.MethodPut)
	r.HandleFunc("/seqs/{name}", h.handle("delete", h.delete)).Methods(http.MethodDelete)

	r.HandleFunc("/seqs/{name}/add", h.handle("add", h.add)).Methods(http.MethodPost)
	r.HandleFunc("/seqs/{name}/remove", h.handle("remove", h.remove)).Methods(http.MethodPost)
	r.HandleFunc("/seqs/{name}/remove_every", h.handle("remove_every", h.removeEvery)).Methods(http.MethodPost)
	r.HandleFunc("/seqs/{name}/reverse", h.handle("reverse", h.reverse)).Methods(http.MethodPost)
	r.HandleFunc("/seqs/{name}/unique", h.handle("unique", h.unique)).Methods(http.MethodPost)
	r.HandleFunc("/seqs/{name}/merge", h.handle("merge", h.merge)).Methods(http.MethodPost)
	r.HandleFunc("/seqs/{name}/save", h.handle("save", h.save)).Methods(http.MethodPost)
	r.HandleFunc("/seqs/{name}/load", h.handle("load", h.load)).Methods(http.MethodPost)

	r.HandleFunc("/seqs/{name}/first", h.handle("first", h.first)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}/last", h.handle("last", h.last)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}/at/{i}", h.handle("at", h.at)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}/contains", h.handle("contains", h.contains)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}/index_of", h.handle("index_of", h.indexOf)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}/greater_than", h.handle("greater_than", h.greaterThan)).Methods(http.MethodGet)
	r.HandleFunc("/seqs/{name}/less_than", h.handle("less_than", h.lessThan)).Methods(http.MethodGet)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.router.ServeHTTP(w, req)
}

type apiFunc func(w http.ResponseWriter, req *http.Request) error

func (h *Handler) handle(op string, f apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := f(w, req); err != nil {
			h.requests.WithLabelValues(op, "error").Inc()
			code := statusOf(err)
			if code >= http.StatusInternalServerError {
				h.warnErr(req, err)
			}
			writeJSON(w, code, errorResp{Error: err.Error()})
			return
		}
		h.requests.WithLabelValues(op, "ok").Inc()
	}
}

func (h *Handler) warnErr(req *http.Request, err error) {
	h.opts.Logger.Warn(err.Error(), zap.String("from", req.RemoteAddr), zap.String("method", req.Method), zap.String("url", req.RequestURI))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, seq_store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sequence.ErrEmptyCollection):
		return http.StatusConflict
	case errors.Is(err, sequence.ErrTypeMismatch),
		errors.Is(err, sequence.ErrDirectionMismatch),
		errors.Is(err, sequence.ErrEmptySource),
		errors.Is(err, sequence.ErrIndexOutOfRange),
		errors.Is(err, sequence.ErrOverflow),
		errors.Is(err, snapshot.ErrCountMismatch),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, seq_store.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

type errorResp struct {
	Error string `json:"error"`
}

type valuesReq struct {
	Values []any `json:"values"`
}

type valueResp struct {
	Value any `json:"value"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

func (h *Handler) readBody(w http.ResponseWriter, req *http.Request) ([]byte, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, req.Body, h.opts.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return b, nil
}

// readValues decodes {"values":[...]}. Integral numbers become int64,
// other numbers become float64 and are rejected by the sequence.
func (h *Handler) readValues(w http.ResponseWriter, req *http.Request) ([]any, error) {
	b, err := h.readBody(w, req)
	if err != nil {
		return nil, err
	}
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	var body valuesReq
	if err := d.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	for i, v := range body.Values {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if x, err := n.Int64(); err == nil {
			body.Values[i] = x
		} else if f, err := n.Float64(); err == nil {
			body.Values[i] = f
		}
	}
	return body.Values, nil
}

// queryValue reads the v query parameter as a value of kind k.
func queryValue(req *http.Request, k sequence.Kind) (any, error) {
	q := req.URL.Query()
	if !q.Has("v") {
		return nil, fmt.Errorf("%w: missing v", errBadRequest)
	}
	s := q.Get("v")
	if k == sequence.KindText {
		return s, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not an int", sequence.ErrTypeMismatch, s)
	}
	return n, nil
}

func (h *Handler) lookup(req *http.Request) (*seq_store.ConcurrentSeq, error) {
	name := mux.Vars(req)["name"]
	c, ok := h.opts.Store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", seq_store.ErrNotFound, name)
	}
	return c, nil
}
