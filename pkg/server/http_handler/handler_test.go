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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmkol/seqlist/pkg/seq_store"
	"github.com/pmkol/seqlist/pkg/sequence"
)

type testServer struct {
	t     *testing.T
	h     *Handler
	store *seq_store.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s, err := seq_store.NewStore(seq_store.Opts{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	h, err := NewHandler(HandlerOpts{Store: s, MetricsReg: prometheus.NewRegistry()})
	require.NoError(t, err)
	return &testServer{t: t, h: h, store: s}
}

func (ts *testServer) do(method, target, body string) (int, map[string]any) {
	ts.t.Helper()
	var req *http.Request
	if len(body) > 0 {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func TestHandler_Lifecycle(t *testing.T) {
	ts := newTestServer(t)

	code, resp := ts.do(http.MethodPut, "/seqs/nums", `{"type":"int","ascending":true,"count":3,"values":[5,1,3]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), resp["count"])

	code, resp = ts.do(http.MethodPost, "/seqs/nums/add", `{"values":[2,9223372036854775807]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(5), resp["count"])

	c, ok := ts.store.Get("nums")
	require.True(t, ok)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(5), int64(9223372036854775807)}, c.Snapshot().Values)

	code, resp = ts.do(http.MethodGet, "/seqs/nums/contains?v=3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["contains"])

	code, resp = ts.do(http.MethodGet, "/seqs/nums/index_of?v=5", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(3), resp["index"])

	code, resp = ts.do(http.MethodGet, "/seqs/nums/at/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), resp["value"])

	code, resp = ts.do(http.MethodGet, "/seqs/nums/greater_than?v=3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), resp["count"])

	code, resp = ts.do(http.MethodGet, "/seqs/nums/less_than?v=3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{float64(1), float64(2)}, resp["values"])

	code, resp = ts.do(http.MethodPost, "/seqs/nums/remove", `{"values":[2,42]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), resp["removed"])

	code, resp = ts.do(http.MethodPost, "/seqs/nums/reverse", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, resp["ascending"])

	code, _ = ts.do(http.MethodPost, "/seqs/nums/save", "")
	require.Equal(t, http.StatusNoContent, code)
	code, _ = ts.do(http.MethodDelete, "/seqs/nums", "")
	require.Equal(t, http.StatusNoContent, code)
	code, _ = ts.do(http.MethodGet, "/seqs/nums", "")
	require.Equal(t, http.StatusNotFound, code)

	code, resp = ts.do(http.MethodPost, "/seqs/nums/load", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(4), resp["count"])

	code, resp = ts.do(http.MethodGet, "/seqs", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"nums"}, resp["names"])

	assert.Equal(t, float64(1), testutil.ToFloat64(ts.h.requests.WithLabelValues("add", "ok")))
}

func TestHandler_Merge(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Put("a", sequence.FromTexts([]string{"a", "c"}, sequence.Ascending))
	ts.store.Put("b", sequence.FromTexts([]string{"b", "b"}, sequence.Ascending))
	ts.store.Put("d", sequence.FromTexts([]string{"z"}, sequence.Descending))

	code, resp := ts.do(http.MethodPost, "/seqs/a/merge?with=b", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(4), resp["count"])

	code, resp = ts.do(http.MethodPost, "/seqs/a/unique", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"a", "b", "c"}, resp["values"])

	code, _ = ts.do(http.MethodPost, "/seqs/a/merge?with=d", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(http.MethodPost, "/seqs/a/merge", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = ts.do(http.MethodPost, "/seqs/a/merge?with=nope", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = ts.do(http.MethodPost, "/seqs/a/remove_every", `{"values":["b"]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), resp["removed"])
}

func TestHandler_Errors(t *testing.T) {
	ts := newTestServer(t)
	ts.store.Put("n", sequence.ForInts(sequence.Ascending))

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing sequence", http.MethodGet, "/seqs/x", "", http.StatusNotFound},
		{"reverse missing sequence", http.MethodPost, "/seqs/x/reverse", "", http.StatusNotFound},
		{"wrong kind in body", http.MethodPost, "/seqs/n/add", `{"values":["a"]}`, http.StatusBadRequest},
		{"fraction in body", http.MethodPost, "/seqs/n/add", `{"values":[1.5]}`, http.StatusBadRequest},
		{"bad body", http.MethodPost, "/seqs/n/add", `{"values":`, http.StatusBadRequest},
		{"wrong kind in query", http.MethodGet, "/seqs/n/contains?v=abc", "", http.StatusBadRequest},
		{"missing query", http.MethodGet, "/seqs/n/contains", "", http.StatusBadRequest},
		{"first of empty", http.MethodGet, "/seqs/n/first", "", http.StatusConflict},
		{"index out of range", http.MethodGet, "/seqs/n/at/0", "", http.StatusBadRequest},
		{"bad index", http.MethodGet, "/seqs/n/at/x", "", http.StatusBadRequest},
		{"count mismatch", http.MethodPut, "/seqs/m", `{"type":"int","ascending":true,"count":2,"values":[1]}`, http.StatusBadRequest},
		{"load missing", http.MethodPost, "/seqs/n/load", "", http.StatusNotFound},
		{"method not allowed", http.MethodPatch, "/seqs/n", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := ts.do(tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, code)
			if code != http.StatusMethodNotAllowed {
				assert.NotEmpty(t, resp["error"])
			}
		})
	}

	c, _ := ts.store.Get("n")
	assert.Equal(t, 0, c.Len())
}

func TestHandler_Health(t *testing.T) {
	ts := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestHandlerOpts(t *testing.T) {
	_, err := NewHandler(HandlerOpts{})
	assert.Error(t, err)
}
