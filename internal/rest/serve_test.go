// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/config"
	"github.com/mlnoga/filmr/internal/imageio"
	"github.com/mlnoga/filmr/internal/simconfig"
	"github.com/mlnoga/filmr/internal/worker"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Server) {
	gin.SetMode(gin.TestMode)
	s, err := NewServer(config.Default())
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/ping", s.getPing)
	api.POST("/job", s.postJob)
	api.GET("/job/:id", s.getJob)
	api.GET("/job/:id/result", s.getJobResult)
	api.GET("/presets", s.getPresets)
	api.GET("/presets/:name", s.getPreset)
	return r, s
}

func TestGetPing(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestGetPresetsListsBuiltins(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kodak Portra 400")
}

func TestGetPresetUnknownNameReturns404(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets/Nonexistent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostJobAcceptsValidRequestAndReturnsJobID(t *testing.T) {
	r, _ := newTestRouter(t)

	img := buffer.New(2, 2)
	var imgBuf bytes.Buffer
	require.NoError(t, imageio.Encode(&imgBuf, img, imageio.PNG, 0))

	body, err := json.Marshal(map[string]any{
		"imageBytes": imgBuf.Bytes(),
		"format":     "png",
		"stock":      "Kodak Portra 400",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "jobId")
}

func TestGetJobResultUnknownJobReturns404(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/job/does-not-exist/result", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetJobResultReturnsEncodedImageAfterCompletion(t *testing.T) {
	r, s := newTestRouter(t)
	id := s.manager.Submit(buffer.New(2, 2), s.stocks["Kodak Portra 400"], simconfig.Default())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := s.manager.GetJob(id)
		require.True(t, ok)
		if job.State == worker.StateCompleted || job.State == worker.StateFailed {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job/"+id+"/result?format=png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestPostJobUnknownStockReturns400(t *testing.T) {
	r, _ := newTestRouter(t)
	img := buffer.New(2, 2)
	var imgBuf bytes.Buffer
	require.NoError(t, imageio.Encode(&imgBuf, img, imageio.PNG, 0))

	body, _ := json.Marshal(map[string]any{
		"imageBytes": imgBuf.Bytes(),
		"format":     "png",
		"stock":      "Nonexistent Stock",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
