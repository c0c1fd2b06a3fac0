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

// Package rest serves the HTTP API: submit a process_image job, poll or
// stream its progress, and browse the film stock preset library. Sandbox
// setup (MakeSandbox) stays as the teacher wrote it, in
// sandbox_unix.go/sandbox_windows.go.
package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mlnoga/filmr/internal/config"
	"github.com/mlnoga/filmr/internal/filmstock"
	"github.com/mlnoga/filmr/internal/imageio"
	"github.com/mlnoga/filmr/internal/simconfig"
	"github.com/mlnoga/filmr/internal/worker"
)

// Server holds the shared state the HTTP handlers close over: the job
// manager and the resolved film stock library.
type Server struct {
	manager *worker.Manager
	stocks  map[string]filmstock.Stock
}

// NewServer builds a Server from the loaded configuration.
func NewServer(cfg config.Config) (*Server, error) {
	stocks, err := config.LoadStockLibrary(cfg)
	if err != nil {
		return nil, err
	}
	maxConcurrent := cfg.MaxConcurrentJobs
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Server{
		manager: worker.NewManager(maxConcurrent),
		stocks:  stocks,
	}, nil
}

// Serve registers routes and listens on the given port, matching the
// teacher's "/api/v1/..." grouping.
func (s *Server) Serve(port int) error {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET("/ping", s.getPing)
			v1.POST("/job", s.postJob)
			v1.GET("/job/:id", s.getJob)
			v1.GET("/job/:id/stream", s.getJobStream)
			v1.GET("/job/:id/result", s.getJobResult)
			v1.GET("/presets", s.getPresets)
			v1.GET("/presets/:name", s.getPreset)
		}
	}
	return r.Run(fmt.Sprintf(":%d", port))
}

func (s *Server) getPing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// jobRequest is the POST /api/v1/job body: a raw PNG/JPEG/BMP image plus
// the film stock name and simulation config to render it with.
type jobRequest struct {
	ImageBytes []byte           `json:"imageBytes" binding:"required"`
	Format     string           `json:"format" binding:"required"`
	Stock      string           `json:"stock" binding:"required"`
	Config     simconfig.Config `json:"config"`
}

func (s *Server) postJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock, ok := s.stocks[req.Stock]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown film stock %q", req.Stock)})
		return
	}

	img, err := imageio.Decode(bytes.NewReader(req.ImageBytes), imageio.Format(req.Format))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := s.manager.Submit(img, stock, req.Config)
	c.JSON(http.StatusAccepted, gin.H{"jobId": id})
}

func (s *Server) getJob(c *gin.Context) {
	job, ok := s.manager.GetJob(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    job.ID,
		"state": job.State,
		"stage": job.Stage,
	})
}

// getJobResult streams the finished render's bytes once the job has
// completed. The output format defaults to PNG and can be overridden with
// the ?format= query parameter (png, jpeg, bmp); JPEG quality defaults to
// imageio's own default when ?quality= is absent or invalid.
func (s *Server) getJobResult(c *gin.Context) {
	job, ok := s.manager.GetJob(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	switch job.State {
	case worker.StateFailed:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": job.Error})
		return
	case worker.StateCompleted:
		// fall through
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "job not finished", "state": job.State})
		return
	}

	format := imageio.Format(c.DefaultQuery("format", string(imageio.PNG)))
	quality, _ := strconv.Atoi(c.Query("quality"))

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, job.Image, format, quality); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := "image/png"
	switch format {
	case imageio.JPEG:
		contentType = "image/jpeg"
	case imageio.BMP:
		contentType = "image/bmp"
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// getJobStream serves progress events as server-sent events, reusing the
// worker manager's subscriber channel so each client gets its own feed.
func (s *Server) getJobStream(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.manager.GetJob(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch := s.manager.Subscribe(id)
	defer s.manager.Unsubscribe(id, ch)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, _ := json.Marshal(event)
			fmt.Fprintf(c.Writer, "data: %s\n\n", data)
			flusher.Flush()
			if event.State == worker.StateCompleted || event.State == worker.StateFailed {
				return
			}
		}
	}
}

func (s *Server) getPresets(c *gin.Context) {
	names := make([]string, 0, len(s.stocks))
	for name := range s.stocks {
		names = append(names, name)
	}
	c.JSON(http.StatusOK, gin.H{"presets": names})
}

func (s *Server) getPreset(c *gin.Context) {
	stock, ok := s.stocks[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown preset"})
		return
	}
	c.JSON(http.StatusOK, stock)
}
