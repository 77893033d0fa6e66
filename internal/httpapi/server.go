// Package httpapi exposes the simulation manager over HTTP so
// dashboards and scripts can drive projects remotely.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blackrab369/Versaas-ai/internal/simulation"
	"github.com/blackrab369/Versaas-ai/internal/store"
)

// Server routes HTTP traffic to the simulation manager.
type Server struct {
	manager *simulation.Manager
	store   store.Store
	logger  *zap.Logger
}

// NewServer builds the API server.
func NewServer(manager *simulation.Manager, st store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{manager: manager, store: st, logger: logger}
}

// Router builds the gin handler tree.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")
	{
		api.GET("/projects", s.listProjects)
		api.POST("/projects/:name/start", s.startProject)
		api.POST("/projects/:name/stop", s.stopProject)
		api.GET("/projects/:name/status", s.projectStatus)
		api.POST("/projects/:name/message", s.postMessage)
		api.GET("/projects/:name/messages", s.projectMessages)
		api.POST("/projects/:name/save", s.saveProject)
		api.POST("/projects/:name/plan", s.projectPlan)
	}
	return r
}

// messageRequest is the body for POST .../message.
type messageRequest struct {
	Request string `json:"request" binding:"required"`
}

func (s *Server) listProjects(c *gin.Context) {
	live := s.manager.Projects()
	saved, err := s.store.Projects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	names := make([]string, 0, len(saved))
	for _, rec := range saved {
		names = append(names, rec.Name)
	}
	c.JSON(http.StatusOK, gin.H{"live": live, "saved": names})
}

func (s *Server) startProject(c *gin.Context) {
	name := c.Param("name")
	orc, err := s.manager.GetOrStart(c.Request.Context(), name)
	if err != nil {
		s.logger.Error("start failed", zap.String("project", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orc.Status())
}

func (s *Server) stopProject(c *gin.Context) {
	name := c.Param("name")
	if err := s.manager.Stop(c.Request.Context(), name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": name})
}

func (s *Server) projectStatus(c *gin.Context) {
	status, err := s.manager.Status(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) postMessage(c *gin.Context) {
	name := c.Param("name")
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must carry a non-empty request field"})
		return
	}
	if strings.TrimSpace(req.Request) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request cannot be blank"})
		return
	}

	orc, err := s.manager.GetOrStart(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := orc.ProcessRequest(c.Request.Context(), req.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.manager.SaveNow(c.Request.Context(), name); err != nil {
		s.logger.Warn("post-request save failed", zap.String("project", name), zap.Error(err))
	}
	c.JSON(http.StatusAccepted, orc.Status())
}

func (s *Server) projectMessages(c *gin.Context) {
	name := c.Param("name")
	afterSeq, _ := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	entries, err := s.store.MessagesSince(c.Request.Context(), name, afterSeq, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": name, "messages": entries, "count": len(entries)})
}

func (s *Server) projectPlan(c *gin.Context) {
	name := c.Param("name")
	orc, err := s.manager.GetOrStart(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	path, err := orc.BusinessPlan(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": name, "plan": path})
}

func (s *Server) saveProject(c *gin.Context) {
	name := c.Param("name")
	if err := s.manager.SaveNow(c.Request.Context(), name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": name})
}

// Serve runs the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
