// Package http exposes the classification pipeline over a small gin API,
// mirroring the original service surface: /classify, /process-batch, /health.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"triage/internal/decision"
	"triage/internal/logger"
	"triage/internal/pkg/format"
	"triage/internal/ticket"
	"triage/internal/transport/web"
)

// Server wraps the gin engine and its lifecycle.
type Server struct {
	addr     string
	engine   *gin.Engine
	interp   *decision.Interpreter
	modelIDs []string
}

func NewServer(addr string, interp *decision.Interpreter, modelIDs []string) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		addr:     addr,
		engine:   gin.New(),
		interp:   interp,
		modelIDs: modelIDs,
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/classify", s.handleClassify)
	s.engine.POST("/process-batch", s.handleBatch)
	s.engine.GET("/health", s.handleHealth)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.engine}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("http shutdown: %v", err)
		}
	}()
	logger.Infof("http server listening on %s", s.addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleIndex(c *gin.Context) {
	page, err := web.Static.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "index page unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) handleClassify(c *gin.Context) {
	var t ticket.Ticket
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	t.EnsureID()

	d, err := s.interp.Classify(c.Request.Context(), t)
	if err != nil {
		if errors.Is(err, ticket.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleBatch(c *gin.Context) {
	tickets, err := s.batchInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for i := range tickets {
		tickets[i].EnsureID()
	}

	decisions := s.interp.ClassifyBatch(c.Request.Context(), tickets)
	stats := decision.Summarize(decisions)
	logger.Infof("batch complete: %d tickets, escalation rate %s, %d degraded",
		stats.Total, format.Percent(stats.EscalationRate), stats.Degraded)

	c.JSON(http.StatusOK, gin.H{"decisions": decisions, "stats": stats})
}

// batchInput decodes an optional ticket array; an empty body selects the
// built-in sample set.
func (s *Server) batchInput(c *gin.Context) ([]ticket.Ticket, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errors.New("unreadable request body")
	}
	if len(body) == 0 {
		return ticket.Samples(time.Now()), nil
	}
	var tickets []ticket.Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, errors.New("invalid request body: expected a JSON array of tickets")
	}
	if len(tickets) == 0 {
		return ticket.Samples(time.Now()), nil
	}
	return tickets, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "models": s.modelIDs})
}
