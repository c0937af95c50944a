package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rezonia/fiscaldoc/internal/engine"
	"github.com/rezonia/fiscaldoc/internal/logger"
	"github.com/rezonia/fiscaldoc/internal/model"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server exposes the document engine over HTTP
type Server struct {
	config *Config
	router *gin.Engine
	engine *engine.Engine
}

// NewServer creates a new API server around a configured engine
func NewServer(config *Config, eng *engine.Engine) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())

	s := &Server{
		config: config,
		router: router,
		engine: eng,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/fiscalcode/validate", s.handleValidateFiscalCode)

		docs := v1.Group("/documents")
		{
			docs.POST("/inps", s.handleINPS)
			docs.POST("/fatturapa", s.handleFatturaPA)
			docs.POST("/easyfatt", s.handleEasyfatt)
		}
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleValidateFiscalCode(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	decoded, ok := s.engine.CheckFiscalCode(req.Code)
	resp := ValidateResponse{Code: req.Code, Valid: ok}
	if ok {
		resp.Decoded = &DecodedInfo{
			Sex:       string(decoded.Sex),
			BirthDate: decoded.BirthDate.Format(dateLayout),
			Year:      decoded.Year,
			Month:     int(decoded.Month),
			Day:       decoded.Day,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleINPS(c *gin.Context) {
	var req INPSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	worker, err := req.Worker.toModel()
	if err != nil {
		s.writeError(c, err)
		return
	}
	event, err := req.Event.toModel()
	if err != nil {
		s.writeError(c, err)
		return
	}

	result, err := s.engine.GenerateINPS(worker, event)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeDocument(c, result)
}

func (s *Server) handleFatturaPA(c *gin.Context) {
	var req InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	inv, err := req.toModel()
	if err != nil {
		s.writeError(c, err)
		return
	}

	result, err := s.engine.GenerateFatturaPA(inv)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeDocument(c, result)
}

func (s *Server) handleEasyfatt(c *gin.Context) {
	var req EasyfattRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	invoices := make([]*model.Invoice, 0, len(req.Invoices))
	for _, in := range req.Invoices {
		inv, err := in.toModel()
		if err != nil {
			s.writeError(c, err)
			return
		}
		invoices = append(invoices, inv)
	}

	result, err := s.engine.GenerateEasyfatt(invoices)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeDocument(c, result)
}

func (s *Server) writeDocument(c *gin.Context, result *engine.Result) {
	log := logger.WithRequestID(c.GetString("request_id"))
	log.Info().
		Str("format", string(result.Format)).
		Str("filename", result.Filename).
		Int("bytes", len(result.Document)).
		Msg("document generated")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Document)
}

// writeError maps the engine's error taxonomy onto HTTP statuses: malformed
// or incomplete records are the client's problem, everything else is ours.
func (s *Server) writeError(c *gin.Context, err error) {
	var missing *model.MissingFieldError
	if errors.As(err, &missing) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: missing.Error(), Field: missing.Field})
		return
	}
	var invalid *model.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: invalid.Error(), Field: invalid.Field})
		return
	}

	log := logger.WithRequestID(c.GetString("request_id"))
	log.Error().Err(err).Msg("document generation failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
