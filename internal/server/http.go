package server

import (
	"time"

	"resumescan/internal/analysis"
	"resumescan/internal/autofix"
	"resumescan/internal/builder"
	"resumescan/internal/config"
	"resumescan/internal/document"
	resumescanErrors "resumescan/internal/errors"
	"resumescan/internal/parser"
	"resumescan/internal/scoring"
	"resumescan/internal/types"
)

// CreateResumeRequest represents the JSON body for creating a blank resume
type CreateResumeRequest struct {
	Title string `json:"title"`
}

// ApplyFixRequest represents the body for applying an auto-fix to a stored resume
type ApplyFixRequest struct {
	Fix types.AutoFix `json:"fix"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertificateManager *CertificateManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Scan pipeline services
	Reader      *document.Reader
	Parser      *parser.Service
	Analyzer    *analysis.Analyzer
	Engine      *scoring.Engine
	Recommender *autofix.Recommender

	// Resume storage, initialized in Start
	Store *builder.Store

	// Logger
	Logger *resumescanErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
// (Refactored to reduce long parameter list in NewServer)
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *resumescanErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Reader:         document.NewReader(cfg.MaxRequestSize, logger),
		Parser:         parser.NewService(logger),
		Analyzer:       analysis.NewAnalyzer(logger),
		Engine:         scoring.NewEngine(logger),
		Recommender:    autofix.NewRecommender(logger),
		Logger:         logger,
	}
}
