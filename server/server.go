// Package server exposes advisor sessions over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/etnz/advisor"
	"github.com/gin-gonic/gin"
)

// Options configures a Server.
type Options struct {
	Store   advisor.Store
	Catalog *advisor.Catalog
	Secret  []byte            // HMAC key of the bearer tokens
	Feed    advisor.PriceFeed // used by POST /prices/refresh, nil disables it

	SessionOptions []advisor.SessionOption
}

// Server serves one advisor session per authenticated user.
type Server struct {
	opts Options

	mu       sync.Mutex
	sessions map[string]*advisor.Session
}

func New(opts Options) *Server {
	return &Server{opts: opts, sessions: make(map[string]*advisor.Session)}
}

// session returns the session of the authenticated user, opening it on first
// use.
func (s *Server) session(c *gin.Context) (*advisor.Session, error) {
	user := c.GetString(userKey)
	s.mu.Lock()
	sess, ok := s.sessions[user]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	sess, err := advisor.Open(c.Request.Context(), s.opts.Store, user, s.opts.Catalog, s.opts.SessionOptions...)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// a concurrent request may have opened it first
	if cached, ok := s.sessions[user]; ok {
		return cached, nil
	}
	s.sessions[user] = sess
	return sess, nil
}

// Router returns the gin engine serving the API.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/catalog", s.getCatalog)
	router.GET("/market", s.getMarket)

	auth := router.Group("/")
	auth.Use(JWTAuth(s.opts.Secret))
	{
		auth.GET("/profile", s.getProfile)
		auth.POST("/profile", s.postProfile)
		auth.GET("/recommendations", s.getRecommendations)
		auth.GET("/portfolio", s.getPortfolio)
		auth.GET("/transactions", s.getTransactions)
		auth.POST("/trades", s.postTrade)
		auth.POST("/prices", s.postPrices)
		auth.POST("/prices/refresh", s.refreshPrices)
		auth.GET("/report", s.getReport)
	}
	return router
}

// Run serves the API on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			srv.Shutdown(context.Background())
		case <-done:
		}
	}()
	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// status maps an advisor error to an HTTP status.
func status(err error) int {
	switch {
	case errors.Is(err, advisor.ErrInsufficientFunds), errors.Is(err, advisor.ErrInsufficientHoldings):
		return http.StatusConflict
	case errors.Is(err, advisor.ErrInvalidTrade), errors.Is(err, advisor.ErrIncompleteQuestionnaire):
		return http.StatusBadRequest
	case errors.Is(err, advisor.ErrUnknownSymbol), errors.Is(err, advisor.ErrNoRiskProfile):
		return http.StatusNotFound
	case advisor.IsRetryable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	code := status(err)
	if code >= 500 {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
