package server

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/renderer"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

func (s *Server) getCatalog(c *gin.Context) {
	instruments := s.opts.Catalog.Search(c.Query("q"))
	if instruments == nil {
		instruments = []advisor.Instrument{}
	}
	c.JSON(http.StatusOK, gin.H{"instruments": instruments})
}

func (s *Server) getMarket(c *gin.Context) {
	c.JSON(http.StatusOK, advisor.DefaultMarket())
}

func (s *Server) getProfile(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	profile, ok := sess.Profile()
	if !ok {
		fail(c, advisor.ErrNoRiskProfile)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "category": profile.Category()})
}

func (s *Server) postProfile(c *gin.Context) {
	var answers advisor.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	profile, err := sess.SubmitAnswers(c.Request.Context(), answers)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "category": profile.Category()})
}

func (s *Server) getRecommendations(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	recs, err := sess.Recommendations()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) getPortfolio(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	p := sess.Portfolio()
	c.JSON(http.StatusOK, gin.H{
		"portfolio":     p,
		"investedValue": p.InvestedValue(),
		"marketValue":   p.MarketValue(),
		"totalValue":    p.TotalValue(),
		"gainLoss":      p.GainLoss(),
	})
}

func (s *Server) getTransactions(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	txs := slices.Collect(sess.Portfolio().Transactions())
	if txs == nil {
		txs = []advisor.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

type tradeInput struct {
	Symbol   string           `json:"symbol" binding:"required"`
	Side     string           `json:"type" binding:"required"`
	Quantity advisor.Quantity `json:"quantity"`
	Price    *advisor.Money   `json:"price"` // defaults to the quoted price
}

func (s *Server) postTrade(c *gin.Context) {
	var input tradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := advisor.ParseSide(input.Side)
	if err != nil {
		fail(c, fmt.Errorf("%w: %w", advisor.ErrInvalidTrade, err))
		return
	}
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	inst, err := sess.Quote(input.Symbol)
	if err != nil {
		fail(c, err)
		return
	}
	trade := advisor.TradeOf(inst, side, input.Quantity)
	if input.Price != nil {
		trade.Price = *input.Price
	}
	tx, err := sess.ExecuteTrade(c.Request.Context(), trade)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": tx, "cash": sess.Portfolio().Cash()})
}

func (s *Server) postPrices(c *gin.Context) {
	var input map[string]advisor.Money
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	prices := make(map[advisor.Symbol]advisor.Money, len(input))
	for key, price := range input {
		sym, err := advisor.ParseSymbol(key)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		prices[sym] = price
	}
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	n, err := sess.UpdatePrices(c.Request.Context(), prices)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (s *Server) refreshPrices(c *gin.Context) {
	if s.opts.Feed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price feed configured"})
		return
	}
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	n, err := sess.Refresh(c.Request.Context(), s.opts.Feed)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func (s *Server) getReport(c *gin.Context) {
	sess, err := s.session(c)
	if err != nil {
		fail(c, err)
		return
	}
	var profile *advisor.RiskProfile
	if p, ok := sess.Profile(); ok {
		profile = &p
	}
	md := renderer.RenderReport(profile, sess.Portfolio())

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Portfolio report</title></head><body>\n")
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		fail(c, fmt.Errorf("render report: %w", err))
		return
	}
	buf.WriteString("</body></html>\n")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
