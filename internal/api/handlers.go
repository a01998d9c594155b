package api

import (
	"net/http"
	"strconv"

	"wahlimport/internal/errors"
	"wahlimport/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultImportsLimit = 20
	maxImportsLimit     = 100
)

func (s *Server) handleListResults(c *gin.Context) {
	filter := models.ResultFilter{
		Wahl:     c.Query("wahl"),
		AGS:      c.Query("ags"),
		WBZNr:    c.Query("wbz_nr"),
		Stimmart: c.Query("stimmart"),
		Partei:   c.Query("partei"),
	}

	var err error
	if filter.WKNr, err = intQuery(c, "wk_nr", 0); err != nil {
		s.respondError(c, err)
		return
	}
	if filter.Limit, err = intQuery(c, "limit", s.cfg.PageSize); err != nil {
		s.respondError(c, err)
		return
	}
	if filter.Offset, err = intQuery(c, "offset", 0); err != nil {
		s.respondError(c, err)
		return
	}
	if filter.Limit <= 0 || filter.Offset < 0 {
		s.respondError(c, errors.InvalidInput("limit must be positive and offset not negative"))
		return
	}
	filter.Limit = min(filter.Limit, s.cfg.MaxPageSize)

	total, err := s.results.Count(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	results, err := s.results.List(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   total,
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	summary, err := s.summaries.Summarize(c.Request.Context(), c.Param("wahl"), c.Query("stimmart"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleListImports(c *gin.Context) {
	limit, err := intQuery(c, "limit", defaultImportsLimit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if limit < 1 || limit > maxImportsLimit {
		limit = defaultImportsLimit
	}

	runs, err := s.runs.List(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"imports": runs,
		"count":   len(runs),
	})
}

func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidInput(key + " must be an integer")
	}
	return n, nil
}
