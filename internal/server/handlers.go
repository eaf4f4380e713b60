package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

// handleAnalyze runs the full pipeline synchronously and caches the result
// under a fresh run ID.
func (s *Server) handleAnalyze(c *gin.Context) {
	result, err := s.analyzer.Run(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err,
			"analysis failed, please retry later")
		return
	}

	s.store.Put(result)
	if err := s.recorder.RecordRun(result); err != nil {
		s.log.Error().Err(err).Str("run_id", result.RunID).Msg("record run failed")
	}

	respondOK(c, result)
}

func (s *Server) handleLatest(c *gin.Context) {
	result, ok := s.store.Latest()
	if !ok {
		respondNotFound(c, "no analysis has completed yet")
		return
	}
	respondOK(c, result)
}

func (s *Server) handleRunByID(c *gin.Context) {
	result, ok := s.store.Get(c.Param("id"))
	if !ok {
		respondNotFound(c, "unknown or evicted run ID")
		return
	}
	respondOK(c, result)
}

// handleMacro serves a fresh macro snapshot without running the full
// pipeline.
func (s *Server) handleMacro(c *gin.Context) {
	respondOK(c, s.macro.Analyze(c.Request.Context()))
}
