package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
)

// DefaultHistoryLimit is used when the history request has no limit.
const DefaultHistoryLimit = 20

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse is a verdict plus the history record id, if recorded.
type ClassifyResponse struct {
	model.Verdict
	ID string `json:"id,omitempty"`
}

// BatchRequest is the body of POST /api/v1/classify/batch.
type BatchRequest struct {
	Texts []string `json:"texts"`
}

// BatchResponse holds verdicts in request order.
type BatchResponse struct {
	Verdicts []*model.Verdict `json:"verdicts"`
	Spam     int              `json:"spam"`
	Ham      int              `json:"ham"`
}

// GroupsResponse describes the rule registry and policy.
type GroupsResponse struct {
	Groups            []model.PatternGroup `json:"groups"`
	AggregateGroup    string               `json:"aggregate_group"`
	AggregateMinScore int                  `json:"aggregate_min_score"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	Groups      int    `json:"groups"`
	ModelLoaded bool   `json:"model_loaded"`
	History     bool   `json:"history"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "ok",
		Groups:      s.registry.Len(),
		ModelLoaded: s.classifier.HasModel(),
		History:     s.store != nil,
	})
}

func (s *Server) handleClassify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		abortWithError(c, common.ErrInvalidInput)
		return
	}

	verdict, err := s.classifier.Classify(c.Request.Context(), text)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := ClassifyResponse{Verdict: *verdict}
	if s.store != nil {
		// History never changes the verdict, so a failed save is only logged.
		rec, err := s.store.SaveVerdict(c.Request.Context(), text, verdict)
		if err != nil {
			common.LogError(err, "failed to record verdict", common.Fields{"request_id": GetRequestID(c)})
		} else {
			resp.ID = rec.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleClassifyBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Texts) == 0 {
		writeError(c, http.StatusBadRequest, "texts must not be empty")
		return
	}
	if len(req.Texts) > s.config.MaxBatch {
		writeError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("at most %d texts per batch", s.config.MaxBatch))
		return
	}

	texts := make([]string, len(req.Texts))
	for i, t := range req.Texts {
		texts[i] = strings.TrimSpace(t)
		if texts[i] == "" {
			writeError(c, http.StatusBadRequest, fmt.Sprintf("text %d is empty", i+1))
			return
		}
	}

	verdicts, err := s.classifier.ClassifyBatch(c.Request.Context(), texts, s.config.BatchWorkers, nil)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := BatchResponse{Verdicts: verdicts}
	for _, v := range verdicts {
		if v.IsSpam() {
			resp.Spam++
		} else {
			resp.Ham++
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGroups(c *gin.Context) {
	c.JSON(http.StatusOK, GroupsResponse{
		Groups:            s.registry.Groups(),
		AggregateGroup:    s.policy.AggregateGroup,
		AggregateMinScore: s.policy.AggregateMinScore,
	})
}

func (s *Server) requireHistory(c *gin.Context) {
	if s.store == nil {
		writeError(c, http.StatusNotFound, "history is disabled")
		c.Abort()
		return
	}
	c.Next()
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	records, err := s.store.RecentVerdicts(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *Server) handleHistoryStats(c *gin.Context) {
	stats, err := s.store.VerdictStats(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleHistoryRecord(c *gin.Context) {
	rec, err := s.store.GetVerdict(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
