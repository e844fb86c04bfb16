package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/email"
	"github.com/Supritha-Kamalanathan/Email-Summarizer-Groq/internal/metrics"
)

// ─── POST /summarize ─────────────────────────────────────────────────────────
//
// Accepts {"emails": [{subject, body, sender, date}, ...]}, runs each record
// through truncation and the cipher round-trip, and relays the survivors to
// the summarization provider. The call either fully succeeds with
// {"summary": "..."} or fully fails — no partial summaries.

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// handleSummarize is the request orchestrator: a linear state machine with
// one branch point (survivors empty or not). Per-record cipher failures are
// already swallowed inside the Processor; everything unexpected is caught
// here so no failure escapes unconverted.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("summarize: panic recovered",
				"panic", rec,
				"request_id", middleware.GetReqID(r.Context()),
			)
			metrics.IncrementSummarizeRequest("panic")
			respondErr(w, http.StatusInternalServerError, "Error processing request")
		}
	}()

	var batch email.Batch
	if !decode(w, r, &batch) {
		return
	}

	if len(batch.Emails) == 0 {
		metrics.IncrementSummarizeRequest("empty_batch")
		respondErr(w, http.StatusBadRequest, "No emails provided")
		return
	}

	// batchID correlates the dropped-record log lines from the Processor
	// with this request's outcome.
	batchID := uuid.New().String()

	results := s.processor.Process(batchID, batch.Emails)
	for _, res := range results {
		if res.Err != nil {
			metrics.IncrementEmailProcessed("dropped")
		} else {
			metrics.IncrementEmailProcessed("success")
		}
	}

	survivors := email.Survivors(results)
	if len(survivors) == 0 {
		metrics.IncrementSummarizeRequest("no_survivors")
		respondErr(w, http.StatusBadRequest, "No valid emails to process")
		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), survivors)
	if err != nil {
		s.logger.Error("summarize: provider call failed",
			"batch_id", batchID,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		metrics.IncrementSummarizeRequest("provider_error")
		respondErr(w, http.StatusInternalServerError, "Error processing emails")
		return
	}

	s.logger.Info("summarize: batch summarized",
		"batch_id", batchID,
		"received", len(batch.Emails),
		"survived", len(survivors),
		"request_id", middleware.GetReqID(r.Context()),
	)
	metrics.IncrementSummarizeRequest("ok")
	respond(w, http.StatusOK, summarizeResponse{Summary: summary})
}
