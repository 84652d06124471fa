package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/correlation"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/pipeline"
)

// StatusClientClosedRequest is the nginx convention for a request the caller
// abandoned before it completed.
const StatusClientClosedRequest = 499

const (
	msgInvalidRequest = "invalid request"
	msgMalformedBody  = "malformed request body"
	msgCanceled       = "request canceled"
	msgTimeout        = "request timed out"
	msgInternal       = "internal server error"
)

type ErrorResponse struct {
	Error         string             `json:"error"`
	Failures      []pipeline.Failure `json:"failures,omitempty"`
	CorrelationID string             `json:"correlationId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, failures []pipeline.Failure) {
	writeJSON(w, status, ErrorResponse{
		Error:         msg,
		Failures:      failures,
		CorrelationID: correlation.ID(r.Context()),
	})
}

// writeOutcome translates a pipeline outcome into a status code and body.
func writeOutcome[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, op string, out pipeline.Outcome[T]) {
	switch out.Kind {
	case pipeline.KindSuccess:
		writeJSON(w, http.StatusOK, out.Value)
	case pipeline.KindInvalid:
		writeError(w, r, http.StatusBadRequest, msgInvalidRequest, out.Failures)
	case pipeline.KindNotFound:
		writeError(w, r, http.StatusNotFound, out.Message, nil)
	case pipeline.KindCanceled:
		if errors.Is(out.Err, context.DeadlineExceeded) {
			writeError(w, r, http.StatusGatewayTimeout, msgTimeout, nil)
			return
		}
		writeError(w, r, StatusClientClosedRequest, msgCanceled, nil)
	default:
		logger.ErrorContext(r.Context(), "operation failed",
			"op", op,
			"error", out.Err,
			"correlationId", correlation.ID(r.Context()),
		)
		writeError(w, r, http.StatusInternalServerError, msgInternal, nil)
	}
}
