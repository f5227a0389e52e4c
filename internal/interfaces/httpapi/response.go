package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/chess-tournament/internal/domain/pairing"
	"github.com/riskibarqy/chess-tournament/internal/domain/round"
	"github.com/riskibarqy/chess-tournament/internal/domain/tournament"
	"github.com/riskibarqy/chess-tournament/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "chess-tournament"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeText(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	_, span := startSpan(ctx, "httpapi.writeText")
	defer span.End()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError && mapped.Reason == "internalError" {
		message = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, round.ErrInvalidScore),
		errors.Is(err, tournament.ErrInvalidPlayerCount),
		errors.Is(err, tournament.ErrInvalidRoundCount):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidInput",
			Status:     "INVALID_ARGUMENT",
		}
	case errors.Is(err, usecase.ErrNotFound),
		errors.Is(err, pairing.ErrPairingNotFound):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "notFound",
			Status:     "NOT_FOUND",
		}
	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, round.ErrRoundStillOpen),
		errors.Is(err, round.ErrTournamentComplete),
		errors.Is(err, round.ErrAlreadyClosed),
		errors.Is(err, round.ErrRoundClosed),
		errors.Is(err, round.ErrRoundIncomplete),
		errors.Is(err, pairing.ErrAlreadySeeded):
		return mappedError{
			HTTPStatus: http.StatusConflict,
			Reason:     conflictReason(err),
			Status:     "FAILED_PRECONDITION",
		}
	case errors.Is(err, pairing.ErrExhaustedSearch):
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "exhaustedSearch",
			Status:     "INTERNAL",
		}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}

func conflictReason(err error) string {
	switch {
	case errors.Is(err, round.ErrRoundStillOpen):
		return "roundStillOpen"
	case errors.Is(err, round.ErrTournamentComplete):
		return "tournamentComplete"
	case errors.Is(err, round.ErrAlreadyClosed):
		return "roundAlreadyClosed"
	case errors.Is(err, round.ErrRoundClosed):
		return "roundClosed"
	case errors.Is(err, round.ErrRoundIncomplete):
		return "roundIncomplete"
	default:
		return "conflict"
	}
}
