package httpapi

import (
	"net/http"

	"github.com/riskibarqy/chess-tournament/internal/usecase"
)

func (h *Handler) GenerateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateRound")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rd, matches, err := h.roundService.GenerateRound(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate round failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, roundToDTO(rd, matches))
}

func (h *Handler) ListRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRounds")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.roundService.ListRounds(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list rounds failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundDetailsToDTO(items))
}

func (h *Handler) GetCurrentRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentRound")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.CurrentRound(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "get current round failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item.Round, item.Matches))
}

func (h *Handler) EnterMatchResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnterMatchResult")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req matchResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.EnterResult(ctx, usecase.EnterResultInput{
		TournamentID: tournamentID,
		RoundID:      roundID,
		MatchID:      matchID,
		ScoreOne:     *req.ScoreOne,
		ScoreTwo:     *req.ScoreTwo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "enter match result failed",
			"tournament_id", tournamentID,
			"round_id", roundID,
			"match_id", matchID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item, 0))
}

func (h *Handler) CloseRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseRound")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// rejects a round that belongs to another tournament
	if _, err := h.roundService.GetRound(ctx, tournamentID, roundID); err != nil {
		writeError(ctx, w, err)
		return
	}
	if _, err := h.roundService.CloseRoundIfComplete(ctx, roundID); err != nil {
		h.logger.WarnContext(ctx, "close round failed", "tournament_id", tournamentID, "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	item, err := h.roundService.GetRound(ctx, tournamentID, roundID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, roundToDTO(item.Round, item.Matches))
}

func (h *Handler) GetRoundSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoundSheet")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	roundID, err := pathID(r, "roundID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Get(ctx, tournamentID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	detail, err := h.roundService.GetRound(ctx, tournamentID, roundID)
	if err != nil {
		h.logger.WarnContext(ctx, "get round sheet failed", "tournament_id", tournamentID, "round_id", roundID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeText(ctx, w, http.StatusOK, renderRoundSheet(item, detail.Round, detail.Matches))
}
