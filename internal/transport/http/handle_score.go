package http

import (
	"errors"
	"net/http"

	"trivia-gauntlet/internal/app"
	"trivia-gauntlet/internal/domain"
)

func handleSubmitScore(scores *app.ScoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub domain.ScoreSubmission
		if err := readJSON(r, &sub); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := scores.Submit(r.Context(), sub); err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	}
}

func handleLeaderboard(scores *app.ScoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		top, err := scores.Top(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if top == nil {
			top = []domain.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, top)
	}
}
