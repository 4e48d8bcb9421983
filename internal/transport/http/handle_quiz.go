package http

import (
	"io"
	"log/slog"
	"net/http"

	"trivia-gauntlet/internal/generate"
)

type generateQuizRequest struct {
	Topic string `json:"topic"`
}

type generateQuizResponse struct {
	QuizData string `json:"quiz_data"`
}

// handleGenerateQuiz builds a deck for the requested topic. An empty body
// or missing topic means general trivia. The generator's text is returned
// verbatim; clients strip any code fences themselves.
func handleGenerateQuiz(logger *slog.Logger, generator generate.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateQuizRequest
		if err := readJSON(r, &req); err != nil && err != io.EOF {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		quizData, err := generator.GenerateDeck(r.Context(), req.Topic)
		if err != nil {
			logger.Error("deck generation failed", "topic", req.Topic, "err", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, generateQuizResponse{QuizData: quizData})
	}
}
