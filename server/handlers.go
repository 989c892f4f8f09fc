package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/existflow/digicafe/internal/chat"
	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/model"
	"github.com/existflow/digicafe/internal/quiz"
)

// ChatRequest is the body of POST /api/v1/chat
type ChatRequest struct {
	History []model.Message `json:"history"`
	Message string          `json:"message"`
}

// ChatResponse carries the barista's turn. Fallback is set when generation
// failed and Reply holds the canned apology.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

// QuizRequest is the body of POST /api/v1/quiz
type QuizRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid_request", "invalid request body")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return badRequest("invalid_message", "message is required")
	}
	for _, m := range req.History {
		if !m.Speaker.Valid() {
			return badRequest("invalid_history", "history speaker must be user or assistant")
		}
	}

	reply, err := s.gen.Chat(c.Request().Context(), req.History, message)
	switch {
	case err != nil:
		logger.Warn("Chat generation failed, using fallback", logger.F("error", err))
		return c.JSON(http.StatusOK, ChatResponse{Reply: chat.Fallback, Fallback: true})
	case strings.TrimSpace(reply) == "":
		return c.JSON(http.StatusOK, ChatResponse{Reply: chat.EmptyReply})
	}
	return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

func (s *Server) handleQuiz(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid_request", "invalid request body")
	}

	session, err := quiz.Brew(c.Request().Context(), s.gen, req.Topic)
	switch {
	case errors.Is(err, quiz.ErrEmptyTopic):
		return badRequest("invalid_topic", "topic is required")
	case errors.Is(err, genai.ErrMalformedResponse):
		logger.Warn("Quiz response malformed", logger.F("topic", req.Topic), logger.F("error", err))
		return newAPIError(http.StatusBadGateway, "malformed_response", quiz.ErrorNotice)
	case err != nil:
		logger.Warn("Quiz generation failed", logger.F("topic", req.Topic), logger.F("error", err))
		return newAPIError(http.StatusBadGateway, "generation_failed", quiz.ErrorNotice)
	}

	return c.JSON(http.StatusOK, session.Quiz())
}

func (s *Server) handleSounds(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Sounds)
}
