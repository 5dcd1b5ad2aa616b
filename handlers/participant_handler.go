package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/Dosada05/ohm-scoreboard/middleware"
	"github.com/Dosada05/ohm-scoreboard/services"
	"github.com/go-chi/chi/v5"
)

const gamePath = "/game"

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(ps *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: ps}
}

// Join godoc
// @Summary Зарегистрировать участника
// @Tags participants
// @Description Создаёт (или перезаписывает) запись участника с нулевым счётом и перенаправляет в игру.
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body services.RegisterInput true "Имя и email"
// @Success 302 "Redirect to /game?name=...&email=..."
// @Failure 400 {object} map[string]interface{} "Name and email required"
// @Failure 500 {object} map[string]interface{} "Registration failed"
// @Router /join [post]
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			badRequestResponse(w, r, err)
			return
		}
		input.Name = r.PostForm.Get("name")
		input.Email = r.PostForm.Get("email")
	} else if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.participantService.Register(r.Context(), input); err != nil {
		if errors.Is(err, services.ErrNameAndEmailRequired) {
			errorResponse(w, r, http.StatusBadRequest, "Name and email required")
			return
		}
		slog.ErrorContext(r.Context(), "registration failed", slog.Any("error", err))
		errorResponse(w, r, http.StatusInternalServerError, "Registration failed")
		return
	}

	target := gamePath + "?name=" + url.QueryEscape(strings.TrimSpace(input.Name)) +
		"&email=" + url.QueryEscape(strings.TrimSpace(input.Email))
	http.Redirect(w, r, target, http.StatusFound)
}

// SubmitScore godoc
// @Summary Отправить результат
// @Tags participants
// @Description Создаёт или обновляет запись участника: последний результат перезаписывает предыдущий.
// @Accept json
// @Produce json
// @Param body body services.SubmitScoreInput true "name, email, score (число или строка с числом)"
// @Success 200 {object} map[string]interface{} "Score submitted successfully"
// @Failure 400 {object} map[string]interface{} "Некорректный счёт или email"
// @Failure 500 {object} map[string]interface{} "Ошибка хранилища"
// @Router /submit-score [post]
func (h *ParticipantHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.participantService.SubmitScore(r.Context(), input); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidScore) || errors.Is(err, services.ErrEmailRequired) {
			status = http.StatusBadRequest
		} else {
			slog.ErrorContext(r.Context(), "score submission failed", slog.Any("error", err))
		}
		errorResponse(w, r, status, "Score submission failed: "+submissionFailureDetail(err))
		return
	}

	resp := jsonResponse{"success": true, "message": "Score submitted successfully"}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetParticipant godoc
// @Summary Получить запись участника
// @Tags participants
// @Produce json
// @Param participantID path string true "Participant ID (локальная часть email)"
// @Success 200 {object} map[string]interface{} "Участник"
// @Failure 404 {object} map[string]interface{} "Участник не найден"
// @Router /participants/{participantID} [get]
func (h *ParticipantHandler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "participantID")

	participant, err := h.participantService.GetParticipant(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteParticipant godoc
// @Summary Удалить участника
// @Tags admin
// @Param participantID path string true "Participant ID"
// @Success 204 "Участник удалён"
// @Failure 401 {object} map[string]interface{} "Неавторизован"
// @Failure 403 {object} map[string]interface{} "Нет прав"
// @Failure 404 {object} map[string]interface{} "Участник не найден"
// @Security BearerAuth
// @Router /admin/participants/{participantID} [delete]
func (h *ParticipantHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "participantID")

	if err := h.participantService.DeleteParticipant(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "admin removed participant",
		slog.String("participant_id", id),
		slog.String("admin", middleware.GetSubjectFromContext(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

// submissionFailureDetail drops the service's own "score submission failed"
// prefix so the response does not repeat it.
func submissionFailureDetail(err error) string {
	return strings.TrimPrefix(err.Error(), services.ErrSubmissionFailed.Error()+": ")
}

func isFormRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded"
}
