package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/ohm-scoreboard/services"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(ls *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

// GetLeaderboard godoc
// @Summary Таблица лидеров
// @Tags leaderboard
// @Description Участники с результатом, отсортированные по убыванию счёта.
// @Produce json
// @Param limit query int false "Максимальное число записей (0 = без ограничения)"
// @Success 200 {array} models.LeaderboardEntry
// @Failure 400 {object} map[string]interface{} "Некорректный limit"
// @Failure 500 {object} map[string]interface{} "Leaderboard unavailable"
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.leaderboardService.Leaderboard(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "leaderboard read failed", slog.Any("error", err))
		errorResponse(w, r, http.StatusInternalServerError, "Leaderboard unavailable")
		return
	}

	if err := writeJSON(w, http.StatusOK, entries, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateSnapshot godoc
// @Summary Опубликовать снимок таблицы лидеров
// @Tags admin
// @Description Загружает текущую таблицу лидеров в объектное хранилище (R2) в формате JSON.
// @Produce json
// @Success 201 {object} map[string]interface{} "Снимок загружен"
// @Failure 401 {object} map[string]interface{} "Неавторизован"
// @Failure 403 {object} map[string]interface{} "Нет прав"
// @Failure 501 {object} map[string]interface{} "Хранилище снимков не настроено"
// @Failure 502 {object} map[string]interface{} "Ошибка загрузки"
// @Security BearerAuth
// @Router /admin/leaderboard/snapshots [post]
func (h *LeaderboardHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaderboardService.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := http.Header{}
	if result.Location != "" {
		headers.Set("Location", result.Location)
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"success": true, "snapshot": result}, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}
