// Package docs holds the OpenAPI document served under /swagger/. Keep it in
// step with the swag annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/admin/leaderboard/snapshots": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Загружает текущую таблицу лидеров в объектное хранилище (R2) в формате JSON.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Опубликовать снимок таблицы лидеров",
                "responses": {
                    "201": {"description": "Снимок загружен", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Неавторизован", "schema": {"type": "object", "additionalProperties": true}},
                    "403": {"description": "Нет прав", "schema": {"type": "object", "additionalProperties": true}},
                    "501": {"description": "Хранилище снимков не настроено", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Ошибка загрузки", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/admin/participants/{participantID}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Удалить участника",
                "parameters": [
                    {"type": "string", "description": "Participant ID", "name": "participantID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Участник удалён"},
                    "401": {"description": "Неавторизован", "schema": {"type": "object", "additionalProperties": true}},
                    "403": {"description": "Нет прав", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Участник не найден", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Проверка состояния сервиса",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Хранилище недоступно", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/join": {
            "post": {
                "description": "Создаёт (или перезаписывает) запись участника с нулевым счётом и перенаправляет в игру.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Зарегистрировать участника",
                "parameters": [
                    {"description": "Имя и email", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.RegisterInput"}}
                ],
                "responses": {
                    "302": {"description": "Redirect to /game?name=...&email=..."},
                    "400": {"description": "Name and email required", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Registration failed", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/leaderboard": {
            "get": {
                "description": "Участники с результатом, отсортированные по убыванию счёта.",
                "produces": ["application/json"],
                "tags": ["leaderboard"],
                "summary": "Таблица лидеров",
                "parameters": [
                    {"type": "integer", "description": "Максимальное число записей (0 = без ограничения)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.LeaderboardEntry"}}},
                    "400": {"description": "Некорректный limit", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Leaderboard unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/participants/{participantID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Получить запись участника",
                "parameters": [
                    {"type": "string", "description": "Participant ID (локальная часть email)", "name": "participantID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Участник", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Участник не найден", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/submit-score": {
            "post": {
                "description": "Создаёт или обновляет запись участника: последний результат перезаписывает предыдущий.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["participants"],
                "summary": "Отправить результат",
                "parameters": [
                    {"description": "name, email, score (число или строка с числом)", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.SubmitScoreInput"}}
                ],
                "responses": {
                    "200": {"description": "Score submitted successfully", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Некорректный счёт или email", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Ошибка хранилища", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/ws/leaderboard": {
            "get": {
                "description": "После подключения клиент получает текущую таблицу, затем сообщение LEADERBOARD_UPDATED после каждого принятого результата.",
                "tags": ["leaderboard"],
                "summary": "Подписка на обновления таблицы лидеров (WebSocket)",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        }
    },
    "definitions": {
        "models.LeaderboardEntry": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "score": {"type": "integer"},
                "submittedAt": {"type": "integer"}
            }
        },
        "services.RegisterInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "services.SubmitScoreInput": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "score": {"type": "object"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ohm Scoreboard API",
	Description:      "Регистрация участников, приём результатов и таблица лидеров.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
