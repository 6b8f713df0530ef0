// Package docs holds the swagger document served at /swagger.
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
		"/": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Health check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/users": {
			"post": {
				"tags": [
					"Users"
				],
				"summary": "Create user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "user",
						"name": "user",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.createUserRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handlers.createUserResponse"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"409": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/users/{id}": {
			"get": {
				"tags": [
					"Users"
				],
				"summary": "Get user by id",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.User"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/users/name/{username}": {
			"get": {
				"tags": [
					"Users"
				],
				"summary": "Get user by username",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Username",
						"name": "username",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.User"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/tasks": {
			"post": {
				"tags": [
					"Tasks"
				],
				"summary": "Create task",
				"produces": [
					"application/json"
				],
				"description": "Creates a task and attaches an encouraging message.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "task",
						"name": "task",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.createTaskRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Task"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/tasks/{id}": {
			"get": {
				"tags": [
					"Tasks"
				],
				"summary": "Get task",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Task"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			},
			"put": {
				"tags": [
					"Tasks"
				],
				"summary": "Update task",
				"produces": [
					"application/json"
				],
				"description": "Partial update. Setting completed=true completes every subtask.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "task",
						"name": "task",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.updateTaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Task"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			},
			"delete": {
				"tags": [
					"Tasks"
				],
				"summary": "Delete task",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/tasks/user/{user_id}": {
			"get": {
				"tags": [
					"Tasks"
				],
				"summary": "List user's tasks",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.Task"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/tasks/{id}/export": {
			"get": {
				"tags": [
					"Tasks"
				],
				"summary": "Export task as PDF checklist",
				"produces": [
					"application/pdf"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "file"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/tasks/{id}/subtasks": {
			"post": {
				"tags": [
					"Tasks"
				],
				"summary": "Add subtask",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "subtask",
						"name": "subtask",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.createSubtaskRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/models.Task"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/tasks/{id}/subtasks/{subtask_id}": {
			"put": {
				"tags": [
					"Tasks"
				],
				"summary": "Update subtask",
				"produces": [
					"application/json"
				],
				"description": "The parent task is completed exactly when all its subtasks are.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Subtask ID",
						"name": "subtask_id",
						"in": "path",
						"required": true
					},
					{
						"description": "subtask",
						"name": "subtask",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.updateSubtaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Task"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			},
			"delete": {
				"tags": [
					"Tasks"
				],
				"summary": "Delete subtask",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Subtask ID",
						"name": "subtask_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Task"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/process-task": {
			"post": {
				"tags": [
					"Tasks"
				],
				"summary": "Decompose free text into a task",
				"produces": [
					"application/json"
				],
				"description": "Asks the model for a plan with subtasks. Falls back to a single review step when the model is unavailable.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.processTaskRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.Task"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/emotional-support": {
			"post": {
				"tags": [
					"Tasks"
				],
				"summary": "Regenerate the encouraging message",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Task ID",
						"name": "task_id",
						"in": "query",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/chat": {
			"post": {
				"tags": [
					"Chat"
				],
				"summary": "Talk to the assistant",
				"produces": [
					"application/json"
				],
				"description": "The assistant may create or decompose tasks through tools. Created tasks are returned in created_tasks.",
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "request",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.chatRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/services.ChatResult"
						}
					},
					"400": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/chat/history/{user_id}": {
			"get": {
				"tags": [
					"Chat"
				],
				"summary": "Chat history",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/models.ChatMessage"
							}
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/chat/stream/{user_id}": {
			"get": {
				"tags": [
					"Chat"
				],
				"summary": "Websocket stream of task_created events",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"101": {
						"description": "Created"
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/statistics/user/{user_id}": {
			"get": {
				"tags": [
					"Statistics"
				],
				"summary": "User statistics",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.UserStatistics"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		},
		"/statistics/user/{user_id}/feedback": {
			"get": {
				"tags": [
					"Statistics"
				],
				"summary": "Coaching feedback",
				"produces": [
					"application/json"
				],
				"description": "Cached per statistics snapshot for one hour.",
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/models.FeedbackResponse"
						}
					},
					"404": {
						"description": "Error",
						"schema": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handlers.createUserRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				}
			},
			"required": [
				"username"
			]
		},
		"handlers.createUserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"access_token": {
					"type": "string"
				}
			}
		},
		"handlers.createTaskRequest": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"deadline": {
					"type": "string"
				},
				"priority": {
					"type": "string"
				}
			},
			"required": [
				"title",
				"user_id"
			]
		},
		"handlers.updateTaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"deadline": {
					"type": "string"
				},
				"priority": {
					"type": "string"
				},
				"completed": {
					"type": "boolean"
				}
			}
		},
		"handlers.createSubtaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"deadline": {
					"type": "string"
				},
				"order": {
					"type": "integer"
				}
			}
		},
		"handlers.updateSubtaskRequest": {
			"type": "object",
			"properties": {
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"completed": {
					"type": "boolean"
				},
				"deadline": {
					"type": "string"
				},
				"order": {
					"type": "integer"
				}
			}
		},
		"handlers.processTaskRequest": {
			"type": "object",
			"properties": {
				"text": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				}
			},
			"required": [
				"text",
				"user_id"
			]
		},
		"handlers.chatRequest": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				}
			},
			"required": [
				"message",
				"user_id"
			]
		},
		"models.User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"models.Subtask": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"task_id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"deadline": {
					"type": "string",
					"format": "date-time"
				},
				"order": {
					"type": "integer"
				},
				"completed": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"models.Task": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"deadline": {
					"type": "string",
					"format": "date-time"
				},
				"priority": {
					"type": "string",
					"enum": [
						"low",
						"medium",
						"high"
					]
				},
				"completed": {
					"type": "boolean"
				},
				"subtasks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Subtask"
					}
				},
				"emotional_support": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"models.ChatMessage": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				},
				"role": {
					"type": "string",
					"enum": [
						"user",
						"assistant"
					]
				},
				"content": {
					"type": "string"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"models.RecentActivity": {
			"type": "object",
			"properties": {
				"window_days": {
					"type": "integer"
				},
				"tasks_created": {
					"type": "integer"
				},
				"tasks_completed": {
					"type": "integer"
				}
			}
		},
		"models.UserStatistics": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"total_tasks": {
					"type": "integer"
				},
				"completed_tasks": {
					"type": "integer"
				},
				"pending_tasks": {
					"type": "integer"
				},
				"total_subtasks": {
					"type": "integer"
				},
				"completed_subtasks": {
					"type": "integer"
				},
				"task_completion_rate": {
					"type": "number"
				},
				"subtask_completion_rate": {
					"type": "number"
				},
				"overdue_tasks": {
					"type": "integer"
				},
				"upcoming_deadlines": {
					"type": "integer"
				},
				"tasks_by_priority": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"recent_activity": {
					"$ref": "#/definitions/models.RecentActivity"
				},
				"generated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"models.Feedback": {
			"type": "object",
			"properties": {
				"summary": {
					"type": "string"
				},
				"insights": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"suggestions": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"motivation": {
					"type": "string"
				},
				"achievements": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"growth_areas": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"models.FeedbackResponse": {
			"type": "object",
			"properties": {
				"user_id": {
					"type": "string"
				},
				"feedback": {
					"$ref": "#/definitions/models.Feedback"
				},
				"statistics": {
					"$ref": "#/definitions/models.UserStatistics"
				},
				"cached": {
					"type": "boolean"
				},
				"generated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"services.ChatResult": {
			"type": "object",
			"properties": {
				"response": {
					"type": "string"
				},
				"created_tasks": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/models.Task"
					}
				},
				"queued": {
					"type": "integer"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Task Assistant API",
	Description:      "Task decomposition, conversational assistant and progress feedback.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
