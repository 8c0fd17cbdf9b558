// Package social holds the OpenAPI document served at /swagger/ by the
// social service. Regenerate with:
//
//	swag init -g internal/social/http/router.go -o api/social
package social

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
        "/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [
                    {
                        "description": "Registration details",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/socialsdk.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a session token",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Fetch the authenticated user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/users/me/contact": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update the authenticated user's contact details",
                "parameters": [
                    {
                        "description": "Contact changes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.UpdateContactRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/users/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Search users by username prefix",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.SearchResponse"}}
                }
            }
        },
        "/v1/users/me/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["users"],
                "summary": "Start contact verification",
                "parameters": [
                    {
                        "description": "Channel to verify",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.VerifyStartRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/users/me/verify/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["users"],
                "summary": "Confirm contact verification",
                "parameters": [
                    {
                        "description": "Verification code",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.VerifyConfirmRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/friends": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "List confirmed friends",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.FriendsResponse"}}
                }
            }
        },
        "/v1/friends/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "List pending friend requests",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.PendingResponse"}}
                }
            }
        },
        "/v1/friends/requests": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Send a friend request",
                "parameters": [
                    {
                        "description": "Target user",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.FriendRequestRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/socialsdk.FriendRequestResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/friends/requests/{id}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Accept a pending friend request",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/friends/requests/{id}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Reject a pending friend request",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/friends/status": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Relationship status with another user",
                "parameters": [
                    {"type": "string", "name": "username", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.StatusResponse"}}
                }
            }
        },
        "/v1/friends/{userId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Remove a friend",
                "parameters": [
                    {"type": "string", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/invites": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "List open invites involving the caller",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.InvitesResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Create a two-recipient invite",
                "parameters": [
                    {
                        "description": "Invite recipients",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.CreateInviteRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/socialsdk.Invite"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invites/{code}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Public invite status by code",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.InviteStatusResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invites/{code}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["invites"],
                "summary": "Accept an invite slot",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {
                        "description": "Which recipient slot is being claimed",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.AcceptInviteRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.AcceptInviteResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/invites/{code}/resend": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["invites"],
                "summary": "Resend an invite notification",
                "parameters": [
                    {"type": "string", "name": "code", "in": "path", "required": true},
                    {
                        "description": "Which recipient slot to re-notify",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.ResendInviteRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/v1/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List notifications, newest first",
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "boolean", "name": "unread", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.NotificationsResponse"}}
                }
            }
        },
        "/v1/notifications/unread_count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Count unread notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.UnreadCountResponse"}}
                }
            }
        },
        "/v1/notifications/read": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["notifications"],
                "summary": "Mark notifications as read",
                "parameters": [
                    {
                        "description": "Notification ids; empty marks all",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/socialsdk.MarkReadRequest"}
                    }
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/notifications/read_all": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Mark every notification as read",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/v1/notifications/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Delete a notification",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/socialsdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/socialsdk.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/socialsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "socialsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"}
            }
        },
        "socialsdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "socialsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "socialsdk.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"},
                "user": {"$ref": "#/definitions/socialsdk.User"}
            }
        },
        "socialsdk.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "email_verified": {"type": "boolean"},
                "phone_verified": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "socialsdk.SearchResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/socialsdk.User"}}
            }
        },
        "socialsdk.UpdateContactRequest": {
            "type": "object",
            "properties": {
                "channel": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "socialsdk.VerifyStartRequest": {
            "type": "object",
            "properties": {
                "channel": {"type": "string"}
            }
        },
        "socialsdk.VerifyConfirmRequest": {
            "type": "object",
            "properties": {
                "channel": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "socialsdk.FriendRequestRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"}
            }
        },
        "socialsdk.FriendRequestResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "socialsdk.FriendRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "username": {"type": "string"},
                "incoming": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "socialsdk.Friend": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "username": {"type": "string"},
                "since": {"type": "string"}
            }
        },
        "socialsdk.FriendsResponse": {
            "type": "object",
            "properties": {
                "friends": {"type": "array", "items": {"$ref": "#/definitions/socialsdk.Friend"}}
            }
        },
        "socialsdk.PendingResponse": {
            "type": "object",
            "properties": {
                "requests": {"type": "array", "items": {"$ref": "#/definitions/socialsdk.FriendRequest"}}
            }
        },
        "socialsdk.StatusResponse": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "status": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "socialsdk.InviteRecipient": {
            "type": "object",
            "properties": {
                "channel": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "socialsdk.CreateInviteRequest": {
            "type": "object",
            "properties": {
                "recipients": {"type": "array", "items": {"$ref": "#/definitions/socialsdk.InviteRecipient"}},
                "ttl_hours": {"type": "integer"}
            }
        },
        "socialsdk.InviteSlot": {
            "type": "object",
            "properties": {
                "channel": {"type": "string"},
                "value": {"type": "string"},
                "accepted": {"type": "boolean"}
            }
        },
        "socialsdk.Invite": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "created_by": {"type": "string"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/socialsdk.InviteSlot"}},
                "thread_id": {"type": "string"},
                "created_at": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "socialsdk.InvitesResponse": {
            "type": "object",
            "properties": {
                "invites": {"type": "array", "items": {"$ref": "#/definitions/socialsdk.Invite"}}
            }
        },
        "socialsdk.InviteStatusResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "accepted": {"type": "array", "items": {"type": "boolean"}},
                "resolved": {"type": "boolean"},
                "thread_id": {"type": "string"},
                "expires_at": {"type": "string"},
                "is_expired": {"type": "boolean"}
            }
        },
        "socialsdk.AcceptInviteRequest": {
            "type": "object",
            "properties": {
                "recipient": {"type": "integer"}
            }
        },
        "socialsdk.AcceptInviteResponse": {
            "type": "object",
            "properties": {
                "invite": {"$ref": "#/definitions/socialsdk.Invite"},
                "thread": {"$ref": "#/definitions/socialsdk.Thread"}
            }
        },
        "socialsdk.ResendInviteRequest": {
            "type": "object",
            "properties": {
                "recipient": {"type": "integer"}
            }
        },
        "socialsdk.Thread": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "participants": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "socialsdk.Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "title": {"type": "string"},
                "message": {"type": "string"},
                "from_user_id": {"type": "string"},
                "related_id": {"type": "string"},
                "read": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "socialsdk.NotificationsResponse": {
            "type": "object",
            "properties": {
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/socialsdk.Notification"}}
            }
        },
        "socialsdk.UnreadCountResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"}
            }
        },
        "socialsdk.MarkReadRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "socialsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"$ref": "#/definitions/socialsdk.HealthChecks"}
            }
        },
        "socialsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "v0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tether Social Service API",
	Description:      "Friend relationships, two-recipient invites and notifications for Tether.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
