// Package docs 手工维护的 swagger 2.0 文档，按 swag 的注册方式供 gin-swagger 读取
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
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["인증"],
                "summary": "로그인",
                "parameters": [
                    {
                        "description": "로그인 정보",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.LoginInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["인증"],
                "summary": "회원가입",
                "parameters": [
                    {
                        "description": "회원 정보",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.RegisterInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.registerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/auth/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["인증"],
                "summary": "모든 사용자 조회",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.usersResponse"}}
                }
            }
        },
        "/api/auth/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["인증"],
                "summary": "특정 사용자 조회",
                "parameters": [
                    {"type": "integer", "description": "사용자 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PublicUser"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/hello": {
            "get": {
                "produces": ["application/json"],
                "tags": ["테스트"],
                "summary": "기본 인사말 반환",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.helloResponse"}}
                }
            }
        },
        "/api/message": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["메시지"],
                "summary": "메시지 전송",
                "parameters": [
                    {
                        "description": "메시지",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.messageRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["게시판"],
                "summary": "모든 게시글 조회",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "페이지 번호", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "한 페이지당 개수", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PostPage"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["게시판"],
                "summary": "새 게시글 작성",
                "parameters": [
                    {
                        "description": "게시글",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/service.CreatePostInput"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["게시판"],
                "summary": "특정 게시글 조회",
                "parameters": [
                    {"type": "integer", "description": "게시글 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Post"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["게시판"],
                "summary": "게시글 수정",
                "parameters": [
                    {"type": "integer", "description": "게시글 ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "수정할 필드",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.PostPatch"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Post"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["게시판"],
                "summary": "게시글 삭제",
                "parameters": [
                    {"type": "integer", "description": "게시글 ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.deletePostResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["사용자"],
                "summary": "사용자 목록 조회",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.demoUsersResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["시스템"],
                "summary": "상태 확인",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.healthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.DemoUser": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "handler.deletePostResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "post": {"$ref": "#/definitions/model.Post"}
            }
        },
        "handler.demoUsersResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/handler.DemoUser"}}
            }
        },
        "handler.healthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "timestamp": {"type": "string"}
            }
        },
        "handler.helloResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "timestamp": {"type": "string"},
                "version": {"type": "string", "example": "1.0.0"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string", "example": "fake_token_1"},
                "user": {"$ref": "#/definitions/handler.loginUser"}
            }
        },
        "handler.loginUser": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "handler.messageRequest": {
            "type": "object",
            "properties": {
                "message": {}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "processedAt": {"type": "string"},
                "receivedMessage": {},
                "success": {"type": "boolean"}
            }
        },
        "handler.registerResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/model.PublicUser"}
            }
        },
        "handler.usersResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/model.PublicUser"}}
            }
        },
        "model.Post": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "content": {"type": "string"},
                "createdAt": {"type": "string"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "updatedAt": {"type": "string"},
                "views": {"type": "integer"}
            }
        },
        "model.PostPatch": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "model.PublicUser": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "게시글을 찾을 수 없습니다."}
            }
        },
        "service.CreatePostInput": {
            "type": "object",
            "required": ["author", "content", "title"],
            "properties": {
                "author": {"type": "string"},
                "content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "service.LoginInput": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "service.PostPage": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "pages": {"type": "integer"},
                "posts": {"type": "array", "items": {"$ref": "#/definitions/model.Post"}},
                "total": {"type": "integer"}
            }
        },
        "service.RegisterInput": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "username": {"type": "string", "minLength": 3}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "게시판 API",
	Description:      "Gin 백엔드 API 문서 (사용자 인증 + 게시판)",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
