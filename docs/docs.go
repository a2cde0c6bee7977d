// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List all books in id order",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.ListBooksResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Add a book; available_copies starts at total_copies",
                "parameters": [
                    {"description": "book", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.BookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/catalog.BookResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/catalog.errDTO"}}
                }
            }
        },
        "/books/{book_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Get a book",
                "parameters": [
                    {"type": "integer", "description": "book id", "name": "book_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.BookResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/catalog.errDTO"}}
                }
            },
            "put": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Replace title, author and total_copies; available_copies is clamped to the new total",
                "parameters": [
                    {"type": "integer", "description": "book id", "name": "book_id", "in": "path", "required": true},
                    {"description": "book", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.BookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.BookResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/catalog.errDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/catalog.errDTO"}}
                }
            },
            "delete": {
                "tags": ["books"],
                "summary": "Delete a book and its borrowing history",
                "parameters": [
                    {"type": "integer", "description": "book id", "name": "book_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/catalog.errDTO"}}
                }
            }
        },
        "/books/{book_id}/borrowings": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["lending"],
                "summary": "Lend one copy of a book for 14 days",
                "parameters": [
                    {"type": "integer", "description": "book id", "name": "book_id", "in": "path", "required": true},
                    {"description": "borrower", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/lending.BorrowRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/lending.BorrowingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/lending.errorDTO"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/lending.errorDTO"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/lending.errorDTO"}}
                }
            }
        },
        "/books/{book_id}/returns": {
            "post": {
                "produces": ["application/json"],
                "tags": ["lending"],
                "summary": "Return the earliest outstanding borrowing of a book",
                "parameters": [
                    {"type": "integer", "description": "book id", "name": "book_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lending.BorrowingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/lending.errorDTO"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/lending.errorDTO"}}
                }
            }
        },
        "/borrowings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lending"],
                "summary": "Borrowing history, oldest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lending.HistoryResponse"}}
                }
            }
        },
        "/borrowings/{borrowing_ulid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lending"],
                "summary": "Get a borrowing by its ULID",
                "parameters": [
                    {"type": "string", "description": "borrowing ULID", "name": "borrowing_ulid", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/lending.BorrowingResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/lending.errorDTO"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.BookRequest": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "title": {"type": "string"},
                "total_copies": {"type": "integer"}
            }
        },
        "catalog.BookResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "available_copies": {"type": "integer"},
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "total_copies": {"type": "integer"}
            }
        },
        "catalog.ListBooksResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/catalog.BookResponse"}}
            }
        },
        "catalog.errDTO": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        },
        "lending.BorrowRequest": {
            "type": "object",
            "properties": {
                "user_name": {"type": "string"}
            }
        },
        "lending.BorrowingResponse": {
            "type": "object",
            "properties": {
                "book_id": {"type": "integer"},
                "borrow_date": {"type": "string"},
                "borrowing_ulid": {"type": "string"},
                "due_date": {"type": "string"},
                "id": {"type": "integer"},
                "return_date": {"type": "string"},
                "returned": {"type": "boolean"},
                "user_name": {"type": "string"}
            }
        },
        "lending.HistoryEntry": {
            "type": "object",
            "properties": {
                "book_id": {"type": "integer"},
                "borrow_date": {"type": "string"},
                "borrowing_id": {"type": "integer"},
                "borrowing_ulid": {"type": "string"},
                "due_date": {"type": "string"},
                "return_date": {"type": "string"},
                "title": {"type": "string"},
                "user_name": {"type": "string"}
            }
        },
        "lending.HistoryResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/lending.HistoryEntry"}}
            }
        },
        "lending.errorDTO": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Library lending API",
	Description:      "Book catalogue and lending ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
