// Package swagger holds the OpenAPI document served under /swagger. It follows
// the layout `swag init -g cmd/start.go -o docs/swagger` produces.
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/api/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health Check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Report"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.Report"}}
                }
            }
        },
        "/api/categories": {
            "get": {
                "tags": ["categories"],
                "summary": "List Categories",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}}
                }
            },
            "post": {
                "tags": ["categories"],
                "summary": "Create Category",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "category", "in": "body", "required": true, "schema": {"$ref": "#/definitions/categories.CreateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/categories.Response"}},
                    "400": {"description": "Missing or duplicate slug", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/categories/{slug}": {
            "delete": {
                "tags": ["categories"],
                "summary": "Delete Category",
                "description": "Cascades to every stock in the category and to orders that reference them.",
                "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/categories.Response"}},
                    "404": {"description": "Category not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/stocks": {
            "get": {
                "tags": ["stocks"],
                "summary": "List Stocks",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Stock"}}}
                }
            },
            "post": {
                "tags": ["stocks"],
                "summary": "Create Stock",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "stock", "in": "body", "required": true, "schema": {"$ref": "#/definitions/stocks.CreateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/stocks.Response"}},
                    "400": {"description": "Missing category or name", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/stocks/{id}": {
            "put": {
                "tags": ["stocks"],
                "summary": "Update Stock",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/stocks.CreateInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stocks.Response"}},
                    "404": {"description": "Stock not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["stocks"],
                "summary": "Delete Stock",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stocks.Response"}},
                    "404": {"description": "Stock not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/orders": {
            "get": {
                "tags": ["orders"],
                "summary": "List Orders",
                "description": "Newest first.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Order"}}}
                }
            },
            "post": {
                "tags": ["orders"],
                "summary": "Create Order",
                "description": "Reserves qty units of the stock size and stores the order in one transaction.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orders.CreateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/orders.Response"}},
                    "400": {"description": "Validation failed or not enough stock", "schema": {"$ref": "#/definitions/orders.InsufficientStockResponse"}}
                }
            }
        },
        "/api/orders/{id}": {
            "put": {
                "tags": ["orders"],
                "summary": "Update Order",
                "description": "Moves the reservation when item, size or qty change.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "patch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/orders.CreateInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/orders.Response"}},
                    "400": {"description": "Validation failed or not enough stock", "schema": {"$ref": "#/definitions/orders.InsufficientStockResponse"}},
                    "404": {"description": "Order not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["orders"],
                "summary": "Delete Order",
                "description": "Returns the held quantity to stock.",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/orders.Response"}},
                    "404": {"description": "Order not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/reconcile": {
            "get": {
                "tags": ["reconcile"],
                "summary": "Audit Stock",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reconcile.Report"}}
                }
            }
        },
        "/api/reconcile/purge": {
            "post": {
                "tags": ["reconcile"],
                "summary": "Purge Orphan Orders",
                "parameters": [{"name": "dry_run", "in": "query", "type": "boolean"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/audit.PurgeResponse"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "models.Sizes": {
            "type": "object",
            "additionalProperties": {"type": "integer"}
        },
        "models.Category": {
            "type": "object",
            "properties": {
                "slug": {"type": "string"},
                "name": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "models.Stock": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "category": {"type": "string"},
                "name": {"type": "string"},
                "sizes": {"$ref": "#/definitions/models.Sizes"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customerName": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "payment": {"type": "string"},
                "category": {"type": "string"},
                "itemId": {"type": "string"},
                "itemName": {"type": "string"},
                "size": {"type": "string"},
                "qty": {"type": "integer"},
                "notes": {"type": "string"},
                "price": {"type": "number"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "categories.CreateInput": {
            "type": "object",
            "properties": {"slug": {"type": "string"}, "name": {"type": "string"}}
        },
        "categories.Response": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "category": {"$ref": "#/definitions/models.Category"},
                "removed": {
                    "type": "object",
                    "properties": {"stocks": {"type": "integer"}, "orders": {"type": "integer"}}
                }
            }
        },
        "stocks.CreateInput": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "name": {"type": "string"},
                "sizes": {"$ref": "#/definitions/models.Sizes"}
            }
        },
        "stocks.Response": {
            "type": "object",
            "properties": {"ok": {"type": "boolean"}, "stock": {"$ref": "#/definitions/models.Stock"}}
        },
        "orders.CreateInput": {
            "type": "object",
            "properties": {
                "customerName": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "payment": {"type": "string"},
                "category": {"type": "string"},
                "itemId": {"type": "string"},
                "itemName": {"type": "string"},
                "size": {"type": "string"},
                "qty": {"type": "integer"},
                "notes": {"type": "string"},
                "price": {"type": "number"},
                "status": {"type": "string"}
            }
        },
        "orders.Response": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "order": {"$ref": "#/definitions/models.Order"},
                "stocks": {"type": "array", "items": {"$ref": "#/definitions/models.Stock"}}
            }
        },
        "orders.InsufficientStockResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "available": {"type": "integer"}}
        },
        "reconcile.Report": {
            "type": "object",
            "properties": {
                "lines": {"type": "array", "items": {"type": "object"}},
                "orphans": {"type": "array", "items": {"type": "object"}},
                "actions": {"type": "array", "items": {"type": "object"}},
                "summary": {"type": "object"}
            }
        },
        "audit.PurgeResponse": {
            "type": "object",
            "properties": {
                "report": {"$ref": "#/definitions/reconcile.Report"},
                "executed": {"type": "integer"},
                "dryRun": {"type": "boolean"}
            }
        },
        "health.Report": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Order Manager API",
	Description:      "Orders, stocks and categories with per-size inventory reservation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
