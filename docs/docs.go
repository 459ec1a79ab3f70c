// Package docs registers the OpenAPI document served under /swagger.
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
        "/country-stats": {
            "get": {
                "description": "One row per country ordered by name, carrying the newest English speaker and programmer estimates",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Country stats",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/model.StatsRow"}
                        }
                    },
                    "500": {
                        "description": "Query failed",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponse"}
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Static OK marker; does not touch the data source",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.HealthResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"}
            }
        },
        "model.StatsRow": {
            "type": "object",
            "properties": {
                "No.": {"type": "integer"},
                "Country Name": {"type": "string"},
                "Population": {"type": "integer"},
                "1% Population": {"type": "number"},
                "Est. Count": {"type": "integer", "x-nullable": true},
                "% of Population": {"type": "number", "x-nullable": true},
                "Source": {"type": "string", "x-nullable": true},
                "Conservative Est.": {"type": "integer", "x-nullable": true},
                "Mid Est.": {"type": "integer", "x-nullable": true},
                "High Est.": {"type": "integer", "x-nullable": true},
                "% Conservative": {"type": "number", "x-nullable": true},
                "% Mid": {"type": "number", "x-nullable": true},
                "% High": {"type": "number", "x-nullable": true},
                "es_created": {"type": "string", "format": "date-time", "x-nullable": true},
                "pg_created": {"type": "string", "format": "date-time", "x-nullable": true}
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
	Title:            "Country Stats API",
	Description:      "Latest English speaker and programmer estimates per country.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
