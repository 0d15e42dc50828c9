// Package docs OpenAPI 3 문서를 swag 레지스트리에 등록합니다.
//
// 서버는 이 패키지를 blank import 하여 문서를 등록하고, swag.ReadDoc() 으로 /openapi.json 응답을 만듭니다.
package docs

import (
	"github.com/swaggo/swag"
	"github.com/yoohooguru/mcp-server/internal/config"
)

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/": {
            "get": {
                "tags": ["Status"],
                "summary": "Root",
                "description": "Reports that the server is running.",
                "operationId": "root",
                "responses": {
                    "200": {
                        "description": "Successful Response",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/StatusResponse"}
                            }
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Status"],
                "summary": "Health Check",
                "description": "Liveness endpoint used by monitoring systems and load balancers.",
                "operationId": "health_check",
                "responses": {
                    "200": {
                        "description": "Successful Response",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/StatusResponse"}
                            }
                        }
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "StatusResponse": {
                "title": "StatusResponse",
                "type": "object",
                "required": ["status", "message", "timestamp", "version"],
                "properties": {
                    "status": {"title": "Status", "type": "string", "example": "healthy"},
                    "message": {"title": "Message", "type": "string", "example": "Service is operational"},
                    "timestamp": {"title": "Timestamp", "type": "string", "format": "date-time"},
                    "version": {"title": "Version", "type": "string", "example": "{{.Version}}"}
                }
            }
        }
    }
}`

// SwaggerInfo 서버 메타데이터와 문서 템플릿을 담은 swag 명세입니다.
var SwaggerInfo = &swag.Spec{
	Version:          config.AppVersion,
	BasePath:         "/",
	Schemes:          []string{},
	Title:            config.AppName,
	Description:      config.AppDescription,
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
