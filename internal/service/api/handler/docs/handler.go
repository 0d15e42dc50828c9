// Package docs API 문서 엔드포인트(/docs, /redoc, /openapi.json) 핸들러를 제공합니다.
package docs

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
	apperrors "github.com/yoohooguru/mcp-server/internal/pkg/errors"
	"github.com/yoohooguru/mcp-server/internal/service/api/constants"
	"github.com/yoohooguru/mcp-server/internal/service/api/httputil"
	applog "github.com/yoohooguru/mcp-server/pkg/log"
)

// SpecURL OpenAPI 문서가 제공되는 경로입니다.
const SpecURL = "/openapi.json"

var swaggerUITemplate = template.Must(template.New("swagger-ui").Parse(`<!DOCTYPE html>
<html>
<head>
<link type="text/css" rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
<title>{{.Title}} - Swagger UI</title>
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
const ui = SwaggerUIBundle({
    url: '{{.SpecURL}}',
    dom_id: '#swagger-ui',
    layout: 'BaseLayout',
    deepLinking: true,
    showExtensions: true,
    showCommonExtensions: true,
    presets: [
        SwaggerUIBundle.presets.apis,
        SwaggerUIBundle.SwaggerUIStandalonePreset
    ],
})
</script>
</body>
</html>
`))

var redocTemplate = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} - ReDoc</title>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
  body {
    margin: 0;
    padding: 0;
  }
</style>
</head>
<body>
<noscript>
    ReDoc requires Javascript to function. Please enable it to browse the documentation.
</noscript>
<redoc spec-url="{{.SpecURL}}"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@next/bundles/redoc.standalone.js"></script>
</body>
</html>
`))

type page struct {
	Title   string
	SpecURL string
}

// Handler API 문서 핸들러
type Handler struct {
	title string

	// readDoc 등록된 OpenAPI 문서를 읽습니다. 기본값은 swag 레지스트리입니다.
	readDoc func() (string, error)
}

// NewHandler Handler 인스턴스를 생성합니다. title 은 HTML 문서 제목의 접두어로 사용됩니다.
func NewHandler(title string) *Handler {
	return &Handler{
		title: title,

		readDoc: func() (string, error) { return swag.ReadDoc() },
	}
}

// SwaggerUIHandler Swagger UI 페이지를 반환합니다.
func (h *Handler) SwaggerUIHandler(c echo.Context) error {
	return h.render(c, swaggerUITemplate)
}

// RedocHandler ReDoc 페이지를 반환합니다.
func (h *Handler) RedocHandler(c echo.Context) error {
	return h.render(c, redocTemplate)
}

// OpenAPIHandler OpenAPI 문서를 반환합니다. Content-Type 은 정확히 application/json 입니다.
func (h *Handler) OpenAPIHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  SpecURL,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgDocumentRequested)

	doc, err := h.readDoc()
	if err != nil {
		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgDocumentReadFailed)

		return httputil.NewInternalServerError(constants.ErrMsgInternalServer)
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(doc))
}

func (h *Handler) render(c echo.Context, tmpl *template.Template) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  c.Path(),
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgDocumentRequested)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page{Title: h.title, SpecURL: SpecURL}); err != nil {
		return apperrors.Wrap(err, apperrors.Internal, "API 문서 페이지 렌더링에 실패했습니다")
	}

	return c.HTML(http.StatusOK, buf.String())
}
