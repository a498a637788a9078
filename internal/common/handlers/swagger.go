package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Swagger Handlers
// ============================================================

// SwaggerSpec serves the OpenAPI YAML found at path.
func SwaggerSpec(path string) fiber.Handler {
	return func(c fiber.Ctx) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "openapi document not found"})
		}
		c.Type("yaml")
		return c.Send(data)
	}
}

// SwaggerUI serves a Swagger UI page that reads the document from specURL.
func SwaggerUI(title, specURL string) fiber.Handler {
	page := fmt.Sprintf(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%s',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
    });
  };
</script>
</body>
</html>`, title, specURL)

	return func(c fiber.Ctx) error {
		c.Type("html")
		return c.SendString(page)
	}
}
