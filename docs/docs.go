// Package docs embeds the OpenAPI document and the Swagger UI page served at /docs.
package docs

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte

//go:embed swagger.html
var SwaggerUI []byte
