package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/mandataire/mandataire-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

const mediaTypeJSON = "application/json"

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// transformRefs recursively rewrites $ref from #/definitions/ to #/components/schemas/
func transformRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			result[key] = transformRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = transformRefs(item)
		}
		return result
	default:
		return data
	}
}

// convertPaths converts every operation of a Swagger 2.0 paths object
func convertPaths(paths map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(paths))
	for path, item := range paths {
		operations, ok := item.(map[string]interface{})
		if !ok {
			result[path] = transformRefs(item)
			continue
		}
		converted := make(map[string]interface{}, len(operations))
		for method, op := range operations {
			if opMap, ok := op.(map[string]interface{}); ok {
				converted[method] = convertOperation(opMap)
			} else {
				converted[method] = transformRefs(op)
			}
		}
		result[path] = converted
	}
	return result
}

// convertOperation moves the body parameter into requestBody and wraps response schemas in content.
// consumes and produces have no OpenAPI 3.0 counterpart and are folded into the media types.
func convertOperation(op map[string]interface{}) map[string]interface{} {
	consumes := mediaTypes(op["consumes"])
	produces := mediaTypes(op["produces"])

	result := make(map[string]interface{}, len(op))
	for key, value := range op {
		switch key {
		case "consumes", "produces":
		case "parameters":
			params, body := convertParameters(value, consumes)
			if len(params) > 0 {
				result["parameters"] = params
			}
			if body != nil {
				result["requestBody"] = body
			}
		case "responses":
			result["responses"] = convertResponses(value, produces)
		default:
			result[key] = transformRefs(value)
		}
	}
	return result
}

// convertParameters splits Swagger 2.0 parameters into OpenAPI 3.0 parameters and a request body
func convertParameters(raw interface{}, consumes []string) ([]interface{}, map[string]interface{}) {
	list, _ := raw.([]interface{})
	params := make([]interface{}, 0, len(list))
	var body map[string]interface{}

	for _, item := range list {
		param, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if param["in"] == "body" {
			body = requestBody(param, consumes)
			continue
		}
		params = append(params, transformParameter(param))
	}
	return params, body
}

// requestBody builds an OpenAPI 3.0 requestBody from a Swagger 2.0 body parameter
func requestBody(param map[string]interface{}, consumes []string) map[string]interface{} {
	if len(consumes) == 0 {
		consumes = []string{mediaTypeJSON}
	}
	schema := transformRefs(param["schema"])

	content := make(map[string]interface{}, len(consumes))
	for _, mt := range consumes {
		content[mt] = map[string]interface{}{"schema": schema}
	}

	body := map[string]interface{}{"content": content}
	if desc, ok := param["description"]; ok {
		body["description"] = desc
	}
	if required, ok := param["required"]; ok {
		body["required"] = required
	}
	return body
}

// transformParameter converts a Swagger 2.0 path, query or header parameter to OpenAPI 3.0 format
func transformParameter(param map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	// Type-related fields move under schema
	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = transformRefs(val)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}

	return result
}

// convertResponses wraps each response schema in a content map.
// File downloads are served in every produced media type; everything else is JSON.
func convertResponses(raw interface{}, produces []string) map[string]interface{} {
	responses, _ := raw.(map[string]interface{})
	result := make(map[string]interface{}, len(responses))

	for status, item := range responses {
		resp, ok := item.(map[string]interface{})
		if !ok {
			result[status] = transformRefs(item)
			continue
		}

		converted := make(map[string]interface{}, len(resp))
		for key, value := range resp {
			switch key {
			case "schema":
			case "headers":
				converted[key] = convertHeaders(value)
			default:
				converted[key] = transformRefs(value)
			}
		}
		if _, ok := converted["description"]; !ok {
			converted["description"] = ""
		}

		if schema, ok := resp["schema"].(map[string]interface{}); ok {
			content := make(map[string]interface{})
			if schema["type"] == "file" && len(produces) > 0 {
				for _, mt := range produces {
					content[mt] = map[string]interface{}{
						"schema": map[string]interface{}{"type": "string", "format": "binary"},
					}
				}
			} else {
				content[mediaTypeJSON] = map[string]interface{}{"schema": transformRefs(schema)}
			}
			converted["content"] = content
		}
		result[status] = converted
	}
	return result
}

// convertHeaders moves the type fields of Swagger 2.0 response headers under schema
func convertHeaders(raw interface{}) interface{} {
	headers, ok := raw.(map[string]interface{})
	if !ok {
		return raw
	}
	result := make(map[string]interface{}, len(headers))
	for name, item := range headers {
		header, ok := item.(map[string]interface{})
		if !ok {
			result[name] = item
			continue
		}
		converted := make(map[string]interface{})
		schema := make(map[string]interface{})
		for key, value := range header {
			if key == "description" {
				converted[key] = value
			} else {
				schema[key] = value
			}
		}
		if len(schema) > 0 {
			converted["schema"] = schema
		}
		result[name] = converted
	}
	return result
}

func mediaTypes(raw interface{}) []string {
	list, _ := raw.([]interface{})
	types := make([]string, 0, len(list))
	for _, item := range list {
		if mt, ok := item.(string); ok {
			types = append(types, mt)
		}
	}
	return types
}

// ServeOpenAPI3Spec serves the swagger spec converted to OpenAPI 3.0 with multiple servers
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read swagger doc")
		return NewInternalError(c, "Failed to read API documentation")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		log.Error().Err(err).Msg("Failed to parse swagger doc")
		return NewInternalError(c, "Failed to parse API documentation")
	}

	info, _ := swagger2["info"].(map[string]interface{})
	paths, _ := swagger2["paths"].(map[string]interface{})

	// securityDefinitions and definitions move under components
	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = convertSecuritySchemes(secDefs)
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = transformRefs(definitions)
	}

	openapi3 := OpenAPI3Spec{
		OpenAPI: "3.0.3",
		Info:    info,
		Servers: []Server{
			{URL: "http://localhost:8080/api/v1", Description: "Local Development"},
			{URL: "https://api.mandataire.app/api/v1", Description: "Production"},
		},
		Paths:      convertPaths(paths),
		Components: components,
	}

	return c.JSON(http.StatusOK, openapi3)
}

// convertSecuritySchemes maps the Swagger 2.0 bearer apiKey definition onto an HTTP bearer scheme
func convertSecuritySchemes(defs map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(defs))
	for name, item := range defs {
		def, ok := item.(map[string]interface{})
		if ok && def["type"] == "apiKey" && def["in"] == "header" && def["name"] == echo.HeaderAuthorization {
			scheme := map[string]interface{}{
				"type":         "http",
				"scheme":       "bearer",
				"bearerFormat": "JWT",
			}
			if desc, ok := def["description"]; ok {
				scheme["description"] = desc
			}
			result[name] = scheme
			continue
		}
		result[name] = item
	}
	return result
}
