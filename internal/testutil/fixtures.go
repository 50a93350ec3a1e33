// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mikejonesguy/SlimSwagger/node"
)

// PetstoreOAS2YAML is a Swagger 2.0 document with two operations and three
// definitions. listPets references Pet and Error, getPet references only
// Pet, and Unused is referenced by nothing.
const PetstoreOAS2YAML = `swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      tags:
        - pets
      responses:
        "200":
          description: A list of pets
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
        default:
          description: Unexpected error
          schema:
            $ref: "#/definitions/Error"
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        type: string
    get:
      operationId: getPet
      tags:
        - pets
      responses:
        "200":
          description: A single pet
          schema:
            $ref: "#/definitions/Pet"
definitions:
  Pet:
    type: object
    properties:
      id:
        type: integer
        format: int64
      name:
        type: string
  Error:
    type: object
    properties:
      code:
        type: integer
      message:
        type: string
  Unused:
    type: object
`

// PetstoreOAS3JSON is the OpenAPI 3.0 equivalent of PetstoreOAS2YAML, with
// schemas under components.schemas. It adds an addPet operation tagged both
// "pets" and "admin" whose request body references NewPet, which in turn
// references Pet.
const PetstoreOAS3JSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {
        "operationId": "listPets",
        "tags": ["pets"],
        "responses": {
          "200": {
            "description": "A list of pets",
            "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Pet"}}}}
          },
          "default": {
            "description": "Unexpected error",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}
          }
        }
      },
      "post": {
        "operationId": "addPet",
        "tags": ["pets", "admin"],
        "requestBody": {
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/NewPet"}}}
        },
        "responses": {"201": {"description": "Created"}}
      }
    },
    "/pets/{petId}": {
      "get": {
        "operationId": "getPet",
        "tags": ["pets"],
        "responses": {
          "200": {
            "description": "A single pet",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "properties": {"id": {"type": "integer", "format": "int64"}, "name": {"type": "string"}}
      },
      "NewPet": {
        "allOf": [{"$ref": "#/components/schemas/Pet"}],
        "required": ["name"]
      },
      "Error": {
        "type": "object",
        "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
      },
      "Unused": {"type": "object"}
    }
  }
}
`

// MustDecode decodes src into a document tree, failing the test on error.
func MustDecode(t *testing.T, src string) *node.Node {
	t.Helper()

	doc, err := node.Decode([]byte(src))
	if err != nil {
		t.Fatalf("Failed to decode fixture: %v", err)
	}
	return doc
}

// WriteTempFile writes content to name inside a fresh temporary directory.
// Returns the path to the file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}
