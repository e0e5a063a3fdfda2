// Package schemas holds the JSON Schemas for request documents accepted by the API.
package schemas

import (
	"embed"
	"fmt"
)

// CheckoutRequestFile is the schema for the submission endpoint body.
const CheckoutRequestFile = "checkout_request.schema.json"

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema file.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}
