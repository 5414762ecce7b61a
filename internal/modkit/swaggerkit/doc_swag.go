//go:build swag

package swaggerkit

import "github.com/swaggo/swag/v2"

// readDoc returns the document the generated docs package registered as "api"
func readDoc() (string, error) { return swag.ReadDoc("api") }
