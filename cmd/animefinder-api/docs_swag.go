//go:build swag

package main

//go:generate swag init --v3.1 -g main.go -d .,../../internal/services/api -o ../../internal/services/api/docs --instanceName api

// registers the generated document with swag under the "api" instance
import _ "animefinder/internal/services/api/docs"
