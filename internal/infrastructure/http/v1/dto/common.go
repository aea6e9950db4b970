// Package dto provides the request forms and JSON responses of the web layer.
package dto

// ErrorResponse is the JSON body written for failed API requests.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
