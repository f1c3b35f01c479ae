package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler postHandler
}

// ErrorResponse is the JSON body of every error response the API writes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}
