package server

// SolveResponse is the JSON body of a successful /solve request.
type SolveResponse struct {
	Solver     string  `json:"solver"`
	Width      int     `json:"width"`
	Found      bool    `json:"found"`
	A          *uint64 `json:"a,omitempty"`
	B          *uint64 `json:"b,omitempty"`
	Candidates uint64  `json:"candidates"`
	Rejected   uint64  `json:"rejected,omitempty"`
	Duration   string  `json:"duration"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// ParseError is a query parameter error with its HTTP status.
type ParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return e.Message
}
