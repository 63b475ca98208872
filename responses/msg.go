package responses

// ErrorMessage is the body of every JSON error response
type ErrorMessage struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type Status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}
