package dto

// ErrorResponse is the failure envelope: {ok:false, error:<message>}.
// OK is the zero value on purpose.
type ErrorResponse struct {
	OK      bool              `json:"ok"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
