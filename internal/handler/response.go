package handler

// ErrorData is the payload of a failed envelope. ErrorType is reserved
// and currently always empty.
type ErrorData struct {
	ErrorType string `json:"error_type"`
	Params    string `json:"params"`
	Message   string `json:"message"`
}

// Envelope is the uniform {is_success, data} response wrapper.
type Envelope struct {
	IsSuccess bool `json:"is_success"`
	Data      any  `json:"data"`
}

// SuccessResponse wraps data in a successful envelope.
func SuccessResponse(data any) Envelope {
	return Envelope{IsSuccess: true, Data: data}
}

// ErrorResponse builds a failed envelope carrying a structured error.
func ErrorResponse(errorType, params, message string) Envelope {
	return Envelope{
		IsSuccess: false,
		Data: ErrorData{
			ErrorType: errorType,
			Params:    params,
			Message:   message,
		},
	}
}
