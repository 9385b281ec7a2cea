package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse respuesta genérica para escrituras sin cuerpo propio.
type SuccessResponse struct {
	Success bool `json:"success"`
}
