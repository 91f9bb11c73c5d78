package dto

// ErrorResponse cuerpo de error HTTP. Code solo se informa en errores de autenticación.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HealthResponse cuerpo de /health y /ready.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
