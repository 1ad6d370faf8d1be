package dto

// SuccessResponse is the standard success payload for operations that only
// acknowledge (logout, delete).
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Operação realizada com sucesso"`
}

// NewSuccessResponse builds an acknowledgement payload.
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}
