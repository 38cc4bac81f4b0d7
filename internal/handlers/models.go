package handlers

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Error message"`
}

// MessageResponse represents a plain acknowledgment
type MessageResponse struct {
	Message string `json:"message" example:"Logout successful"`
}

// ProductListResponse represents one page of the catalog
type ProductListResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	TotalPages int64       `json:"totalPages"`
}
