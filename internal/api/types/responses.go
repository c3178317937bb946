package types

// MessageResponse is the greeting payload.
type MessageResponse struct {
	Message string `json:"message" example:"Profile Generator API"`
}

// UploadResponse carries the reference path of a stored asset.
type UploadResponse struct {
	URL string `json:"url" example:"/uploads/0b6c0a4e-3f0e-4a3c-9d59-4c1f1d6f2c11.png"`
}

// StatusResponse is returned by the health probes.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail" example:"profile not found"`
	Code   string `json:"code" example:"not_found"`
}
