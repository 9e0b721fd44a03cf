package response

// ResponseModel is the common envelope for successful JSON responses.
type ResponseModel struct {
	RetCode string      `json:"retCode"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
