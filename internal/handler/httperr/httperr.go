package httperr

// Response is the error body shape shared by the error-handling and
// recovery middleware.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}
