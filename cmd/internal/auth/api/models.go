package api

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userIDResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type errorResponse struct {
	Error string `json:"error"`
}
