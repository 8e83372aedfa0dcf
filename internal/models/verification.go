package models

// DummySendCode используется для приёма запроса на отправку кода подтверждения.
type DummySendCode struct {
	Email string `json:"email" validate:"required,email"`
}

// DummyVerifyCode используется для приёма запроса на проверку кода подтверждения.
type DummyVerifyCode struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}
