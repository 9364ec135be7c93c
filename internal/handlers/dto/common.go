package dto

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response é o envelope uniforme de todas as respostas da API
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

// OK monta uma resposta 200
func OK(message string, data any) Response {
	return Response{Success: true, StatusCode: http.StatusOK, Message: message, Data: data}
}

// Created monta uma resposta 201
func Created(message string, data any) Response {
	return Response{Success: true, StatusCode: http.StatusCreated, Message: message, Data: data}
}

// Failure monta uma resposta de erro no mesmo envelope
func Failure(status int, message string, data any) Response {
	return Response{Success: false, StatusCode: status, Message: message, Data: data}
}

// FieldError descreve uma falha de validação de um campo do corpo
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationDetails converte erros do validator em uma lista de falhas por
// campo. Erros que não vêm do validator retornam nil.
func ValidationDetails(err error) []FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		})
	}
	return details
}
