package model

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Response is the (status, body) pair every device call returns.
type Response struct {
	StatusCode int
	Body       string
}

type HealthcheckBody struct {
	Host    string       `json:"host"`
	Version Version      `json:"version"`
	Health  HealthStatus `json:"health"`
}

type MessageBody struct {
	Message string `json:"message"`
}

var (
	forbiddenResponse = messageResponse(http.StatusForbidden, "Forbidden")
	notFoundResponse  = messageResponse(http.StatusNotFound, "Not Found")
)

func Forbidden() Response { return forbiddenResponse }
func NotFound() Response  { return notFoundResponse }

// JSON serialises v into a 200 response.
func JSON(v any) (Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: http.StatusOK, Body: string(b)}, nil
}

func messageResponse(status int, msg string) Response {
	b, _ := json.Marshal(MessageBody{Message: msg})
	return Response{StatusCode: status, Body: string(b)}
}
