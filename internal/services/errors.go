package services

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidInput    = errors.New("invalid input")
)
