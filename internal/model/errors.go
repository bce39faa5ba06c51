package model

import "errors"

var (
	// ErrNotFound игры с таким ID нет
	ErrNotFound = errors.New("game not found")
	// ErrDuplicateID игра с таким ID уже существует
	ErrDuplicateID = errors.New("game id already exists")
	// ErrAlreadyPlayed игра уже сыграна, результат зафиксирован
	ErrAlreadyPlayed = errors.New("game already played")
	// ErrInvalidResultShape количество результатов не совпадает с количеством колёс
	ErrInvalidResultShape = errors.New("result count does not match wheel count")
)
