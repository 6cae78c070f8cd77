package document

import "errors"

var (
	// ErrElementNotFound элемент с указанным id отсутствует в документе
	ErrElementNotFound = errors.New("element not found")

	// ErrGestureInProgress активен жест над другим элементом
	ErrGestureInProgress = errors.New("another gesture is in progress")

	// ErrInvalidDirection неизвестное направление перемещения по z-order
	ErrInvalidDirection = errors.New("invalid reorder direction")
)
