package models

import "errors"

var (
	// ErrMalformedEvent неизвестный тип события или отсутствует обязательное поле payload
	ErrMalformedEvent = errors.New("malformed event")

	// ErrUnknownKind неизвестный тип элемента
	ErrUnknownKind = errors.New("unknown element kind")

	// ErrInvalidPatch значения patch не соответствуют полям элемента
	ErrInvalidPatch = errors.New("invalid patch")
)
