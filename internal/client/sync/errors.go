package sync

import "errors"

var (
	// ErrOffline сессия работает без хранилища
	ErrOffline = errors.New("session is offline")
	// ErrSessionClosed сессия уже закрыта
	ErrSessionClosed = errors.New("session is closed")
)
