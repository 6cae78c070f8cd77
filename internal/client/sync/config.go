package sync

import (
	"time"

	"github.com/iudanet/inkboard/internal/models"
)

// Значения по умолчанию
const (
	DefaultFlushDelay       = 600 * time.Millisecond
	DefaultSnapshotInterval = 50
	DefaultRetryBase        = 500 * time.Millisecond
	DefaultRetryMax         = 30 * time.Second
	DefaultFlushTimeout     = 10 * time.Second
	DefaultBroadcastBuffer  = 64
)

// Config параметры сессий синхронизации
type Config struct {
	CanvasSize models.CanvasSize
	// FlushDelay пауза после последнего события, после которой пакет отправляется в хранилище
	FlushDelay time.Duration
	// RetryBase начальная задержка повтора после неудачной отправки
	RetryBase time.Duration
	// RetryMax верхняя граница задержки повтора
	RetryMax time.Duration
	// FlushTimeout таймаут одной фоновой отправки
	FlushTimeout time.Duration
	// SnapshotInterval снапшот пишется, когда порядок события кратен интервалу
	SnapshotInterval int64
	// BroadcastBuffer размер очереди сообщений для участников; при переполнении сообщения теряются
	BroadcastBuffer int
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		CanvasSize:       models.DefaultCanvasSize(),
		FlushDelay:       DefaultFlushDelay,
		RetryBase:        DefaultRetryBase,
		RetryMax:         DefaultRetryMax,
		FlushTimeout:     DefaultFlushTimeout,
		SnapshotInterval: DefaultSnapshotInterval,
		BroadcastBuffer:  DefaultBroadcastBuffer,
	}
}

// withDefaults подставляет значения по умолчанию вместо нулевых.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CanvasSize == (models.CanvasSize{}) {
		c.CanvasSize = d.CanvasSize
	}
	if c.FlushDelay <= 0 {
		c.FlushDelay = d.FlushDelay
	}
	if c.RetryBase <= 0 {
		c.RetryBase = d.RetryBase
	}
	if c.RetryMax <= 0 {
		c.RetryMax = d.RetryMax
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = d.FlushTimeout
	}
	if c.SnapshotInterval <= 0 {
		c.SnapshotInterval = d.SnapshotInterval
	}
	if c.BroadcastBuffer <= 0 {
		c.BroadcastBuffer = d.BroadcastBuffer
	}
	return c
}
