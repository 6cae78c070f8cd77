// Package order назначает порядковые номера событиям документа.
package order

import "sync"

// Counter монотонный счётчик порядка событий одного документа.
// Номера строго возрастают и не повторяются.
type Counter struct {
	current int64      // последний выданный номер
	mu      sync.Mutex // мьютекс для потокобезопасности
}

// NewCounter создаёт счётчик, продолжающий нумерацию после start.
func NewCounter(start int64) *Counter {
	return &Counter{current: start}
}

// Next увеличивает счётчик и возвращает новый номер.
// Используется при создании нового локального события.
func (c *Counter) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current++
	return c.current
}

// Observe учитывает номер, уже занятый в журнале (загрузка, outbox).
// Следующий Next вернёт значение больше observed.
func (c *Counter) Observe(observed int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if observed > c.current {
		c.current = observed
	}
}

// Current возвращает последний выданный номер без изменения счётчика.
func (c *Counter) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}
