// Package iocli ввод-вывод консольного клиента.
package iocli

//go:generate moq -out io_mock.go . IO

// IO консольный ввод-вывод команд
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadLine печатает prompt и читает строку без перевода строки.
	// В конце ввода возвращает io.EOF.
	ReadLine(prompt string) (string, error)
	// Interactive сообщает, подключён ли ввод к терминалу
	Interactive() bool
	Write(p []byte) (n int, err error)
}
