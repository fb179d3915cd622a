package domain

import "errors"

// Классы ошибок планировщика
// Конкретные ошибки оборачивают их через fmt.Errorf("%w: ...")
var (
	// ErrValidation некорректный ввод гостя
	ErrValidation = errors.New("validation error")

	// ErrAdmissibility слот перестал удовлетворять правилам хоста
	ErrAdmissibility = errors.New("slot is not admissible")

	// ErrConflict слот занят конкурентным бронированием
	ErrConflict = errors.New("slot is no longer available")

	// ErrCollaborator ошибка ввода-вывода внешнего компонента (БД, провайдер ссылок)
	ErrCollaborator = errors.New("collaborator error")

	// ErrConfiguration некорректные данные правила или типа встречи
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput входные параметры вычисления вне допустимой области
	ErrInvalidInput = errors.New("invalid input")
)
