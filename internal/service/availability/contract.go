package availability

import "time"

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FixedTimeProvider возвращает заданное время
type FixedTimeProvider struct {
	At time.Time
}

// Now возвращает зафиксированное время
func (p *FixedTimeProvider) Now() time.Time {
	return p.At
}
