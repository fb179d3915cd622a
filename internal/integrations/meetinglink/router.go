package meetinglink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ErrProviderFailed возвращается, когда провайдер не смог создать ссылку
var ErrProviderFailed = errors.New("meetinglink: provider failed")

// Provider создает ссылку на конференцию одной платформы
type Provider interface {
	CreateMeetingLink(ctx context.Context, title string, start time.Time, durationMinutes int) (string, error)
}

// Revoker провайдер, умеющий отозвать созданную ссылку
type Revoker interface {
	RevokeMeetingLink(ctx context.Context, link string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Router выбирает провайдера по платформе встречи
type Router struct {
	providers map[domain.Platform]Provider
	log       Logger
}

// NewRouter создает роутер без провайдеров
func NewRouter(log Logger) *Router {
	return &Router{
		providers: make(map[domain.Platform]Provider),
		log:       log,
	}
}

// Register регистрирует провайдера платформы
func (r *Router) Register(platform domain.Platform, provider Provider) {
	r.providers[platform] = provider
}

// CreateMeetingLink возвращает ссылку для видеоплатформ.
// Для платформ без ссылки и для платформ без настроенного провайдера возвращает nil без ошибки
func (r *Router) CreateMeetingLink(ctx context.Context, platform domain.Platform, title string, start time.Time, durationMinutes int) (*string, error) {
	if !platform.NeedsMeetingLink() {
		return nil, nil
	}

	provider, ok := r.providers[platform]
	if !ok {
		r.log.Warn("meetinglink: no provider configured for platform=%s, booking continues without link", platform)
		return nil, nil
	}

	link, err := provider.CreateMeetingLink(ctx, title, start, durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: platform=%s: %v", ErrProviderFailed, platform, err)
	}
	return &link, nil
}

// RevokeMeetingLink отзывает ссылку, если провайдер платформы это поддерживает.
// Для провайдеров без отзыва ничего не делает
func (r *Router) RevokeMeetingLink(ctx context.Context, platform domain.Platform, link string) error {
	provider, ok := r.providers[platform]
	if !ok {
		return nil
	}

	revoker, ok := provider.(Revoker)
	if !ok {
		return nil
	}

	if err := revoker.RevokeMeetingLink(ctx, link); err != nil {
		return fmt.Errorf("%w: platform=%s: %v", ErrProviderFailed, platform, err)
	}
	return nil
}
