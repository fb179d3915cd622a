package linkservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrUnsupportedPlatform возвращается, когда шлюз не поддерживает платформу
	ErrUnsupportedPlatform = errors.New("linkservice client: unsupported platform")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("linkservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("linkservice client: invalid response")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// createLinkRequest тело запроса на создание ссылки
type createLinkRequest struct {
	Platform        string    `json:"platform"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// createLinkResponse ответ шлюза конференций
type createLinkResponse struct {
	URL string `json:"url"`
}

// Client клиент шлюза конференций (zoom, teams)
type Client struct {
	baseURL    string
	platform   string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза для платформы
func NewClient(baseURL, platform string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		platform: platform,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateMeetingLink запрашивает ссылку на конференцию
func (c *Client) CreateMeetingLink(ctx context.Context, title string, start time.Time, durationMinutes int) (string, error) {
	url := fmt.Sprintf("%s/internal/meeting-links", c.baseURL)

	payload, err := json.Marshal(createLinkRequest{
		Platform:        c.platform,
		Title:           title,
		StartTime:       start.UTC(),
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusUnprocessableEntity:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, c.platform)
	default:
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var link createLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if link.URL == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidResponse)
	}

	c.log.Info("Meeting link created for platform=%s", c.platform)
	return link.URL, nil
}
