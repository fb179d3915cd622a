package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/rules"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Scenario описание хоста для офлайн расчета слотов
type Scenario struct {
	Now                time.Time       `yaml:"now"`
	Timezone           string          `yaml:"timezone"`
	Policy             string          `yaml:"policy"`
	EnvelopeStart      string          `yaml:"envelope_start"`
	EnvelopeEnd        string          `yaml:"envelope_end"`
	GranularityMinutes int             `yaml:"granularity_minutes"`
	HorizonDays        int             `yaml:"horizon_days"`
	MeetingType        MeetingTypeSpec `yaml:"meeting_type"`
	Rules              []rules.RawRule `yaml:"rules"`
	Bookings           []BookingSpec   `yaml:"bookings"`
}

// MeetingTypeSpec тип встречи сценария
type MeetingTypeSpec struct {
	ID                    int64  `yaml:"id"`
	Name                  string `yaml:"name"`
	DurationMinutes       int    `yaml:"duration_minutes"`
	BufferBeforeMinutes   int    `yaml:"buffer_before_minutes"`
	BufferAfterMinutes    int    `yaml:"buffer_after_minutes"`
	AdvanceNoticeMinutes  int    `yaml:"advance_notice_minutes"`
	MaxAdvanceBookingDays int    `yaml:"max_advance_booking_days"`
	Platform              string `yaml:"platform"`
}

// BookingSpec существующее бронирование сценария
type BookingSpec struct {
	Start           time.Time `yaml:"start"`
	DurationMinutes int       `yaml:"duration_minutes"`
	Status          string    `yaml:"status"`
}

// Env собранные из сценария компоненты
type Env struct {
	Generator   *availability.Generator
	MeetingType *domain.MeetingType
	Rules       []domain.Rule
	Bookings    []domain.Booking
}

// LoadScenario читает сценарий из YAML файла
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario разбирает YAML сценария и подставляет значения по умолчанию
func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{
		Timezone:           "UTC",
		Policy:             string(availability.ZeroAvailabilityAdmit),
		EnvelopeStart:      string(domain.DefaultEnvelopeStart),
		EnvelopeEnd:        string(domain.DefaultEnvelopeEnd),
		GranularityMinutes: domain.DefaultGranularityMinutes,
		HorizonDays:        domain.DefaultHorizonDays,
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.MeetingType.MaxAdvanceBookingDays == 0 {
		s.MeetingType.MaxAdvanceBookingDays = domain.AdHocMaxAdvanceBookingDays
	}
	if s.MeetingType.Platform == "" {
		s.MeetingType.Platform = string(domain.PlatformGoogleMeet)
	}
	return s, nil
}

// Build собирает генератор, тип встречи, правила и бронирования.
// Некорректные правила помещаются в карантин с предупреждением
func (s *Scenario) Build(log rules.Logger) (*Env, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scenario timezone %q: %w", s.Timezone, err)
	}

	var tp availability.TimeProvider = &availability.RealTimeProvider{}
	if !s.Now.IsZero() {
		tp = &availability.FixedTimeProvider{At: s.Now}
	}

	evaluator := availability.NewEvaluator(availability.ZeroAvailabilityPolicy(s.Policy), tp)
	generator, err := availability.NewGenerator(availability.Config{
		EnvelopeStart:      types.TimeString(s.EnvelopeStart),
		EnvelopeEnd:        types.TimeString(s.EnvelopeEnd),
		GranularityMinutes: s.GranularityMinutes,
		HorizonDays:        s.HorizonDays,
		Location:           loc,
	}, evaluator)
	if err != nil {
		return nil, err
	}

	platform, err := domain.ParsePlatform(s.MeetingType.Platform)
	if err != nil {
		return nil, err
	}
	mt := &domain.MeetingType{
		ID:                    s.MeetingType.ID,
		Name:                  s.MeetingType.Name,
		DurationMinutes:       s.MeetingType.DurationMinutes,
		BufferBeforeMinutes:   s.MeetingType.BufferBeforeMinutes,
		BufferAfterMinutes:    s.MeetingType.BufferAfterMinutes,
		AdvanceNoticeMinutes:  s.MeetingType.AdvanceNoticeMinutes,
		MaxAdvanceBookingDays: s.MeetingType.MaxAdvanceBookingDays,
		Platform:              platform,
		Active:                true,
	}
	if err := mt.Validate(); err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(s.Bookings))
	for _, b := range s.Bookings {
		status := domain.BookingStatus(b.Status)
		if status == "" {
			status = domain.StatusConfirmed
		}
		bookings = append(bookings, domain.Booking{
			StartTime:       b.Start,
			DurationMinutes: b.DurationMinutes,
			Status:          status,
		})
	}

	return &Env{
		Generator:   generator,
		MeetingType: mt,
		Rules:       rules.DecodeAll(s.Rules, log),
		Bookings:    bookings,
	}, nil
}
