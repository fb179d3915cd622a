package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CustomMeetingTypeID значение {meetingTypeId} для произвольной встречи
const CustomMeetingTypeID = "custom"

// PathInt64 извлекает положительный int64 из переменной маршрута
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// MeetingTypeRefFromPath разбирает {meetingTypeId}.
// Для "custom" длительность и платформа берутся из query параметров duration и platform
func MeetingTypeRefFromPath(r *http.Request) (domain.MeetingTypeRef, error) {
	raw := mux.Vars(r)["meetingTypeId"]
	if raw != CustomMeetingTypeID {
		id, err := PathInt64(r, "meetingTypeId")
		if err != nil {
			return domain.MeetingTypeRef{}, err
		}
		return domain.MeetingTypeRef{ID: id}, nil
	}

	query := r.URL.Query()
	duration, err := strconv.Atoi(query.Get("duration"))
	if err != nil {
		return domain.MeetingTypeRef{}, fmt.Errorf("invalid duration %q", query.Get("duration"))
	}
	platform, err := domain.ParsePlatform(query.Get("platform"))
	if err != nil {
		return domain.MeetingTypeRef{}, err
	}

	return domain.MeetingTypeRef{CustomDurationMinutes: duration, CustomPlatform: platform}, nil
}
