package booking_flow

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Поля формы в ошибках валидации
const (
	fieldName   = "name"
	fieldEmail  = "email"
	fieldPhone  = "phone"
	fieldNotes  = "notes"
	fieldAnswer = "answers."
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// normalizeDetails обрезает пробелы во всех полях формы
func normalizeDetails(form DetailsForm) DetailsForm {
	normalized := DetailsForm{
		Name:  strings.TrimSpace(form.Name),
		Email: strings.TrimSpace(form.Email),
		Phone: strings.TrimSpace(form.Phone),
		Notes: strings.TrimSpace(form.Notes),
	}
	if len(form.Answers) > 0 {
		normalized.Answers = make(map[string]string, len(form.Answers))
		for id, answer := range form.Answers {
			normalized.Answers[id] = strings.TrimSpace(answer)
		}
	}
	return normalized
}

// validateDetails проверяет форму гостя и возвращает ошибки по полям
func validateDetails(form DetailsForm, meetingType *domain.MeetingType) map[string]string {
	fields := make(map[string]string)

	switch {
	case form.Name == "":
		fields[fieldName] = "name is required"
	case utf8.RuneCountInString(form.Name) > domain.MaxGuestNameLength:
		fields[fieldName] = fmt.Sprintf("name must be at most %d characters", domain.MaxGuestNameLength)
	}

	if form.Email == "" {
		fields[fieldEmail] = "email is required"
	} else if !isEmail(form.Email) {
		fields[fieldEmail] = "email is not a valid address"
	}

	if meetingType.Platform.RequiresPhone() && form.Phone == "" {
		fields[fieldPhone] = "phone is required for phone meetings"
	} else if form.Phone != "" && !isPhone(form.Phone) {
		fields[fieldPhone] = "phone is not a valid number"
	}

	for _, q := range meetingType.Questions {
		answer := form.Answers[q.ID]
		switch {
		case q.Required && answer == "":
			fields[fieldAnswer+q.ID] = "answer is required"
		case utf8.RuneCountInString(answer) > domain.MaxAnswerLength:
			fields[fieldAnswer+q.ID] = fmt.Sprintf("answer must be at most %d characters", domain.MaxAnswerLength)
		}
	}

	if utf8.RuneCountInString(form.Notes) > domain.MaxNotesLength {
		fields[fieldNotes] = fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLength)
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// isEmail принимает только голый адрес RFC 5322 без отображаемого имени
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@")+1:], ".")
}

// isPhone допускает цифры, пробелы, дефисы, скобки и ведущий плюс
func isPhone(s string) bool {
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// buildAnswers собирает ответы в порядке вопросов типа встречи, пустые ответы пропускаются
func buildAnswers(form DetailsForm, meetingType *domain.MeetingType) []domain.QuestionAnswer {
	answers := make([]domain.QuestionAnswer, 0, len(meetingType.Questions))
	for _, q := range meetingType.Questions {
		answer := form.Answers[q.ID]
		if answer == "" {
			continue
		}
		answers = append(answers, domain.QuestionAnswer{
			QuestionID: q.ID,
			Question:   q.Text,
			Answer:     answer,
		})
	}
	return answers
}

// describeFields собирает ошибки полей в одну строку в стабильном порядке
func describeFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
