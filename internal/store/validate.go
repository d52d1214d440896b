package store

import (
	"fmt"
	"regexp"
	"time"

	"studypal/internal/core"
)

const dateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

var (
	validPriorities = map[string]bool{
		core.PriorityLow:    true,
		core.PriorityMedium: true,
		core.PriorityHigh:   true,
	}
	validStatuses = map[string]bool{
		core.StatusPending:   true,
		core.StatusCompleted: true,
		core.StatusMissed:    true,
	}
)

// validateNewSchedule checks all required fields of a schedule being
// created. The date must not be in the past.
func validateNewSchedule(sched core.Schedule, today time.Time) error {
	if err := validateSubject(sched.Subject); err != nil {
		return err
	}
	if err := validateTopic(sched.Topic); err != nil {
		return err
	}
	if err := validateDate(sched.Date, true, today); err != nil {
		return err
	}
	return validateCommon(sched)
}

// validateUpdatedSchedule checks the merged result of a partial update.
// The past-date rule only applies when the update changed the date.
func validateUpdatedSchedule(sched core.Schedule, dateChanged bool, today time.Time) error {
	if err := validateSubject(sched.Subject); err != nil {
		return err
	}
	if err := validateTopic(sched.Topic); err != nil {
		return err
	}
	if err := validateDate(sched.Date, dateChanged, today); err != nil {
		return err
	}
	return validateCommon(sched)
}

func validateSubject(subject string) error {
	if len(subject) < 2 || len(subject) > 50 {
		return fmt.Errorf("%w: subject must be between 2 and 50 characters", ErrInvalidInput)
	}
	return nil
}

func validateTopic(topic string) error {
	if len(topic) < 2 || len(topic) > 100 {
		return fmt.Errorf("%w: topic must be between 2 and 100 characters", ErrInvalidInput)
	}
	return nil
}

func validateDate(date string, rejectPast bool, today time.Time) error {
	parsed, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if rejectPast && parsed.Before(today) {
		return fmt.Errorf("%w: date cannot be in the past", ErrInvalidInput)
	}
	return nil
}

func validateCommon(sched core.Schedule) error {
	if !timePattern.MatchString(sched.Time) {
		return fmt.Errorf("%w: time must be in HH:MM format (24-hour)", ErrInvalidInput)
	}
	if len(sched.Description) > 500 {
		return fmt.Errorf("%w: description cannot exceed 500 characters", ErrInvalidInput)
	}
	if !validPriorities[sched.Priority] {
		return fmt.Errorf("%w: priority must be low, medium, or high", ErrInvalidInput)
	}
	if !validStatuses[sched.Status] {
		return fmt.Errorf("%w: status must be pending, completed, or missed", ErrInvalidInput)
	}
	return nil
}
