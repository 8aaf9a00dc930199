package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/healthdash/internal/health"

	"go.uber.org/multierr"
)

var (
	ErrInvalidGoal  = errors.New("goal must be positive")
	ErrInvalidField = errors.New("invalid field")
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// Form is the editable account settings. Submitted forms are validated
// and then discarded, the user record is never updated.
type Form struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	HeightCm             int    `json:"height,omitempty"`
	WeightKg             int    `json:"weight,omitempty"`
	Age                  int    `json:"age,omitempty"`
	DailyStepGoal        int    `json:"dailyStepGoal"`
	DailyCalorieGoal     int    `json:"dailyCalorieGoal"`
	DailyWaterGoalMl     int    `json:"dailyWaterGoal"`
	ThemePreference      Theme  `json:"themePreference"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

// FormFromUser prefills the form, with the dark theme and notifications on.
func FormFromUser(user health.User) Form {
	return Form{
		Name:                 user.Name,
		Email:                user.Email,
		HeightCm:             user.HeightCm,
		WeightKg:             user.WeightKg,
		Age:                  user.Age,
		DailyStepGoal:        user.DailyStepGoal,
		DailyCalorieGoal:     user.DailyCalorieGoal,
		DailyWaterGoalMl:     user.DailyWaterGoalMl,
		ThemePreference:      ThemeDark,
		NotificationsEnabled: true,
	}
}

// Validate checks each field and returns all the problems found, combined.
func (f Form) Validate() error {
	var err error

	if strings.TrimSpace(f.Name) == "" {
		err = multierr.Append(err, fmt.Errorf("%w: name is empty", ErrInvalidField))
	}
	if !strings.Contains(f.Email, "@") {
		err = multierr.Append(err, fmt.Errorf("%w: email [%s]", ErrInvalidField, f.Email))
	}
	// body measures are optional, zero means not set
	if f.HeightCm < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: height [%d]", ErrInvalidField, f.HeightCm))
	}
	if f.WeightKg < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: weight [%d]", ErrInvalidField, f.WeightKg))
	}
	if f.Age < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: age [%d]", ErrInvalidField, f.Age))
	}

	if f.DailyStepGoal <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: daily step goal [%d]", ErrInvalidGoal, f.DailyStepGoal))
	}
	if f.DailyCalorieGoal <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: daily calorie goal [%d]", ErrInvalidGoal, f.DailyCalorieGoal))
	}
	if f.DailyWaterGoalMl <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: daily water goal [%d]", ErrInvalidGoal, f.DailyWaterGoalMl))
	}

	if !f.ThemePreference.IsValid() {
		err = multierr.Append(err, fmt.Errorf("%w: theme [%s]", ErrInvalidField, f.ThemePreference))
	}

	return err
}

// Messages flattens a Validate error for the response body.
func Messages(err error) []string {
	errs := multierr.Errors(err)
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Error())
	}
	return messages
}
