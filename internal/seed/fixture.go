package seed

import (
	"fmt"
	"time"

	"github.com/emmanueletti/lightbnb/internal/service"
	"github.com/emmanueletti/lightbnb/internal/validation"
	"github.com/go-playground/validator/v10"
)

// Fixture is a self-contained data set. Records refer to each other by
// their fixture Key, never by database id.
type Fixture struct {
	Users        []UserFixture        `json:"users" validate:"dive"`
	Properties   []PropertyFixture    `json:"properties" validate:"dive"`
	Reservations []ReservationFixture `json:"reservations" validate:"dive"`
	Reviews      []ReviewFixture      `json:"reviews" validate:"dive"`
}

// UserFixture is a user to register. An empty Password gets the
// configured default.
type UserFixture struct {
	Key      string `json:"key" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// PropertyFixture is a listing owned by the user with key Owner.
type PropertyFixture struct {
	Key   string `json:"key" validate:"required"`
	Owner string `json:"owner" validate:"required"`
	service.CreatePropertyInput
}

// ReservationFixture books Property for Guest. Dates are YYYY-MM-DD.
type ReservationFixture struct {
	Key       string `json:"key" validate:"required"`
	Guest     string `json:"guest" validate:"required"`
	Property  string `json:"property" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// ReviewFixture rates the stay booked by Reservation.
type ReviewFixture struct {
	Reservation string `json:"reservation" validate:"required"`
	Rating      int16  `json:"rating" validate:"min=1,max=5"`
	Message     string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field tags, then that every key is unique and every
// reference resolves.
func (f *Fixture) Validate() error {
	if err := validate.Struct(f); err != nil {
		return err
	}

	var problems validation.CustomValidationErrors
	add := func(field, format string, args ...any) {
		problems = append(problems, validation.CustomValidationError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	users := map[string]bool{}
	for i, u := range f.Users {
		if users[u.Key] {
			add(fmt.Sprintf("users[%d].key", i), "duplicate key %q", u.Key)
		}
		users[u.Key] = true
	}

	properties := map[string]bool{}
	for i, p := range f.Properties {
		if properties[p.Key] {
			add(fmt.Sprintf("properties[%d].key", i), "duplicate key %q", p.Key)
		}
		properties[p.Key] = true
		if !users[p.Owner] {
			add(fmt.Sprintf("properties[%d].owner", i), "unknown user %q", p.Owner)
		}
	}

	reservations := map[string]bool{}
	for i, r := range f.Reservations {
		if reservations[r.Key] {
			add(fmt.Sprintf("reservations[%d].key", i), "duplicate key %q", r.Key)
		}
		reservations[r.Key] = true
		if !users[r.Guest] {
			add(fmt.Sprintf("reservations[%d].guest", i), "unknown user %q", r.Guest)
		}
		if !properties[r.Property] {
			add(fmt.Sprintf("reservations[%d].property", i), "unknown property %q", r.Property)
		}
		start, end, _ := r.dates()
		if !end.After(start) {
			add(fmt.Sprintf("reservations[%d].end_date", i), "must be after start_date")
		}
	}

	for i, rv := range f.Reviews {
		if !reservations[rv.Reservation] {
			add(fmt.Sprintf("reviews[%d].reservation", i), "unknown reservation %q", rv.Reservation)
		}
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}

func (r ReservationFixture) dates() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
