// Package seed loads a JSON fixture of users, properties, reservations
// and reviews into an empty or existing schema.
//
// The whole fixture is written in a single transaction: either every
// record lands or none does.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/emmanueletti/lightbnb/internal/config"
	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/repository"
	"github.com/emmanueletti/lightbnb/internal/service"
	"github.com/emmanueletti/lightbnb/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

//go:embed fixtures/lightbnb.json
var defaultFixture []byte

// reviewColumns is the COPY column order for property_reviews.
var reviewColumns = []string{"guest_id", "property_id", "reservation_id", "rating", "message"}

// TxBeginner is satisfied by *pgxpool.Pool and *pgx.Conn.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Summary counts the rows written by Load.
type Summary struct {
	Users        int `json:"users"`
	Properties   int `json:"properties"`
	Reservations int `json:"reservations"`
	Reviews      int `json:"reviews"`
}

// Loader writes fixtures through the repositories.
type Loader struct {
	db              TxBeginner
	log             *zerolog.Logger
	defaultPassword string
	cost            int
}

// NewLoader returns a Loader. A nil cfg uses DefaultSeedConfig.
func NewLoader(db TxBeginner, logger *zerolog.Logger, cfg *config.SeedConfig) *Loader {
	if cfg == nil {
		cfg = config.DefaultSeedConfig()
	}
	return &Loader{
		db:              db,
		log:             logger,
		defaultPassword: cfg.DefaultPassword,
		cost:            bcrypt.DefaultCost,
	}
}

// DefaultFixture returns the fixture compiled into the binary.
func DefaultFixture() []byte {
	return defaultFixture
}

// ReadFixture reads a fixture from path, or returns the embedded one when
// path is empty.
func ReadFixture(path string) ([]byte, error) {
	if path == "" {
		return DefaultFixture(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixture %s", path)
	}
	return data, nil
}

// Parse decodes and validates a fixture.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode fixture")
	}
	if err := validation.Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ErrNoDefaultPassword is returned when a fixture user has no password and
// seed.default_password is not configured.
var ErrNoDefaultPassword = errors.New("fixture user without password: set LIGHTBNB_SEED_DEFAULT_PASSWORD")

// Load parses data and writes it in one transaction.
func (l *Loader) Load(ctx context.Context, data []byte) (*Summary, error) {
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if l.defaultPassword == "" {
		for _, u := range f.Users {
			if u.Password == "" {
				return nil, errors.Wrapf(ErrNoDefaultPassword, "user %q", u.Key)
			}
		}
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "begin seed transaction")
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback(ctx) }()

	summary, err := l.write(ctx, tx, f)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "commit seed transaction")
	}

	l.log.Info().
		Int("users", summary.Users).
		Int("properties", summary.Properties).
		Int("reservations", summary.Reservations).
		Int("reviews", summary.Reviews).
		Msg("fixture loaded")
	return summary, nil
}

func (l *Loader) write(ctx context.Context, tx pgx.Tx, f *Fixture) (*Summary, error) {
	repos := repository.NewRepositories(tx)
	svcs := service.NewServices(repos, l.log)
	summary := &Summary{}

	userIDs := make(map[string]int64, len(f.Users))
	for _, u := range f.Users {
		password := u.Password
		if password == "" {
			password = l.defaultPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
		if err != nil {
			return nil, errors.Wrapf(err, "hash password for user %q", u.Key)
		}

		created, err := svcs.Users.Register(ctx, model.NewUser{
			Name:     u.Name,
			Email:    u.Email,
			Password: string(hash),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "seed user %q", u.Key)
		}
		userIDs[u.Key] = created.ID
		summary.Users++
	}

	propertyIDs := make(map[string]int64, len(f.Properties))
	for _, p := range f.Properties {
		in := p.CreatePropertyInput
		in.OwnerID = userIDs[p.Owner]

		created, err := svcs.Properties.Create(ctx, in)
		if err != nil {
			return nil, errors.Wrapf(err, "seed property %q", p.Key)
		}
		propertyIDs[p.Key] = created.ID
		summary.Properties++
	}

	type booking struct{ id, guestID, propertyID int64 }
	bookings := make(map[string]booking, len(f.Reservations))
	for _, r := range f.Reservations {
		start, end, err := r.dates()
		if err != nil {
			return nil, errors.Wrapf(err, "seed reservation %q", r.Key)
		}

		booked := model.NewReservation{
			GuestID:    userIDs[r.Guest],
			PropertyID: propertyIDs[r.Property],
			StartDate:  start,
			EndDate:    end,
		}
		if err := validation.Validate(&booked); err != nil {
			return nil, errors.Wrapf(err, "seed reservation %q", r.Key)
		}

		created, err := repos.Reservations.Create(ctx, booked)
		if err != nil {
			return nil, errors.Wrapf(err, "seed reservation %q", r.Key)
		}
		bookings[r.Key] = booking{id: created.ID, guestID: created.GuestID, propertyID: created.PropertyID}
		summary.Reservations++
	}

	if len(f.Reviews) > 0 {
		rows := make([][]any, 0, len(f.Reviews))
		for _, rv := range f.Reviews {
			b := bookings[rv.Reservation]
			rows = append(rows, []any{b.guestID, b.propertyID, b.id, rv.Rating, rv.Message})
		}

		n, err := tx.CopyFrom(ctx, pgx.Identifier{"property_reviews"}, reviewColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return nil, errors.Wrap(err, "copy property reviews")
		}
		summary.Reviews = int(n)
	}

	return summary, nil
}
