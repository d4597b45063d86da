package seed

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/emmanueletti/lightbnb/internal/config"
	"github.com/emmanueletti/lightbnb/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const smallFixture = `{
  "users": [
    {"key": "owner", "name": "Olive Owner", "email": "olive@example.com", "password": "hunter2hunter2"},
    {"key": "guest", "name": "Gus Guest", "email": "gus@example.com"}
  ],
  "properties": [
    {
      "key": "cabin", "owner": "owner", "title": "Cabin", "description": "",
      "thumbnail_photo_url": "https://images.example.com/t.jpg",
      "cover_photo_url": "https://images.example.com/c.jpg",
      "cost_per_night": "99.995",
      "street": "1 Lake Rd", "city": "Whistler", "province": "BC",
      "post_code": "V0N", "country": "Canada",
      "parking_spaces": 1, "number_of_bathrooms": 1, "number_of_bedrooms": 2
    }
  ],
  "reservations": [
    {"key": "stay", "guest": "guest", "property": "cabin", "start_date": "2035-01-10", "end_date": "2035-01-12"}
  ],
  "reviews": [
    {"reservation": "stay", "rating": 5, "message": "lovely"}
  ]
}`

// bcryptOf matches a bcrypt hash of password.
type bcryptOf string

func (b bcryptOf) Match(v any) bool {
	s, ok := v.(string)
	return ok && bcrypt.CompareHashAndPassword([]byte(s), []byte(b)) == nil
}

func newTestLoader(t *testing.T) (*Loader, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	l := NewLoader(mock, &logger, &config.SeedConfig{DefaultPassword: "default-password"})
	l.cost = bcrypt.MinCost
	return l, mock
}

var (
	userCols        = []string{"id", "name", "email", "password"}
	reservationCols = []string{"id", "guest_id", "property_id", "start_date", "end_date"}
	propertyCols    = []string{
		"id", "owner_id", "title", "description", "thumbnail_photo_url", "cover_photo_url",
		"cost_per_night", "street", "city", "province", "post_code", "country",
		"parking_spaces", "number_of_bathrooms", "number_of_bedrooms",
	}
)

func expectWrites(mock pgxmock.PgxPoolIface) {
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Olive Owner", "olive@example.com", bcryptOf("hunter2hunter2")).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "Olive Owner", "olive@example.com", "h"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Gus Guest", "gus@example.com", bcryptOf("default-password")).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(2), "Gus Guest", "gus@example.com", "h"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO properties")).
		WithArgs(int64(1), "Cabin", "", "https://images.example.com/t.jpg", "https://images.example.com/c.jpg",
			int64(10000), "1 Lake Rd", "Whistler", "BC", "V0N", "Canada", int32(1), int32(1), int32(2)).
		WillReturnRows(pgxmock.NewRows(propertyCols).AddRow(
			int64(5), int64(1), "Cabin", "", "https://images.example.com/t.jpg", "https://images.example.com/c.jpg",
			int64(10000), "1 Lake Rd", "Whistler", "BC", "V0N", "Canada", int32(1), int32(1), int32(2)))

	start := time.Date(2035, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2035, 1, 12, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
		WithArgs(int64(2), int64(5), start, end).
		WillReturnRows(pgxmock.NewRows(reservationCols).AddRow(int64(8), int64(2), int64(5), start, end))
}

func TestLoad(t *testing.T) {
	l, mock := newTestLoader(t)

	expectWrites(mock)
	mock.ExpectCopyFrom(pgx.Identifier{"property_reviews"}, reviewColumns).WillReturnResult(1)
	mock.ExpectCommit()

	summary, err := l.Load(context.Background(), []byte(smallFixture))
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 2, Properties: 1, Reservations: 1, Reviews: 1}, *summary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRollsBackOnFailure(t *testing.T) {
	l, mock := newTestLoader(t)

	expectWrites(mock)
	mock.ExpectCopyFrom(pgx.Identifier{"property_reviews"}, reviewColumns).WillReturnError(errors.New("copy failed"))
	mock.ExpectRollback()

	_, err := l.Load(context.Background(), []byte(smallFixture))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copy property reviews")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRejectsInvalidFixtureBeforeWriting(t *testing.T) {
	l, mock := newTestLoader(t)

	_, err := l.Load(context.Background(), []byte(`{"users": [{"key": "a", "name": "A", "email": "nope"}]}`))
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadWithoutDefaultPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	l := NewLoader(mock, &logger, config.DefaultSeedConfig())

	_, err = l.Load(context.Background(), []byte(smallFixture))
	require.ErrorIs(t, err, ErrNoDefaultPassword)
	assert.Contains(t, err.Error(), `"guest"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadOnlyOwnPasswordsNeedsNoDefault(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	l := NewLoader(mock, &logger, nil)
	l.cost = bcrypt.MinCost

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Olive Owner", "olive@example.com", bcryptOf("hunter2hunter2")).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "Olive Owner", "olive@example.com", "h"))
	mock.ExpectCommit()

	summary, err := l.Load(context.Background(), []byte(`{"users": [
	  {"key": "owner", "name": "Olive Owner", "email": "olive@example.com", "password": "hunter2hunter2"}
	]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseDefaultFixture(t *testing.T) {
	f, err := Parse(DefaultFixture())
	require.NoError(t, err)
	assert.NotEmpty(t, f.Users)
	assert.NotEmpty(t, f.Properties)
	assert.NotEmpty(t, f.Reservations)
	assert.NotEmpty(t, f.Reviews)
}

func TestParseReportsBrokenReferences(t *testing.T) {
	_, err := Parse([]byte(`{
	  "users": [{"key": "a", "name": "A", "email": "a@example.com"}, {"key": "a", "name": "B", "email": "b@example.com"}],
	  "reservations": [{"key": "r", "guest": "zed", "property": "nowhere", "start_date": "2030-01-02", "end_date": "2030-01-01"}],
	  "reviews": [{"reservation": "missing", "rating": 3}]
	}`))
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)

	fields := map[string]string{}
	for _, fe := range httpErr.Errors {
		fields[fe.Field] = fe.Error
	}
	assert.Equal(t, `duplicate key "a"`, fields["users[1].key"])
	assert.Equal(t, `unknown user "zed"`, fields["reservations[0].guest"])
	assert.Equal(t, `unknown property "nowhere"`, fields["reservations[0].property"])
	assert.Equal(t, "must be after start_date", fields["reservations[0].end_date"])
	assert.Equal(t, `unknown reservation "missing"`, fields["reviews[0].reservation"])
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"users": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode fixture")
}

func TestReadFixture(t *testing.T) {
	data, err := ReadFixture("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFixture(), data)

	_, err = ReadFixture("/does/not/exist.json")
	require.Error(t, err)
}
