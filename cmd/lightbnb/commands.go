package main

import (
	"fmt"

	"github.com/emmanueletti/lightbnb/internal/database"
	"github.com/emmanueletti/lightbnb/internal/model"
	"github.com/emmanueletti/lightbnb/internal/seed"
	"github.com/emmanueletti/lightbnb/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newMigrateCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if list {
				names, err := database.MigrationNames()
				if err != nil {
					return err
				}
				return printJSON(cmd, names)
			}
			return database.Migrate(cmd.Context(), &a.log, a.cfg)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print the embedded migrations without applying them")
	return cmd
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the database is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			h := db.Check(cmd.Context(), a.cfg.Primary.Env)
			if err := printJSON(cmd, h); err != nil {
				return err
			}
			if !h.Healthy() {
				return fmt.Errorf("database unhealthy: %s", h.Error)
			}
			a.log.Info().Str("response_time", h.ResponseTime).Msg("database health check passed")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a JSON fixture in a single transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := seed.ReadFixture(file)
			if err != nil {
				return err
			}

			db, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			summary, err := seed.NewLoader(db.Pool, &a.log, a.cfg.Seed).Load(cmd.Context(), data)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture path (defaults to the built-in fixture)")
	return cmd
}

func newUsersCmd(a *app) *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Look up users"}

	var (
		email string
		id    int64
	)
	get := &cobra.Command{
		Use:   "get",
		Short: "Get a user by --email or --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withServices(cmd.Context(), func(svcs *service.Services) error {
				var (
					u   *model.User
					err error
				)
				if cmd.Flags().Changed("email") {
					u, err = svcs.Users.GetByEmail(cmd.Context(), email)
				} else {
					u, err = svcs.Users.Get(cmd.Context(), id)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd, u)
			})
		},
	}
	get.Flags().StringVar(&email, "email", "", "exact, case-sensitive email")
	get.Flags().Int64Var(&id, "id", 0, "user id")
	get.MarkFlagsMutuallyExclusive("email", "id")
	get.MarkFlagsOneRequired("email", "id")

	users.AddCommand(get)
	return users
}

func newPropertiesCmd(a *app) *cobra.Command {
	properties := &cobra.Command{Use: "properties", Short: "Search properties"}

	var limit int
	search := &cobra.Command{
		Use:   "search",
		Short: "Search properties, cheapest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := searchFilter(cmd.Flags())
			if err != nil {
				return err
			}
			return a.withServices(cmd.Context(), func(svcs *service.Services) error {
				found, err := svcs.Properties.Search(cmd.Context(), filter, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd, found)
			})
		},
	}
	addSearchFlags(search.Flags())
	search.Flags().IntVar(&limit, "limit", model.DefaultLimit, "maximum number of results")

	properties.AddCommand(search)
	return properties
}

func newReservationsCmd(a *app) *cobra.Command {
	reservations := &cobra.Command{Use: "reservations", Short: "List reservations"}

	var (
		guestID int64
		limit   int
	)
	upcoming := &cobra.Command{
		Use:   "upcoming",
		Short: "List a guest's reservations that start after today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withServices(cmd.Context(), func(svcs *service.Services) error {
				out, err := svcs.Reservations.Upcoming(cmd.Context(), guestID, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
	upcoming.Flags().Int64Var(&guestID, "guest-id", 0, "guest user id")
	upcoming.Flags().IntVar(&limit, "limit", model.DefaultLimit, "maximum number of results")
	_ = upcoming.MarkFlagRequired("guest-id")

	reservations.AddCommand(upcoming)
	return reservations
}

func addSearchFlags(fs *pflag.FlagSet) {
	fs.String("city", "", "case-insensitive substring of the city")
	fs.Int64("owner-id", 0, "only properties owned by this user")
	fs.String("min-price", "", "minimum nightly price, in dollars")
	fs.String("max-price", "", "maximum nightly price, in dollars")
	fs.Float64("min-rating", 0, "minimum average review rating")
}

// searchFilter builds a PropertySearch from the flags the user actually
// set; unset flags leave their filter nil.
func searchFilter(fs *pflag.FlagSet) (model.PropertySearch, error) {
	var f model.PropertySearch

	if fs.Changed("city") {
		city, _ := fs.GetString("city")
		f.City = &city
	}
	if fs.Changed("owner-id") {
		owner, _ := fs.GetInt64("owner-id")
		f.OwnerID = &owner
	}
	for _, p := range []struct {
		flag string
		dst  **decimal.Decimal
	}{
		{"min-price", &f.MinimumPricePerNight},
		{"max-price", &f.MaximumPricePerNight},
	} {
		if !fs.Changed(p.flag) {
			continue
		}
		raw, _ := fs.GetString(p.flag)
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return model.PropertySearch{}, fmt.Errorf("invalid --%s %q: %w", p.flag, raw, err)
		}
		*p.dst = &d
	}
	if fs.Changed("min-rating") {
		rating, _ := fs.GetFloat64("min-rating")
		f.MinimumRating = &rating
	}
	return f, nil
}
