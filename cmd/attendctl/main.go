package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sitecrew/workforce-backend/internal/app"
	"github.com/sitecrew/workforce-backend/internal/config"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
)

var rootCmd = &cobra.Command{
	Use:   "attendctl",
	Short: "Sitecrew workforce CLI",
	Long: `attendctl manages the sitecrew workforce store from the command line.
- migrate: apply the embedded PostgreSQL schema.
- seed: load the demo organization (admin, two foremen, five laborers).
- user create: add an account with a bcrypt password hash.
- report: print attendance, leave and team reports as a given user would see them.
Settings come from .env and the DB_*/STORE_TYPE/APP_TIMEZONE environment, with
ATTENDCTL_* variables and flags taking precedence.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("ATTENDCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("store", "", "record store: postgres or memory (overrides STORE_TYPE)")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string (overrides DB_*)")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone for calendar days (overrides APP_TIMEZONE)")
	rootCmd.PersistentFlags().String("as", "", "email of the account the command acts as")
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("database-url", rootCmd.PersistentFlags().Lookup("database-url"))
	_ = viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))
	_ = viper.BindPFlag("as", rootCmd.PersistentFlags().Lookup("as"))
}

func registerCommands() {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(reportCmd())
}

// loadConfig layers the CLI overrides on top of the shared configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("store"); v != "" {
		cfg.Store.Type = v
	}
	if v := viper.GetString("database-url"); v != "" {
		cfg.Database.URL = v
	}
	if v := viper.GetString("timezone"); v != "" {
		cfg.App.Timezone = v
	}
	if err := cfg.ValidateStore(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type env struct {
	cfg    *config.Config
	clock  clock.Clock
	stores *app.Stores
}

func withStores(ctx context.Context, fn func(context.Context, env) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.New(loc)
	stores, err := app.OpenStores(ctx, cfg, clk)
	if err != nil {
		return err
	}
	defer stores.Close()
	return fn(ctx, env{cfg: cfg, clock: clk, stores: stores})
}

// actingAs resolves --as to the requester the services see.
func actingAs(ctx context.Context, users user.UserRepository) (user.Requester, error) {
	email := strings.TrimSpace(viper.GetString("as"))
	if email == "" {
		return user.Requester{}, fmt.Errorf("--as required")
	}
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.Requester{}, fmt.Errorf("no account with email %q", email)
		}
		return user.Requester{}, err
	}
	if !u.IsActive {
		return user.Requester{}, fmt.Errorf("account %q is inactive", email)
	}
	return user.Requester{ID: u.ID, Role: u.Role}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
