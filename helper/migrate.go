package helper

//nolint:revive
import (
	"carrental/config"
	"errors"
	"fmt"
	"net"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	connectionString := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&x-migrations-table=%s",
		config.DB.Postgres.Write.Username,
		config.DB.Postgres.Write.Password,
		net.JoinHostPort(config.DB.Postgres.Write.Host, config.DB.Postgres.Write.Port),
		getDBName(config, config.DB.Postgres.Write.Name),
		config.DB.Postgres.Write.SSLMode,
		config.DB.Postgres.MigrationTable,
	)

	mig, err := migrate.New(
		"file://migrations/postgres",
		connectionString,
	)

	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func logVersion(mig *migrate.Migrate) {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Schema is empty")

		return
	}

	if err != nil {
		log.Warn().Err(err).Msg("Failed to read schema version")

		return
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
}

type step struct {
	run  func(mig *migrate.Migrate) error
	verb string
	done string
}

var steps = map[string]step{
	"up":      {run: func(m *migrate.Migrate) error { return m.Up() }, verb: "running", done: "Schema migrated to latest"},
	"step-up": {run: func(m *migrate.Migrate) error { return m.Steps(1) }, verb: "running", done: "Schema migrated one step"},
	"down":    {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, verb: "rolling back", done: "Schema rolled back one step"},
	"drop":    {run: func(m *migrate.Migrate) error { return m.Down() }, verb: "rolling back", done: "Schema rolled back completely"},
	"version": {run: func(*migrate.Migrate) error { return nil }},
}

// Runner applies one action to the carrental schema and logs the resulting
// version. Already-current schemas are not an error.
func Runner(config *config.Config, action string) error {
	st, ok := steps[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()
	defer logVersion(mig)

	if err := st.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error %s migrations: %w", st.verb, err)
	}

	if st.done != "" {
		log.Info().Str("action", action).Msg(st.done)
	}

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}

func Version(config *config.Config) error {
	return Runner(config, "version")
}
