// Package seed creates the default data the application expects at startup.
package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/oguzk/enrollhub/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "Admin123!"
)

var defaultCourses = []string{"Mathematics", "Physics", "Programming 101"}

// CreateDefaultData inserts the default admin account and starter courses if
// they don't exist. It is idempotent and safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var adminExists bool
	err := dbPool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, defaultAdminEmail).Scan(&adminExists)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for admin account")
		return err
	}

	if !adminExists {
		hashed, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			return err
		}

		// ON CONFLICT guards against a concurrent startup racing the
		// existence check above.
		_, err = dbPool.Exec(ctx,
			`INSERT INTO users (email, password, role) VALUES ($1, $2, 'ADMIN')
			 ON CONFLICT ON CONSTRAINT users_email_key DO NOTHING`,
			defaultAdminEmail, hashed)
		if err != nil {
			lgr.Error().Err(err).Msg("Error creating admin account")
			return err
		}
		lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	}

	for _, name := range defaultCourses {
		tag, err := dbPool.Exec(ctx,
			`INSERT INTO courses (name) VALUES ($1)
			 ON CONFLICT ON CONSTRAINT courses_name_key DO NOTHING`, name)
		if err != nil {
			lgr.Error().Err(err).Str("course", name).Msg("Error creating default course")
			return err
		}
		if tag.RowsAffected() > 0 {
			lgr.Info().Str("course", name).Msg("Default course created")
		}
	}

	return nil
}
