// Package db provides the database driver factory.
package db

import (
	"github.com/pkg/errors"

	"github.com/dashwise/dashwise/internal/profile"
	"github.com/dashwise/dashwise/store"
	"github.com/dashwise/dashwise/store/db/postgres"
	"github.com/dashwise/dashwise/store/db/sqlite"
)

// NewDBDriver creates a new database driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "postgres":
		driver, err = postgres.NewDB(profile)
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
