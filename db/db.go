package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	// Memory runs without a database; remember-me falls back to the
	// process-lifetime store.
	Memory DBType = "memory"
)

type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
