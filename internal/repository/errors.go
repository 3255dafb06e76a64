package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const (
	pgUniqueViolation = "23505"
	mongoDuplicateKey = 11000

	// usersEmailKey nombra la restriccion de email unico en ambos stores.
	usersEmailKey = "users_email_key"
)

func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == usersEmailKey {
		return ErrDuplicateEmail
	}
	return err
}

func translateMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if isMongoDuplicateOn(err, usersEmailKey) {
		return ErrDuplicateEmail
	}
	return err
}

// isMongoDuplicateOn indica si err es una violacion del indice unico index.
func isMongoDuplicateOn(err error, index string) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == mongoDuplicateKey && strings.Contains(e.Message, "index: "+index+" ") {
				return true
			}
		}
		return false
	}
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), "index: "+index+" ")
}
