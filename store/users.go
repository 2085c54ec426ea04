// Package store хранит зарегистрировавшихся в боте пользователей.
package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const CreateUsersTable = `CREATE TABLE IF NOT EXISTS bot_users (
	chat_id    BIGINT PRIMARY KEY,
	username   TEXT NOT NULL DEFAULT '',
	first_seen TIMESTAMPTZ NOT NULL DEFAULT now()
)`
const UpsertUserQuery = `INSERT INTO bot_users (chat_id, username) VALUES ($1, $2)
	ON CONFLICT (chat_id) DO UPDATE SET username = EXCLUDED.username`
const CountUsersQuery = `SELECT count(*) FROM bot_users`

// UserStore реестр пользователей в постгресе
type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(dsn string) (*UserStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("credentials can not be empty")
	}

	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	conn.MustExec(CreateUsersTable)

	return &UserStore{db: conn}, nil
}

// Upsert запоминает пользователя, повторные /start обновляют имя
func (s *UserStore) Upsert(chatID int64, username string) error {
	_, err := s.db.Exec(UpsertUserQuery, chatID, username)
	return err
}

// Count сколько всего пользователей видел бот
func (s *UserStore) Count() (int, error) {
	var n int
	if err := s.db.Get(&n, CountUsersQuery); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *UserStore) Close() error {
	return s.db.Close()
}
