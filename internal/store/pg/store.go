package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/windhamg/moviebot-lambda/internal/store"
)

// Store реализует интерфейс store.Store и позволяет взаимодействовать с СУБД PostgreSQL.
type Store struct {
	// Поле conn содержит объект соединения с СУБД.
	conn *sql.DB
}

// NewStore возвращает новый экземпляр PostgreSQL хранилища
func NewStore(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Bootstrap подготавливает БД к работе, создавая необходимые таблицы и индексы
func (s Store) Bootstrap(ctx context.Context) error {
	// запускаем транзакцию
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// в случае неуспешного коммита все изменения транзакции будут отменены
	defer tx.Rollback()

	// создаём таблицу ходов диалога и индекс по пользователю
	if _, err := tx.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS turns (
            id varchar(36) PRIMARY KEY,
            user_id varchar(128) NOT NULL,
            intent varchar(64) NOT NULL,
            phase varchar(16) NOT NULL,
            action varchar(16) NOT NULL,
            zipcode varchar(5),
            handled_at timestamp with time zone NOT NULL
        )
    `); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS turns_user_idx ON turns (user_id, handled_at)`); err != nil {
		return err
	}

	// коммитим транзакцию
	return tx.Commit()
}

func (s Store) SaveTurn(ctx context.Context, t store.Turn) error {
	// добавляем запись о ходе; пустой индекс сохраняем как NULL
	_, err := s.conn.ExecContext(ctx, `
        INSERT INTO turns
        (id, user_id, intent, phase, action, zipcode, handled_at)
        VALUES
        ($1, $2, $3, $4, $5, NULLIF($6, ''), $7);
    `, t.ID, t.UserID, t.Intent, t.Phase, t.Action, t.Zipcode, t.Time)

	if err != nil {
		// проверяем, что ошибка сигнализирует о потенциальном нарушении целостности данных
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			err = store.ErrConflict
		}
	}

	return err
}

func (s Store) ListTurns(ctx context.Context, userID string, limit int) ([]store.Turn, error) {
	rows, err := s.conn.QueryContext(ctx, `
        SELECT
            id,
            user_id,
            intent,
            phase,
            action,
            COALESCE(zipcode, ''),
            handled_at
        FROM turns
        WHERE
            user_id = $1
        ORDER BY handled_at DESC
        LIMIT $2
    `, userID, limit)

	if err != nil {
		return nil, err
	}
	// не забываем закрыть курсор после завершения работы с данными
	defer rows.Close()

	var turns []store.Turn
	for rows.Next() {
		var t store.Turn
		if err := rows.Scan(&t.ID, &t.UserID, &t.Intent, &t.Phase, &t.Action, &t.Zipcode, &t.Time); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}

	// необходимо проверить ошибки уровня курсора
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return turns, nil
}
