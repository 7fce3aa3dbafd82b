package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Subscription struct {
	ChatID     int64
	Subdomain  string
	CreatedAt  time.Time
	LastDigest sql.NullTime
}

// Subscribe: подписка чата на утреннюю рассылку. false — подписка уже была.
func Subscribe(ctx context.Context, database *sql.DB, chatID int64, subdomain string) (bool, error) {
	res, err := database.ExecContext(ctx, `
		INSERT INTO subscriptions (chat_id, subdomain)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO NOTHING
	`, chatID, subdomain)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

// Unsubscribe: false, если подписки не было.
func Unsubscribe(ctx context.Context, database *sql.DB, chatID int64) (bool, error) {
	res, err := database.ExecContext(ctx, `DELETE FROM subscriptions WHERE chat_id = $1`, chatID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

func GetSubscription(ctx context.Context, database *sql.DB, chatID int64) (*Subscription, error) {
	var s Subscription
	err := database.QueryRowContext(ctx, `
		SELECT chat_id, subdomain, created_at, last_digest
		FROM subscriptions WHERE chat_id = $1
	`, chatID).Scan(&s.ChatID, &s.Subdomain, &s.CreatedAt, &s.LastDigest)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DueForDigest: чаты школы subdomain, которым рассылка за день day ещё не уходила,
// с chat_id строго больше after, не больше batch штук по возрастанию chat_id.
// Первую страницу берут с after = math.MinInt64 (у групп id отрицательные).
func DueForDigest(ctx context.Context, database *sql.DB, subdomain string, day time.Time, after int64, batch int) ([]int64, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT chat_id
		FROM subscriptions
		WHERE subdomain = $1
		  AND (last_digest IS NULL OR last_digest < $2::date)
		  AND chat_id > $3
		ORDER BY chat_id
		LIMIT $4
	`, subdomain, day.Format("2006-01-02"), after, batch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// MarkDigestSent: пометить, что рассылка за день day отправлена.
func MarkDigestSent(ctx context.Context, database *sql.DB, chatIDs []int64, day time.Time) error {
	if len(chatIDs) == 0 {
		return nil
	}
	_, err := database.ExecContext(ctx, `
		UPDATE subscriptions
		SET last_digest = $1::date
		WHERE chat_id = ANY($2)
	`, day.Format("2006-01-02"), pq.Array(chatIDs))
	return err
}

// Subscriptions: те же запросы в виде значения для фоновых задач.
type Subscriptions struct {
	DB *sql.DB
}

func (s Subscriptions) DueForDigest(ctx context.Context, subdomain string, day time.Time, after int64, batch int) ([]int64, error) {
	return DueForDigest(ctx, s.DB, subdomain, day, after, batch)
}

func (s Subscriptions) MarkDigestSent(ctx context.Context, chatIDs []int64, day time.Time) error {
	return MarkDigestSent(ctx, s.DB, chatIDs, day)
}
