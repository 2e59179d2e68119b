package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"

	"recipe_journal/internal/domain/models"
)

const contactMessagesTable = "contact_messages"

type ContactRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveMessage сохраняет сообщение с формы обратной связи
func (r *ContactRepo) SaveMessage(ctx context.Context, msg models.ContactMessage) (string, error) {
	const op = "repository.ContactRepo.SaveMessage"

	query, args, err := r.sb.Insert(contactMessagesTable).
		Columns(
			"name",
			"email",
			"subject",
			"message",
			"remote_ip",
		).
		Values(
			msg.Name,
			msg.Email,
			msg.Subject,
			msg.Message,
			msg.RemoteIP,
		).
		Suffix("RETURNING id::text").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var id string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
