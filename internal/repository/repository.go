package repository

import (
	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	Content ContentRepository
	Contact ContactRepository
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Content: NewContentRepository(db),
		Contact: NewContactRepository(db),
	}
}
