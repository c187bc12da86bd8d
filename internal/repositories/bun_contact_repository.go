package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/prplkane/umazona-website/internal/models"
)

type BunContactRepository struct {
	db bun.IDB
}

func NewBunContactRepository(db bun.IDB) ContactRepository {
	return &BunContactRepository{db: db}
}

func (r *BunContactRepository) Insert(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	_, err := r.db.NewInsert().
		Model(contact).
		Exec(ctx)
	return contact, err
}
