package repositories

import (
	"context"
	"strings"

	"coutupro/internal/database"
	. "coutupro/internal/models"
)

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	CreateBatch(ctx context.Context, clients []Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	GetAll(ctx context.Context) ([]Client, error)
	Search(ctx context.Context, term string) ([]Client, error)
	Update(ctx context.Context, id string, columns map[string]any) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Clear(ctx context.Context) (int64, error)
}

type clientRepository struct {
	baseRepository
}

func NewClient(db database.DB) ClientRepository {
	return &clientRepository{newBase(db, "clientRepository")}
}

func (r *clientRepository) Create(ctx context.Context, client *Client) error {
	return createRecord(r.getDB(ctx), r.log, client)
}

func (r *clientRepository) CreateBatch(ctx context.Context, clients []Client) error {
	return createBatch(r.getDB(ctx), r.log, clients)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	return findByID[Client](r.getDB(ctx), r.log, id)
}

func (r *clientRepository) GetAll(ctx context.Context) ([]Client, error) {
	var clients []Client
	if err := r.getDB(ctx).Order("created_at DESC").Find(&clients).Error; err != nil {
		return nil, r.log.Function("GetAll").Err("failed to get clients", err)
	}
	return nonNil(clients), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches names case-insensitively and the phone number as typed.
// % and _ in the term are literal. SQLite LOWER only folds ASCII, so an
// accented capital such as É does not match é.
func (r *clientRepository) Search(ctx context.Context, term string) ([]Client, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.GetAll(ctx)
	}

	escaped := likeEscaper.Replace(term)
	like := "%" + strings.ToLower(escaped) + "%"
	phone := "%" + escaped + "%"

	var clients []Client
	err := r.getDB(ctx).
		Where(`LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(first_names) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\'`,
			like, like, phone).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, r.log.Function("Search").Err("failed to search clients", err, "term", term)
	}
	return nonNil(clients), nil
}

func (r *clientRepository) Update(ctx context.Context, id string, columns map[string]any) error {
	return updateByID[Client](r.getDB(ctx), r.log, id, columns)
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[Client](r.getDB(ctx), r.log, id)
}

func (r *clientRepository) Count(ctx context.Context) (int64, error) {
	return count[Client](r.getDB(ctx), r.log)
}

func (r *clientRepository) Clear(ctx context.Context) (int64, error) {
	return clearTable[Client](r.getDB(ctx), r.log)
}
