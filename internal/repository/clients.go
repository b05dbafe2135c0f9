package repository

import (
	"context"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

// ListClientsLimit is the page size for the clients listing.
const ListClientsLimit = 100

// ClientRepository persists models.Client records.
type ClientRepository struct {
	store dynstore.Store[models.Client]
}

func NewClientRepository(client dynstore.DynamoDBClient, table string) *ClientRepository {
	return &ClientRepository{
		store: dynstore.New[models.Client](client, dynstore.TableConfig{
			TableName: table,
			HashKey:   "client_id",
			Indexes: map[string]dynstore.IndexKey{
				models.IndexEmail:  {HashKey: "email"},
				models.IndexNumber: {HashKey: "number"},
				models.IndexName:   {HashKey: "name"},
			},
		}),
	}
}

// Save upserts the full record, overwriting any previous version.
func (r *ClientRepository) Save(ctx context.Context, c *models.Client) error {
	return r.store.Put(ctx, *c)
}

func (r *ClientRepository) Get(ctx context.Context, clientID string) (*models.Client, error) {
	return r.store.Get(ctx, clientID, nil)
}

// Delete is idempotent: removing an absent client is not an error.
func (r *ClientRepository) Delete(ctx context.Context, clientID string) error {
	return r.store.Delete(ctx, clientID, nil)
}

// List pages through the whole collection. No index covers "all clients",
// so this is a scan.
func (r *ClientRepository) List(ctx context.Context, cursor string) ([]models.Client, string, error) {
	return r.store.Scan().
		Limit(ListClientsLimit).
		Cursor(cursor).
		Exec(ctx)
}

// ByEmail returns the first client matching the email, or ErrNotFound.
func (r *ClientRepository) ByEmail(ctx context.Context, email string) (*models.Client, error) {
	return r.first(ctx, models.IndexEmail, "email", email)
}

// ByNumber returns the first client with the given phone number.
func (r *ClientRepository) ByNumber(ctx context.Context, number string) (*models.Client, error) {
	return r.first(ctx, models.IndexNumber, "number", number)
}

// ByName returns the first client with the given name.
func (r *ClientRepository) ByName(ctx context.Context, name string) (*models.Client, error) {
	return r.first(ctx, models.IndexName, "name", name)
}

func (r *ClientRepository) first(ctx context.Context, index, key, value string) (*models.Client, error) {
	clients, _, err := r.store.Query().
		Index(index).
		KeyEqual(key, value).
		Limit(1).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, dynstore.ErrNotFound
	}
	return &clients[0], nil
}
