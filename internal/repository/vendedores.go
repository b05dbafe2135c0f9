package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

// ListVendedoresLimit is the page size for the vendedores listing.
const ListVendedoresLimit = 300

// VendedorRepository persists models.Vendedor records.
type VendedorRepository struct {
	store dynstore.Store[models.Vendedor]
}

func NewVendedorRepository(client dynstore.DynamoDBClient, table string) *VendedorRepository {
	return &VendedorRepository{
		store: dynstore.New[models.Vendedor](client, dynstore.TableConfig{
			TableName: table,
			HashKey:   "vendedor_id",
			Indexes: map[string]dynstore.IndexKey{
				models.IndexEmail:        {HashKey: "email"},
				models.IndexSucursal:     {HashKey: "sucursal"},
				models.IndexVendedoresPK: {HashKey: "gsi_pk"},
			},
		}),
	}
}

// Save upserts the vendedor, generating the id when absent, defaulting
// activo to true, and always stamping the constant listing partition.
func (r *VendedorRepository) Save(ctx context.Context, v *models.Vendedor) error {
	if v.VendedorID == "" {
		v.VendedorID = uuid.NewString()
	}
	if v.Activo == nil {
		activo := true
		v.Activo = &activo
	}
	v.GsiPK = models.VendedoresPartition
	return r.store.Put(ctx, *v)
}

func (r *VendedorRepository) Get(ctx context.Context, vendedorID string) (*models.Vendedor, error) {
	return r.store.Get(ctx, vendedorID, nil)
}

func (r *VendedorRepository) Delete(ctx context.Context, vendedorID string) error {
	return r.store.Delete(ctx, vendedorID, nil)
}

// List pages through all vendedores via the constant-partition index, which
// replaces the full-table scan the clients listing still needs.
func (r *VendedorRepository) List(ctx context.Context, cursor string) ([]models.Vendedor, string, error) {
	return r.store.Query().
		Index(models.IndexVendedoresPK).
		KeyEqual("gsi_pk", models.VendedoresPartition).
		Limit(ListVendedoresLimit).
		Cursor(cursor).
		Exec(ctx)
}

// ByEmail returns the first vendedor matching the email, or ErrNotFound.
func (r *VendedorRepository) ByEmail(ctx context.Context, email string) (*models.Vendedor, error) {
	vendedores, _, err := r.store.Query().
		Index(models.IndexEmail).
		KeyEqual("email", email).
		Limit(1).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if len(vendedores) == 0 {
		return nil, dynstore.ErrNotFound
	}
	return &vendedores[0], nil
}

// BySucursal lists every vendedor assigned to a branch.
func (r *VendedorRepository) BySucursal(ctx context.Context, sucursal string) ([]models.Vendedor, error) {
	return r.store.Query().
		Index(models.IndexSucursal).
		KeyEqual("sucursal", sucursal).
		ExecAll(ctx)
}
