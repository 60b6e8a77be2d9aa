package repo

import (
	"context"
	"fmt"
	"strings"

	dom "github.com/Ashishchaubey550/Car-Dealer-Backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductPatch is a partial overwrite for Update. nil fields are left as-is.
type ProductPatch struct {
	Company          *string
	Model            *string
	Color            *string
	Variant          *string
	FuelType         *string
	TransmissionType *string
	BodyType         *string
	RegistrationYear *int
	ModelYear        *int
	DistanceCovered  *float64
	Price            *float64
	Images           *[]string
}

type ProductRepo interface {
	Create(ctx context.Context, p dom.Product) (dom.Product, error)
	List(ctx context.Context) ([]dom.Product, error)
	GetByID(ctx context.Context, id int64) (dom.Product, error)
	Update(ctx context.Context, id int64, patch ProductPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Search(ctx context.Context, key string) ([]dom.Product, error)
	FilterByCompany(ctx context.Context, company string) ([]dom.Product, error)
	FilterByBodyType(ctx context.Context, bodyType string, limit int) ([]dom.Product, error)
}

const productColumns = `id, company, model, color, variant, fuel_type, transmission_type,
	body_type, registration_year, model_year, distance_covered, price, images,
	created_at, updated_at`

type PGProductRepo struct {
	db *pgxpool.Pool
}

func NewPGProductRepo(db *pgxpool.Pool) *PGProductRepo {
	return &PGProductRepo{db: db}
}

func (r *PGProductRepo) Create(ctx context.Context, p dom.Product) (dom.Product, error) {
	query := `
		INSERT INTO products (company, model, color, variant, fuel_type, transmission_type,
			body_type, registration_year, model_year, distance_covered, price, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns
	row := r.db.QueryRow(ctx, query,
		p.Company, p.Model, p.Color, p.Variant, p.FuelType, p.TransmissionType,
		p.BodyType, p.RegistrationYear, p.ModelYear, p.DistanceCovered, p.Price, p.Images,
	)
	return scanProduct(row)
}

// List returns every product in insertion order.
func (r *PGProductRepo) List(ctx context.Context) ([]dom.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGProductRepo) GetByID(ctx context.Context, id int64) (dom.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// Update overwrites exactly the fields present in patch. It never inserts:
// an unknown id yields 0 rows affected.
func (r *PGProductRepo) Update(ctx context.Context, id int64, patch ProductPatch) (int64, error) {
	sets := make([]string, 0, 12)
	args := []any{id}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Company != nil {
		set("company", *patch.Company)
	}
	if patch.Model != nil {
		set("model", *patch.Model)
	}
	if patch.Color != nil {
		set("color", *patch.Color)
	}
	if patch.Variant != nil {
		set("variant", *patch.Variant)
	}
	if patch.FuelType != nil {
		set("fuel_type", *patch.FuelType)
	}
	if patch.TransmissionType != nil {
		set("transmission_type", *patch.TransmissionType)
	}
	if patch.BodyType != nil {
		set("body_type", *patch.BodyType)
	}
	if patch.RegistrationYear != nil {
		set("registration_year", *patch.RegistrationYear)
	}
	if patch.ModelYear != nil {
		set("model_year", *patch.ModelYear)
	}
	if patch.DistanceCovered != nil {
		set("distance_covered", *patch.DistanceCovered)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Images != nil {
		set("images", *patch.Images)
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = NOW()")
	query := `UPDATE products SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGProductRepo) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Search matches key case-insensitively as a substring of company, model
// or body type.
func (r *PGProductRepo) Search(ctx context.Context, key string) ([]dom.Product, error) {
	pattern := "%" + key + "%"
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company ILIKE $1 OR model ILIKE $1 OR body_type ILIKE $1
		ORDER BY id`
	rows, err := r.db.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PGProductRepo) FilterByCompany(ctx context.Context, company string) ([]dom.Product, error) {
	pattern := "%" + company + "%"
	query := `SELECT ` + productColumns + ` FROM products WHERE company ILIKE $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// FilterByBodyType is an exact match; an empty bodyType means no filter.
// The limit applies either way, preserving store order.
func (r *PGProductRepo) FilterByBodyType(ctx context.Context, bodyType string, limit int) ([]dom.Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if bodyType != "" {
		query := `SELECT ` + productColumns + ` FROM products WHERE body_type = $1 ORDER BY id LIMIT $2`
		rows, err = r.db.Query(ctx, query, bodyType, limit)
	} else {
		query := `SELECT ` + productColumns + ` FROM products ORDER BY id LIMIT $1`
		rows, err = r.db.Query(ctx, query, limit)
	}
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func scanProduct(row pgx.Row) (dom.Product, error) {
	var p dom.Product
	err := row.Scan(
		&p.ID, &p.Company, &p.Model, &p.Color, &p.Variant, &p.FuelType, &p.TransmissionType,
		&p.BodyType, &p.RegistrationYear, &p.ModelYear, &p.DistanceCovered, &p.Price, &p.Images,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]dom.Product, error) {
	defer rows.Close()
	var list []dom.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
