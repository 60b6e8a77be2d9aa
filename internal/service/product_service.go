package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/cache"
	dom "github.com/Ashishchaubey550/Car-Dealer-Backend/internal/domain"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrMissingFields  = errors.New("all fields and at least one image are required")
	ErrNotNumeric     = errors.New("must be a number")
	ErrNotFound       = errors.New("not found")
	ErrEmptySearchKey = errors.New("search key is required")
)

// DefaultBodyTypeLimit caps the body-type filter result when the caller
// does not ask for a limit.
const DefaultBodyTypeLimit = 4

// CreateProductInput carries the raw form values of an add-listing
// request. Numeric fields are strings here and coerced during validation.
type CreateProductInput struct {
	Company          string
	Model            string
	Color            string
	Variant          string
	FuelType         string
	TransmissionType string
	BodyType         string
	RegistrationYear string
	ModelYear        string
	DistanceCovered  string
	Price            string
	Images           []string
}

// ProductService owns listing validation and the query operations.
type ProductService struct {
	repo  repo.ProductRepo
	cache *cache.ProductCache
	sf    singleflight.Group
}

// NewProductService creates a ProductService. If c is nil, caching is disabled.
func NewProductService(r repo.ProductRepo, c *cache.ProductCache) *ProductService {
	return &ProductService{repo: r, cache: c}
}

// Create validates the input and persists the listing. Either every
// required field is present, numeric fields parse, and at least one image
// reference is given — or nothing is persisted.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (dom.Product, error) {
	p := dom.Product{
		Company:          strings.TrimSpace(in.Company),
		Model:            strings.TrimSpace(in.Model),
		Color:            strings.TrimSpace(in.Color),
		Variant:          strings.TrimSpace(in.Variant),
		FuelType:         strings.TrimSpace(in.FuelType),
		TransmissionType: strings.TrimSpace(in.TransmissionType),
		BodyType:         strings.TrimSpace(in.BodyType),
		Images:           in.Images,
	}
	if p.Company == "" || p.Model == "" || p.Color == "" || p.Variant == "" ||
		p.FuelType == "" || p.TransmissionType == "" || p.BodyType == "" ||
		strings.TrimSpace(in.RegistrationYear) == "" || strings.TrimSpace(in.ModelYear) == "" ||
		strings.TrimSpace(in.DistanceCovered) == "" || strings.TrimSpace(in.Price) == "" ||
		len(p.Images) == 0 {
		return dom.Product{}, ErrMissingFields
	}

	var err error
	if p.RegistrationYear, err = parseIntField("registrationYear", in.RegistrationYear); err != nil {
		return dom.Product{}, err
	}
	if p.ModelYear, err = parseIntField("modelYear", in.ModelYear); err != nil {
		return dom.Product{}, err
	}
	if p.DistanceCovered, err = parseFloatField("distanceCovered", in.DistanceCovered); err != nil {
		return dom.Product{}, err
	}
	if p.Price, err = parseFloatField("price", in.Price); err != nil {
		return dom.Product{}, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return dom.Product{}, err
	}
	s.invalidateCache(ctx)
	return created, nil
}

// List returns every listing in insertion order.
func (s *ProductService) List(ctx context.Context) ([]dom.Product, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Product), nil
	}
	return s.repo.List(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (dom.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Product{}, ErrNotFound
		}
		return dom.Product{}, err
	}
	return p, nil
}

// Update overwrites exactly the provided fields. It does not re-validate
// and reports how many records were affected (0 for an unknown id).
func (s *ProductService) Update(ctx context.Context, id int64, patch repo.ProductPatch) (int64, error) {
	count, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.invalidateCache(ctx)
	}
	return count, nil
}

// Delete removes the listing and reports how many records were affected.
func (s *ProductService) Delete(ctx context.Context, id int64) (int64, error) {
	count, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.invalidateCache(ctx)
	}
	return count, nil
}

// Search matches key case-insensitively as a substring of company, model
// or body type. A blank key is a validation failure.
func (s *ProductService) Search(ctx context.Context, key string) ([]dom.Product, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptySearchKey
	}
	if s.cache != nil {
		sfKey := "search:" + strings.ToLower(key)
		v, err, _ := s.sf.Do(sfKey, func() (interface{}, error) {
			if list, err := s.cache.GetSearch(ctx, key); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.Search(ctx, key)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, key, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Product), nil
	}
	return s.repo.Search(ctx, key)
}

// FilterByCompany is a case-insensitive substring filter; an empty
// company returns every listing.
func (s *ProductService) FilterByCompany(ctx context.Context, company string) ([]dom.Product, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return s.List(ctx)
	}
	return s.repo.FilterByCompany(ctx, company)
}

// FilterByBodyType is an exact match filter capped at limit results
// (DefaultBodyTypeLimit when limit is not positive). An empty bodyType
// applies no filter, only the cap.
func (s *ProductService) FilterByBodyType(ctx context.Context, bodyType string, limit int) ([]dom.Product, error) {
	if limit <= 0 {
		limit = DefaultBodyTypeLimit
	}
	return s.repo.FilterByBodyType(ctx, strings.TrimSpace(bodyType), limit)
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}

func parseIntField(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s %w", name, ErrNotNumeric)
	}
	return n, nil
}

func parseFloatField(name, raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s %w", name, ErrNotNumeric)
	}
	return f, nil
}
