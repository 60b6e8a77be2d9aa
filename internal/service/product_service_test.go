package service

import (
	"context"
	"strings"
	"testing"

	dom "github.com/Ashishchaubey550/Car-Dealer-Backend/internal/domain"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepo is an in-memory ProductRepo mirroring the SQL behavior:
// insertion order, ILIKE-style substring matching, exact body-type match
// with LIMIT.
type fakeProductRepo struct {
	products []dom.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1}
}

func (r *fakeProductRepo) Create(_ context.Context, p dom.Product) (dom.Product, error) {
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]dom.Product, error) {
	out := make([]dom.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (dom.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return dom.Product{}, pgx.ErrNoRows
}

func (r *fakeProductRepo) Update(_ context.Context, id int64, patch repo.ProductPatch) (int64, error) {
	for i := range r.products {
		if r.products[i].ID != id {
			continue
		}
		p := &r.products[i]
		if patch.Company != nil {
			p.Company = *patch.Company
		}
		if patch.Model != nil {
			p.Model = *patch.Model
		}
		if patch.Color != nil {
			p.Color = *patch.Color
		}
		if patch.Variant != nil {
			p.Variant = *patch.Variant
		}
		if patch.FuelType != nil {
			p.FuelType = *patch.FuelType
		}
		if patch.TransmissionType != nil {
			p.TransmissionType = *patch.TransmissionType
		}
		if patch.BodyType != nil {
			p.BodyType = *patch.BodyType
		}
		if patch.RegistrationYear != nil {
			p.RegistrationYear = *patch.RegistrationYear
		}
		if patch.ModelYear != nil {
			p.ModelYear = *patch.ModelYear
		}
		if patch.DistanceCovered != nil {
			p.DistanceCovered = *patch.DistanceCovered
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Images != nil {
			p.Images = *patch.Images
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) (int64, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeProductRepo) Search(_ context.Context, key string) ([]dom.Product, error) {
	key = strings.ToLower(key)
	var out []dom.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Company), key) ||
			strings.Contains(strings.ToLower(p.Model), key) ||
			strings.Contains(strings.ToLower(p.BodyType), key) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FilterByCompany(_ context.Context, company string) ([]dom.Product, error) {
	company = strings.ToLower(company)
	var out []dom.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Company), company) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FilterByBodyType(_ context.Context, bodyType string, limit int) ([]dom.Product, error) {
	var out []dom.Product
	for _, p := range r.products {
		if bodyType != "" && p.BodyType != bodyType {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Company:          "Toyota",
		Model:            "Corolla",
		Color:            "White",
		Variant:          "GLi",
		FuelType:         "Petrol",
		TransmissionType: "Manual",
		BodyType:         "sedan",
		RegistrationYear: "2019",
		ModelYear:        "2018",
		DistanceCovered:  "45000",
		Price:            "500000",
		Images:           []string{"/uploads/a.jpg"},
	}
}

func TestCreateProductCoercesNumericStrings(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)

	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 2019, p.RegistrationYear)
	assert.Equal(t, 2018, p.ModelYear)
	assert.Equal(t, 45000.0, p.DistanceCovered)
	assert.Equal(t, 500000.0, p.Price)
	assert.Len(t, p.Images, 1)

	// Round-trip: the stored record carries numbers, not the form strings.
	got, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 500000.0, got.Price)
}

func TestCreateProductRequiresImages(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)

	in := validInput()
	in.Images = nil
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, fake.products)
}

func TestCreateProductRequiresEveryField(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)

	in := validInput()
	in.Color = "   "
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, fake.products)
}

func TestCreateProductRejectsNonNumeric(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)

	for _, mutate := range []func(*CreateProductInput){
		func(in *CreateProductInput) { in.Price = "cheap" },
		func(in *CreateProductInput) { in.RegistrationYear = "twenty19" },
		func(in *CreateProductInput) { in.DistanceCovered = "NaN" },
		func(in *CreateProductInput) { in.ModelYear = "2018.5" },
	} {
		in := validInput()
		mutate(&in)
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrNotNumeric)
	}
	assert.Empty(t, fake.products)
}

func TestSearchRejectsBlankKey(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), nil)

	_, err := svc.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptySearchKey)
	_, err = svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptySearchKey)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	for _, key := range []string{"toyota", "TOYOTA", "Toy"} {
		got, err := svc.Search(context.Background(), key)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Toyota", got[0].Company)
	}
}

func TestFilterByBodyTypeDefaultCap(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)
	for i := 0; i < 6; i++ {
		in := validInput()
		in.BodyType = "suv"
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	got, err := svc.FilterByBodyType(context.Background(), "suv", 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultBodyTypeLimit)

	// Explicit limit wins over the default.
	got, err = svc.FilterByBodyType(context.Background(), "suv", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFilterByCompanyEmptyReturnsAll(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	in := validInput()
	in.Company = "Honda"
	_, err = svc.Create(context.Background(), in)
	require.NoError(t, err)

	all, err := svc.FilterByCompany(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hondas, err := svc.FilterByCompany(context.Background(), "hon")
	require.NoError(t, err)
	require.Len(t, hondas, 1)
	assert.Equal(t, "Honda", hondas[0].Company)
}

func TestUpdateUnknownIDAffectsNothing(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	price := 1.0
	count, err := svc.Update(context.Background(), 999, repo.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, fake.products, 1)
	assert.Equal(t, 500000.0, fake.products[0].Price)
}

func TestUpdateOverwritesOnlyProvidedFields(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)
	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	price := 475000.0
	count, err := svc.Update(context.Background(), p.ID, repo.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := svc.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 475000.0, got.Price)
	assert.Equal(t, "Corolla", got.Model)
	assert.Equal(t, "White", got.Color)
}

func TestDeleteReportsCount(t *testing.T) {
	fake := newFakeProductRepo()
	svc := NewProductService(fake, nil)
	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	count, err := svc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.Delete(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
