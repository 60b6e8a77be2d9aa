package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	dom "github.com/Ashishchaubey550/Car-Dealer-Backend/internal/domain"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/repo"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	byEmail map[string]dom.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]dom.User), nextID: 1}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, name, email, passwordHash string) (dom.User, error) {
	if _, ok := r.byEmail[email]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	u := dom.User{ID: r.nextID, Name: name, Email: email, PasswordHash: passwordHash}
	r.nextID++
	r.byEmail[email] = u
	return u, nil
}

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
		if patch.Price != nil {
			r.products[i].Price = *patch.Price
		}
		if patch.Color != nil {
			r.products[i].Color = *patch.Color
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

// fakeUploader hands out stable paths without touching disk.
type fakeUploader struct {
	saved int
}

func (u *fakeUploader) Save(_ *multipart.FileHeader) (string, error) {
	u.saved++
	return fmt.Sprintf("/uploads/img-%d.jpg", u.saved), nil
}

func newAuthRouter(userRepo repo.UserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(service.NewUserService(userRepo), zap.NewNop())
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	return r
}

func newProductRouter(productRepo repo.ProductRepo, maxFiles int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewProductService(productRepo, nil)
	h := NewProductHandler(svc, &fakeUploader{}, maxFiles, zap.NewNop())
	r := gin.New()
	r.POST("/add", h.Add)
	r.GET("/product", h.List)
	r.GET("/product/:id", h.GetByID)
	r.PUT("/product/:id", h.Update)
	r.DELETE("/product/:id", h.Delete)
	r.GET("/search/:key", h.Search)
	r.GET("/productlist", h.ListByCompany)
	r.GET("/cartype", h.ListByBodyType)
	return r
}
