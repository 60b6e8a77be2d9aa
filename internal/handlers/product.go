package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	dom "github.com/Ashishchaubey550/Car-Dealer-Backend/internal/domain"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/dto"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/repo"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/service"
	"github.com/Ashishchaubey550/Car-Dealer-Backend/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const imagesFormField = "images"

type ProductHandler struct {
	svc      *service.ProductService
	uploads  storage.Uploader
	maxFiles int
	log      *zap.Logger
}

func NewProductHandler(svc *service.ProductService, uploads storage.Uploader, maxFiles int, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, uploads: uploads, maxFiles: maxFiles, log: log}
}

// Add godoc
// @Summary      Add a listing with images
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        company  formData  string  true  "Company"
// @Param        model    formData  string  true  "Model"
// @Param        images   formData  file    true  "1-10 image files"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /add [post]
func (h *ProductHandler) Add(c *gin.Context) {
	var form dto.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields and at least one image are required."})
		return
	}
	mf, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields and at least one image are required."})
		return
	}
	files := mf.File[imagesFormField]
	if len(files) > h.maxFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d images are allowed", h.maxFiles)})
		return
	}

	// Images are written before the listing row; if the insert below
	// fails, the files stay behind on disk.
	images := make([]string, 0, len(files))
	for _, fh := range files {
		path, err := h.uploads.Save(fh)
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedType) ||
				errors.Is(err, storage.ErrFileTooLarge) ||
				errors.Is(err, storage.ErrEmptyFile) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			h.log.Error("image upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
			return
		}
		images = append(images, path)
	}

	p, err := h.svc.Create(c.Request.Context(), service.CreateProductInput{
		Company:          form.Company,
		Model:            form.Model,
		Color:            form.Color,
		Variant:          form.Variant,
		FuelType:         form.FuelType,
		TransmissionType: form.TransmissionType,
		BodyType:         form.BodyType,
		RegistrationYear: form.RegistrationYear,
		ModelYear:        form.ModelYear,
		DistanceCovered:  form.DistanceCovered,
		Price:            form.Price,
		Images:           images,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields and at least one image are required."})
			return
		}
		if errors.Is(err, service.ErrNotNumeric) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("create product failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save product"})
		return
	}
	c.JSON(http.StatusCreated, productToResponse(p))
}

// List godoc
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Failure      500  {object}  map[string]string
// @Router       /product [get]
func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("list products failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusOK, gin.H{"result": "No products found"})
		return
	}
	c.JSON(http.StatusOK, productsToResponses(list))
}

// GetByID godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /product/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"result": "No Record Found."})
			return
		}
		h.log.Error("get product failed", zap.Error(err), zap.Int64("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, productToResponse(p))
}

// Update godoc
// @Summary      Partially update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Product ID"
// @Param        body  body      dto.UpdateProductRequest  true  "Fields to overwrite"
// @Success      200   {object}  map[string]int64
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /product/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	count, err := h.svc.Update(c.Request.Context(), id, repo.ProductPatch{
		Company:          req.Company,
		Model:            req.Model,
		Color:            req.Color,
		Variant:          req.Variant,
		FuelType:         req.FuelType,
		TransmissionType: req.TransmissionType,
		BodyType:         req.BodyType,
		RegistrationYear: req.RegistrationYear,
		ModelYear:        req.ModelYear,
		DistanceCovered:  req.DistanceCovered,
		Price:            req.Price,
		Images:           req.Images,
	})
	if err != nil {
		h.log.Error("update product failed", zap.Error(err), zap.Int64("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": count})
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  map[string]int64
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /product/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	count, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.log.Error("delete product failed", zap.Error(err), zap.Int64("id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

// Search godoc
// @Summary      Search products
// @Description  Case-insensitive substring match over company, model and body type.
// @Tags         products
// @Produce      json
// @Param        key  path      string  true  "Search key"
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /search/{key} [get]
func (h *ProductHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrEmptySearchKey) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Search key is required"})
			return
		}
		h.log.Error("search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No matching products found"})
		return
	}
	c.JSON(http.StatusOK, productsToResponses(list))
}

// ListByCompany godoc
// @Summary      List products filtered by company
// @Tags         products
// @Produce      json
// @Param        company  query     string  false  "Company substring (case-insensitive)"
// @Success      200  {array}   dto.ProductResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /productlist [get]
func (h *ProductHandler) ListByCompany(c *gin.Context) {
	list, err := h.svc.FilterByCompany(c.Request.Context(), c.Query("company"))
	if err != nil {
		h.log.Error("company filter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No products found"})
		return
	}
	c.JSON(http.StatusOK, productsToResponses(list))
}

// ListByBodyType godoc
// @Summary      List products filtered by body type
// @Description  Exact body-type match, capped at 4 results unless a limit is given.
// @Tags         products
// @Produce      json
// @Param        bodyType  query     string  false  "Body type (exact match)"
// @Param        limit     query     int     false  "Result cap"
// @Success      200  {array}   dto.ProductResponse
// @Failure      500  {object}  map[string]string
// @Router       /cartype [get]
func (h *ProductHandler) ListByBodyType(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.FilterByBodyType(c.Request.Context(), c.Query("bodyType"), limit)
	if err != nil {
		h.log.Error("body type filter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, productsToResponses(list))
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func productToResponse(p dom.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:               p.ID,
		Company:          p.Company,
		Model:            p.Model,
		Color:            p.Color,
		Variant:          p.Variant,
		FuelType:         p.FuelType,
		TransmissionType: p.TransmissionType,
		BodyType:         p.BodyType,
		RegistrationYear: p.RegistrationYear,
		ModelYear:        p.ModelYear,
		DistanceCovered:  p.DistanceCovered,
		Price:            p.Price,
		Images:           p.Images,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func productsToResponses(list []dom.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, len(list))
	for i := range list {
		out[i] = productToResponse(list[i])
	}
	return out
}
