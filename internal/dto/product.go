package dto

import "time"

// ProductForm is the multipart form for POST /add. Numeric values arrive
// as form strings and are coerced (and rejected when malformed) in the
// service layer, so no binding rules here.
type ProductForm struct {
	Company          string `form:"company"`
	Model            string `form:"model"`
	Color            string `form:"color"`
	Variant          string `form:"variant"`
	FuelType         string `form:"fuelType"`
	TransmissionType string `form:"transmissionType"`
	BodyType         string `form:"bodyType"`
	RegistrationYear string `form:"registrationYear"`
	ModelYear        string `form:"modelYear"`
	DistanceCovered  string `form:"distanceCovered"`
	Price            string `form:"price"`
}

// UpdateProductRequest is the JSON body for PUT /product/:id.
// nil = leave unchanged, value = overwrite. Updates are not re-validated.
type UpdateProductRequest struct {
	Company          *string   `json:"company"`
	Model            *string   `json:"model"`
	Color            *string   `json:"color"`
	Variant          *string   `json:"variant"`
	FuelType         *string   `json:"fuelType"`
	TransmissionType *string   `json:"transmissionType"`
	BodyType         *string   `json:"bodyType"`
	RegistrationYear *int      `json:"registrationYear"`
	ModelYear        *int      `json:"modelYear"`
	DistanceCovered  *float64  `json:"distanceCovered"`
	Price            *float64  `json:"price"`
	Images           *[]string `json:"images"`
}

type ProductResponse struct {
	ID               int64     `json:"id"`
	Company          string    `json:"company"`
	Model            string    `json:"model"`
	Color            string    `json:"color"`
	Variant          string    `json:"variant"`
	FuelType         string    `json:"fuelType"`
	TransmissionType string    `json:"transmissionType"`
	BodyType         string    `json:"bodyType"`
	RegistrationYear int       `json:"registrationYear"`
	ModelYear        int       `json:"modelYear"`
	DistanceCovered  float64   `json:"distanceCovered"`
	Price            float64   `json:"price"`
	Images           []string  `json:"images"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
