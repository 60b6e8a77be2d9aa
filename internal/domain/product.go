package domain

import "time"

// Product is a vehicle listing. Images holds the stable upload paths
// ("/uploads/<name>") in the order they were received; a persisted
// product always has at least one.
type Product struct {
	ID               int64
	Company          string
	Model            string
	Color            string
	Variant          string
	FuelType         string
	TransmissionType string
	BodyType         string
	RegistrationYear int
	ModelYear        int
	DistanceCovered  float64
	Price            float64
	Images           []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
