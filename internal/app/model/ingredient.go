package model

import (
	"time"
)

// MeasurementUnit is the canonical unit attached to an ingredient ("g",
// "ml", "pcs"). Unit names are unique; every occurrence of an ingredient
// inherits its unit from here, line items never carry their own.
type MeasurementUnit struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(15);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (MeasurementUnit) TableName() string {
	return "measurement_units"
}

// Ingredient is catalog reference data: created by the seed import, read-only
// for end users.
type Ingredient struct {
	ID                uint            `gorm:"primarykey" json:"id"`
	Name              string          `gorm:"type:varchar(75);not null;index" json:"name"`
	MeasurementUnitID uint            `gorm:"not null;index" json:"-"`
	MeasurementUnit   MeasurementUnit `gorm:"foreignKey:MeasurementUnitID" json:"measurement_unit"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
