package gorm

import (
	"aerocost/api/internal/constants"
	"time"

	"gorm.io/datatypes"
)

// CalculationLog records one calculator invocation with its headline value
// and the full breakdown as a JSON document.
type CalculationLog struct {
	ID          string                    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AircraftID  string                    `gorm:"column:aircraft_id;type:varchar(36);index;not null" json:"aircraft_id"`
	Kind        constants.CalculationKind `gorm:"column:kind;type:varchar(32);not null" json:"kind"`
	ResultValue float64                   `gorm:"column:result_value;not null;default:0" json:"result_value"`
	Details     datatypes.JSON            `gorm:"column:details" json:"details"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (CalculationLog) TableName() string {
	return "calculation_logs"
}
