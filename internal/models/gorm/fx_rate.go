package gorm

import "time"

type FxRate struct {
	ID            string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	USDToBRL      float64   `gorm:"column:usd_to_brl;not null" json:"usd_to_brl"`
	EffectiveDate time.Time `gorm:"column:effective_date;index;not null" json:"effective_date"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (FxRate) TableName() string {
	return "fx_rates"
}
