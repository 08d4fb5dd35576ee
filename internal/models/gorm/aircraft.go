package gorm

import "time"

type Aircraft struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Registration string    `gorm:"column:registration;uniqueIndex;not null" json:"registration"`
	Model        string    `gorm:"column:model" json:"model"`
	MonthlyHours float64   `gorm:"column:monthly_hours;not null;default:0" json:"monthly_hours"`
	AvgLegTime   float64   `gorm:"column:avg_leg_time;not null;default:0" json:"avg_leg_time"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}
