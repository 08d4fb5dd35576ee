package gorm

import "time"

// Route is an origin/destination pair with its DECEA overflight fee per hour.
// A nil AircraftID makes the route usable by every aircraft.
type Route struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	AircraftID   *string   `gorm:"column:aircraft_id;type:varchar(36);index" json:"aircraft_id"`
	Origin       string    `gorm:"column:origin;not null" json:"origin"`
	Destination  string    `gorm:"column:destination;not null" json:"destination"`
	DECEAPerHour float64   `gorm:"column:decea_per_hour;not null;default:0" json:"decea_per_hour"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Route) TableName() string {
	return "routes"
}

// Label renders the route as "ORIG → DEST".
func (r Route) Label() string {
	return r.Origin + " → " + r.Destination
}
