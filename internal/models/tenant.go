package models

import "time"

// Workplaces is the fixed set of sectors a tenant can belong to. The create
// and edit forms only accept values from this list.
var Workplaces = []string{
	"Public Security - Police",
	"Public Security - Traffic",
	"Public Security - Patrols",
	"Border Guard",
	"Civil Defense",
	"Narcotics Control",
	"Prisons",
	"Mujahideen Forces",
	"Special Emergency Forces",
	"Facilities Security",
	"Security Battalions",
	"Criminal Investigations",
	"Passports",
}

// IsValidWorkplace reports whether the given sector is one of the known choices.
func IsValidWorkplace(workplace string) bool {
	for _, w := range Workplaces {
		if w == workplace {
			return true
		}
	}
	return false
}

// Tenant is an occupant record, active or archived. Cluster and Villa are
// snapshots of the assigned property's location taken at assignment time; they
// are not kept in sync if the property itself is later edited.
type Tenant struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	NationalID   string     `gorm:"size:50;not null" json:"national_id"`
	Mobile       string     `gorm:"size:20;not null" json:"mobile"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	Workplace    string     `gorm:"size:100;not null" json:"workplace"`
	PropertyID   *uint      `json:"property_id"`
	Property     *Property  `gorm:"foreignKey:PropertyID" json:"-"`
	Cluster      string     `gorm:"size:50;not null" json:"cluster"`
	Villa        string     `gorm:"size:50;not null" json:"villa"`
	Archived     bool       `gorm:"default:false" json:"archived"`
	EvictionDate *time.Time `json:"eviction_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
