package models

import "time"

// Occupancy status values for a property. Status is derived: a property is
// occupied while at least one non-archived tenant is assigned to it.
const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"
)

// Floor layout choices offered when registering a property.
const (
	FloorsTwo   = "two-floor"
	FloorsThree = "three-floor"
)

// Allocation type choices for a property.
const (
	TypeOfficers    = "officers"
	TypeIndividuals = "individuals"
)

// Property is a single housing unit inside the community.
type Property struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Cluster   string    `gorm:"size:50;not null" json:"cluster"`
	Villa     string    `gorm:"size:50;not null" json:"villa"`
	Floors    string    `gorm:"size:50;default:two-floor" json:"floors"`
	Type      string    `gorm:"size:50;default:individuals" json:"type"`
	Status    string    `gorm:"size:50;not null;default:vacant" json:"status"`
	Tenants   []Tenant  `gorm:"foreignKey:PropertyID" json:"tenants,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasActiveTenant reports whether any loaded tenant is still active. It only
// inspects the Tenants slice, so the association must be preloaded.
func (p *Property) HasActiveTenant() bool {
	for _, t := range p.Tenants {
		if !t.Archived {
			return true
		}
	}
	return false
}
