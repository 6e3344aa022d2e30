package domain

import "time"

type MachineryType string

const (
	MachineryTypeTractor    MachineryType = "Tractor"
	MachineryTypeHarvester  MachineryType = "Harvester"
	MachineryTypeCultivator MachineryType = "Cultivator"
	MachineryTypeThresher   MachineryType = "Thresher"
	MachineryTypeSprayer    MachineryType = "Sprayer"
	MachineryTypeWaterPump  MachineryType = "WaterPump"
)

var AllMachineryTypes = []MachineryType{
	MachineryTypeTractor,
	MachineryTypeHarvester,
	MachineryTypeCultivator,
	MachineryTypeThresher,
	MachineryTypeSprayer,
	MachineryTypeWaterPump,
}

func (t MachineryType) Valid() bool {
	for _, known := range AllMachineryTypes {
		if t == known {
			return true
		}
	}
	return false
}

// GeoPoint is a WGS84 coordinate, longitude first.
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type Location struct {
	Point   GeoPoint `json:"point"`
	Address string   `json:"address,omitempty"`
}

type MachineryImage struct {
	Index int32  `json:"index"`
	URL   string `json:"url"`
}

// Machinery is a rentable asset owned by exactly one user. Availability
// is false whenever a pending or accepted booking references the item.
type Machinery struct {
	ID                  int32             `json:"id"`
	OwnerID             int32             `json:"owner_id"`
	Owner               *UserSummary      `json:"owner,omitempty"` // populated on detail fetches
	Name                string            `json:"name"`
	Type                MachineryType     `json:"type"`
	Description         string            `json:"description"`
	HourlyRateCents     int32             `json:"hourly_rate_cents"`
	DailyRateCents      int32             `json:"daily_rate_cents"`
	OperatorAvailable   bool              `json:"operator_available"`
	OperatorChargeCents int32             `json:"operator_charge_cents"`
	Availability        bool              `json:"availability"`
	Location            Location          `json:"location"`
	Images              []MachineryImage  `json:"images"`
	Specifications      map[string]string `json:"specifications,omitempty"`
	CreatedOn           time.Time         `json:"created_on"`
	UpdatedOn           time.Time         `json:"updated_on"`
}
