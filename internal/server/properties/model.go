package properties

import "time"

// GeoPoint is a GeoJSON point, longitude first.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type Location struct {
	City         string   `json:"city"`
	District     string   `json:"district"`
	Neighborhood string   `json:"neighborhood"`
	Geo          GeoPoint `json:"geo"`
}

// Property is a real-estate listing. Images, location and selected
// features are stored as JSONB documents; everything else is a plain
// column.
type Property struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Price             int64               `json:"price"`
	Gross             int64               `json:"gross"`
	Net               int64               `json:"net"`
	NumberOfRoom      string              `json:"numberOfRoom"`
	BuildingAge       int                 `json:"buildingAge"`
	Floor             int                 `json:"floor"`
	NumberOfFloors    int                 `json:"numberOfFloors"`
	Heating           string              `json:"heating"`
	NumberOfBathrooms int                 `json:"numberOfBathrooms"`
	Kitchen           string              `json:"kitchen"`
	Balcony           int                 `json:"balcony"`
	Lift              string              `json:"lift"`
	Parking           string              `json:"parking"`
	Furnished         string              `json:"furnished"`
	Availability      string              `json:"availability"`
	Dues              int64               `json:"dues"`
	EligibleForLoan   string              `json:"eligibleForLoan"`
	TitleDeedStatus   string              `json:"titleDeedStatus"`
	Images            []string            `json:"images"`
	Location          Location            `json:"location"`
	UserID            string              `json:"userId"`
	PropertyType      string              `json:"propertyType"`
	ListingType       string              `json:"listingType"`
	SubType           string              `json:"subType,omitempty"`
	SelectedFeatures  map[string][]string `json:"selectedFeatures"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// Query narrows a listing search; zero values mean "any".
type Query struct {
	City         string
	District     string
	Neighborhood string
	PropertyType string
	ListingType  string
	SubType      string
	MinPrice     *int64
	MaxPrice     *int64
	MinNet       *int64
	MaxNet       *int64
}
