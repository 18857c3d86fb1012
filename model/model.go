package model

import "time"

// Business is one row of the municipal directory. JSON keys keep the
// trailing-underscore naming of the upstream GIS dataset.
type Business struct {
	BusinessID     string  `json:"businessid_"`
	BusinessName   string  `json:"businessname_"`
	RepName        string  `json:"repname_"`
	LongLat        string  `json:"longlat_"`
	Barangay       string  `json:"barangay_"`
	Municipality   string  `json:"municipality_"`
	Province       string  `json:"province_"`
	Street         string  `json:"street_"`
	HouseNo        string  `json:"houseno_"`
	DTIExpiry      *string `json:"dtiexpiry_"`
	SECExpiry      *string `json:"secexpiry_"`
	CDAExpiry      *string `json:"cdaexpiry_"`
}

type BusinessNameInfo struct {
	BusinessID      string `json:"businessid_"`
	IsMain          bool   `json:"ismain_"`
	BusinessName    string `json:"businessname_"`
	DateEstablished string `json:"dateestablished_"`
	OwnershipType   string `json:"ownershiptype_"`
	RegisteredCEO   string `json:"registeredceo_"`
	TradeName       string `json:"tradename_"`
	Status          bool   `json:"status_"`
}

type BusinessAddress struct {
	Province     string `json:"province_"`
	Municipality string `json:"municipality_"`
	Barangay     string `json:"barangay_"`
	Street       string `json:"street_"`
	HouseNo      string `json:"houseno_"`
	LongLat      string `json:"longlat_"`
	CellNo       string `json:"cellno_"`
	Email        string `json:"email_"`
}

type BusinessRepresentative struct {
	RepName     string `json:"repname_"`
	RepPosition string `json:"repposition_"`
	CellNo      string `json:"cellno_"`
	Email       string `json:"email_"`
}

type BusinessPermits struct {
	DTINo     string `json:"dtino_"`
	DTIExpiry string `json:"dtiexpiry_"`
	SECNo     string `json:"secno_"`
	SECExpiry string `json:"secexpiry_"`
	CDANo     string `json:"cdano_"`
	CDAExpiry string `json:"cdaexpiry_"`
}

type BusinessDetails struct {
	BusinessInfo   *BusinessNameInfo       `json:"businessInfo,omitempty"`
	Address        *BusinessAddress        `json:"address,omitempty"`
	Representative *BusinessRepresentative `json:"representative,omitempty"`
	Requirements   *BusinessPermits        `json:"requirements,omitempty"`
}

// Requirement is a supporting document attached to a draft application.
type Requirement struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
	FileName    string `json:"fileName,omitempty"`
}

const (
	RequirementPending  = "Pending"
	RequirementUploaded = "Uploaded"
)

// Application is a registration draft going through the wizard.
type Application struct {
	ID          string         `json:"id"`
	CurrentStep int            `json:"currentStep"`
	Submitted   bool           `json:"submitted"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Fields      map[string]any `json:"fields"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type MapMarker struct {
	Position     LatLng `json:"position"`
	BusinessID   string `json:"businessId"`
	BusinessName string `json:"businessName"`
	Owner        string `json:"owner"`
	Address      string `json:"address"`
	Compliance   string `json:"compliance"`
}

type WeatherData struct {
	City            string `json:"city"`
	Temperature     string `json:"temperature"`
	Description     string `json:"description"`
	FullDescription string `json:"fullDescription,omitempty"`
}

type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type DashboardStats struct {
	TotalBusinesses        int     `json:"totalBusinesses"`
	CompliantBusinesses    int     `json:"compliantBusinesses"`
	PendingBusinesses      int     `json:"pendingBusinesses"`
	NonCompliantBusinesses int     `json:"nonCompliantBusinesses"`
	Municipalities         int     `json:"municipalities"`
	GrowthRate             float64 `json:"growthRate"`
}

type DashboardSummary struct {
	Greeting        string       `json:"greeting"`
	Timestamp       string       `json:"timestamp"`
	Weather         *WeatherData `json:"weather"`
	WeatherGreeting string       `json:"weatherGreeting"`
	SystemInfo      []string     `json:"systemInfo"`
	News            []NewsItem   `json:"news"`
}
