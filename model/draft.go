package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Draft is the typed view over an application's field bag. Every wizard step
// contributes its own disjoint group of fields; the JSON keys are the flat
// field names the portal front end writes.
type Draft struct {
	TaxpayerFields
	BusinessFields
	OperationFields
	UndertakingFields
}

// TaxpayerFields is step 1: who is registering.
type TaxpayerFields struct {
	TaxpayerType  string `json:"taxpayerType"`
	FullName      string `json:"fullName"`
	DOB           string `json:"dob"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	Terms         bool   `json:"terms"`
	Newsletter    bool   `json:"newsletter"`

	RegistrantName     string `json:"registrantName"`
	RegistrantPosition string `json:"registrantPosition"`
	OwnershipType      string `json:"ownershipType"`

	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`

	BirthDate   string `json:"birthDate"`
	Gender      string `json:"gender"`
	CivilStatus string `json:"civilStatus"`

	ProvinceName     string `json:"provinceName"`
	CityMunicipality string `json:"cityMunicipality"`
	BarangayName     string `json:"barangayName"`
	Street           string `json:"street"`
	BuildingName     string `json:"buildingName"`
	HouseNumber      string `json:"houseNumber"`
	Block            string `json:"block"`
	Landmark         string `json:"landmark"`
	GoogleMapAddress string `json:"googleMapAddress"`
	TIN              string `json:"tin"`
}

// BusinessFields is step 2: the business being registered.
type BusinessFields struct {
	BusinessType       string `json:"businessType"`
	RegistrationNumber string `json:"registrationNumber"`
	SameAsBusinessName bool   `json:"sameAsBusinessName"`
	Branch             bool   `json:"branch"`
	ForeignCompany     bool   `json:"foreignCompany"`
	BusinessName       string `json:"businessName"`
	DateEstablished    string `json:"dateEstablished"`
	PresidentName      string `json:"presidentName"`
	BuildingSpace      string `json:"buildingSpace"`
	CommercialBuilding bool   `json:"commercialBuilding"`
	TradeName          bool   `json:"tradeName"`
	Subdivision        string `json:"subdivision"`
	TelephoneNo        string `json:"telephoneNo"`
	CellphoneNo        string `json:"cellphoneNo"`
	FaxNo              string `json:"faxNo"`
	EmailAddress       string `json:"emailAddress"`
}

// OperationFields is step 3: permits, clearances and attached requirements.
type OperationFields struct {
	DTINo             string `json:"dtiNo"`
	SECRegistrationNo string `json:"secRegistrationNo"`
	DTIIssuedDate     string `json:"dtiIssuedDate"`
	DTIExpirationDate string `json:"dtiExpirationDate"`
	CDANo             string `json:"cdaNo"`
	CDAIssuedDate     string `json:"cdaIssuedDate"`
	CDAExpirationDate string `json:"cdaExpirationDate"`

	LocalClearance     string `json:"localClearance"`
	LocalClearanceDate string `json:"localClearanceDate"`

	CommunityTaxCertNo     string `json:"communityTaxCertNo"`
	CommunityTaxPlace      string `json:"communityTaxPlace"`
	CommunityTaxIssuedDate string `json:"communityTaxIssuedDate"`
	CommunityTaxAmount     string `json:"communityTaxAmount"`
	HasCommunityTaxCert    string `json:"hasCommunityTaxCert"`

	SSSNo             string `json:"sssNo"`
	SSSDateRegistered string `json:"sssDateRegistered"`
	SSSExpirationDate string `json:"sssExpirationDate"`
}

// UndertakingFields is step 4: the sworn undertaking plus the free-form
// activity and contact details reviewed on the summary screen.
type UndertakingFields struct {
	AgreedToTerms bool `json:"agreedToTerms"`

	PrimaryActivity   string `json:"primaryActivity"`
	SecondaryActivity string `json:"secondaryActivity"`
	ProductsServices  string `json:"productsServices"`

	EmergencyName      string `json:"emergencyName"`
	EmergencyContact   string `json:"emergencyContact"`
	InsuranceProvider  string `json:"insuranceProvider"`
	PolicyNumber       string `json:"policyNumber"`
	AdditionalComments string `json:"additionalComments"`
}

// DraftDefaults is the field bag a freshly created application starts with.
// Keys are globally unique across steps; the wizard relies on that.
func DraftDefaults() map[string]any {
	defaults := map[string]any{}

	d := Draft{}
	d.TaxpayerType = "individual"
	d.BusinessType = "sole"

	raw, _ := json.Marshal(d)
	_ = json.Unmarshal(raw, &defaults)
	return defaults
}

// DraftFromFields builds the typed view from the stored bag. Unknown keys are
// ignored, missing keys keep their zero value.
func DraftFromFields(fields map[string]any) (Draft, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return Draft{}, err
	}
	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the draft before final submission. Field keys in the
// returned map match the front end's input ids.
func (d Draft) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(d.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(d.Email) == "" {
		errs["email"] = "Email is required"
	} else if !reEmail.MatchString(d.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(d.BusinessName) == "" {
		errs["businessName"] = "Business name is required"
	}
	if !d.AgreedToTerms {
		errs["agreedToTerms"] = "You must agree to the undertaking"
	}

	return errs
}
