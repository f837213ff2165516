package models

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Agent-cat/Midland/apperr"
)

const (
	TypeFlats           = "flats"
	TypeHouses          = "houses"
	TypeVillas          = "villas"
	TypeShops           = "shops"
	TypeAgricultureLand = "agriculture land"
	TypeResidentialLand = "residential land"
	TypeFarmhouse       = "farmhouse"
)

const (
	StatusAvailable = "available"
	StatusSold      = "sold"
	StatusRented    = "rented"
	StatusPending   = "pending"
)

var PropertyTypes = []string{
	TypeFlats, TypeHouses, TypeVillas, TypeShops,
	TypeAgricultureLand, TypeResidentialLand, TypeFarmhouse,
}

var Locations = []string{"vijayawada", "amravathi", "guntur"}

var PropertyStatuses = []string{StatusAvailable, StatusSold, StatusRented, StatusPending}

var AreaUnits = []string{
	"sq.yard", "sq.m", "acres", "marla", "cents", "bigha", "kottah", "kanal",
	"grounds", "ares", "biswa", "guntha", "aankadam", "hectares", "rood",
	"chataks", "perch",
}

var (
	DimensionUnits    = []string{"feet", "meters"}
	MeasuredAreaUnits = []string{"sq.ft", "sq.yard", "sq.m"}
	FurnishingValues  = []string{"furnished", "unfurnished", "semi-furnished"}
	FlooringValues    = []string{"tiled", "marbled"}
	SaleOrRentValues  = []string{"sale", "rent"}
	CategoryValues    = []string{"residential", "commercial"}
)

// Area is the land-extent measurement for plot-like types.
type Area struct {
	Value float64 `bson:"value,omitempty" json:"value,omitempty"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Dimensions is the structured length/width pair. It is never synthesized;
// sellers either provide it or it stays absent.
type Dimensions struct {
	Length float64 `bson:"length,omitempty" json:"length,omitempty"`
	Width  float64 `bson:"width,omitempty" json:"width,omitempty"`
	Unit   string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

// MeasuredArea is a floor-area figure (carpet or built-up).
type MeasuredArea struct {
	Value float64 `bson:"value,omitempty" json:"value,omitempty"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

type Property struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name" validate:"required"`
	Type             string               `bson:"type" json:"type" validate:"required"`
	Location         string               `bson:"location" json:"location" validate:"required"`
	Price            float64              `bson:"price" json:"price" validate:"required,gt=0"`
	Address          string               `bson:"address" json:"address" validate:"required"`
	SellerID         primitive.ObjectID   `bson:"sellerId" json:"sellerId" validate:"required"`
	SellerName       string               `bson:"sellerName" json:"sellerName" validate:"required"`
	Status           string               `bson:"status" json:"status"`
	Images           []string             `bson:"images" json:"images" validate:"required,min=1"`
	Videos           []string             `bson:"videos" json:"videos"`
	BHK              *int                 `bson:"bhk,omitempty" json:"bhk,omitempty"`
	Area             *Area                `bson:"area,omitempty" json:"area,omitempty"`
	Bedroom          *int                 `bson:"bedroom,omitempty" json:"bedroom,omitempty"`
	Bathroom         *int                 `bson:"bathroom,omitempty" json:"bathroom,omitempty"`
	Kitchen          *int                 `bson:"kitchen,omitempty" json:"kitchen,omitempty"`
	Floors           *int                 `bson:"floors,omitempty" json:"floors,omitempty"`
	Washroom         *int                 `bson:"washroom,omitempty" json:"washroom,omitempty"`
	SoilType         string               `bson:"soil_type,omitempty" json:"soil_type,omitempty"`
	WaterSource      string               `bson:"water_source,omitempty" json:"water_source,omitempty"`
	Facing           string               `bson:"facing,omitempty" json:"facing,omitempty"`
	Dimensions       *Dimensions          `bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	CarpetArea       *MeasuredArea        `bson:"carpetArea,omitempty" json:"carpetArea,omitempty"`
	BuiltUpArea      *MeasuredArea        `bson:"builtUpArea,omitempty" json:"builtUpArea,omitempty"`
	FurnishingStatus string               `bson:"furnishingStatus,omitempty" json:"furnishingStatus,omitempty"`
	Flooring         string               `bson:"flooring,omitempty" json:"flooring,omitempty"`
	HasBoundaryWall  bool                 `bson:"hasBoundaryWall" json:"hasBoundaryWall"`
	Amenities        []string             `bson:"amenities" json:"amenities"`
	Overview         string               `bson:"overview,omitempty" json:"overview,omitempty"`
	Details          string               `bson:"details,omitempty" json:"details,omitempty"`
	LocationMap      string               `bson:"locationMap,omitempty" json:"locationMap,omitempty"`
	IsVerified       bool                 `bson:"isVerified" json:"isVerified"`
	VerificationNote string               `bson:"verificationNote,omitempty" json:"verificationNote,omitempty"`
	VerifiedAt       *time.Time           `bson:"verifiedAt,omitempty" json:"verifiedAt,omitempty"`
	VerifiedBy       *primitive.ObjectID  `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	SaleOrRent       string               `bson:"saleOrRent" json:"saleOrRent" validate:"required"`
	PropertyCategory string               `bson:"propertyCategory" json:"propertyCategory" validate:"required"`
	IsViewed         bool                 `bson:"isViewed" json:"isViewed"`
	Views            []primitive.ObjectID `bson:"views,omitempty" json:"views,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldCheck is one conditionally-required field: its reported name and a
// presence predicate.
type fieldCheck struct {
	name    string
	present func(*Property) bool
}

var (
	needBHK = fieldCheck{"bhk", func(p *Property) bool { return p.BHK != nil }}

	needAreaValue = fieldCheck{"area.value", func(p *Property) bool {
		return p.Area != nil && p.Area.Value > 0
	}}
	needAreaUnit = fieldCheck{"area.unit", func(p *Property) bool {
		return p.Area != nil && p.Area.Unit != ""
	}}
	needSoilType = fieldCheck{"soil_type", func(p *Property) bool { return p.SoilType != "" }}

	needFurnishing = fieldCheck{"furnishingStatus", func(p *Property) bool {
		return p.FurnishingStatus != ""
	}}
	needFlooring = fieldCheck{"flooring", func(p *Property) bool { return p.Flooring != "" }}
)

// typeRequirements is the single dispatch point for the polymorphic schema:
// every property type maps to the fields it requires beyond the common set.
var typeRequirements = map[string][]fieldCheck{
	TypeFlats:           {needBHK, needFurnishing, needFlooring},
	TypeHouses:          {needBHK, needFurnishing, needFlooring},
	TypeVillas:          {needBHK, needFurnishing, needFlooring},
	TypeShops:           {needFurnishing, needFlooring},
	TypeFarmhouse:       {needBHK, needAreaValue, needAreaUnit},
	TypeAgricultureLand: {needAreaValue, needAreaUnit, needSoilType},
	TypeResidentialLand: {needAreaValue, needAreaUnit},
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Validate checks the common required fields, every enum, and the
// type-conditional requirements. It reports all missing fields at once so a
// seller can fix a submission in one round trip.
func (p *Property) Validate() error {
	var missing []string
	var invalid []string

	if err := validate.Struct(p); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperr.Internal("property validation failed", err)
		}
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required", "min":
				missing = append(missing, fe.Field())
			default:
				invalid = append(invalid, fe.Field())
			}
		}
	}

	if p.Type != "" && !contains(PropertyTypes, p.Type) {
		invalid = append(invalid, "type")
	}
	if p.Location != "" && !contains(Locations, p.Location) {
		invalid = append(invalid, "location")
	}
	if p.SaleOrRent != "" && !contains(SaleOrRentValues, p.SaleOrRent) {
		invalid = append(invalid, "saleOrRent")
	}
	if p.PropertyCategory != "" && !contains(CategoryValues, p.PropertyCategory) {
		invalid = append(invalid, "propertyCategory")
	}
	if p.Status != "" && !contains(PropertyStatuses, p.Status) {
		invalid = append(invalid, "status")
	}
	if p.FurnishingStatus != "" && !contains(FurnishingValues, p.FurnishingStatus) {
		invalid = append(invalid, "furnishingStatus")
	}
	if p.Flooring != "" && !contains(FlooringValues, p.Flooring) {
		invalid = append(invalid, "flooring")
	}
	if p.Area != nil && p.Area.Unit != "" && !contains(AreaUnits, p.Area.Unit) {
		invalid = append(invalid, "area.unit")
	}
	if p.Dimensions != nil && p.Dimensions.Unit != "" && !contains(DimensionUnits, p.Dimensions.Unit) {
		invalid = append(invalid, "dimensions.unit")
	}
	if p.CarpetArea != nil && p.CarpetArea.Unit != "" && !contains(MeasuredAreaUnits, p.CarpetArea.Unit) {
		invalid = append(invalid, "carpetArea.unit")
	}
	if p.BuiltUpArea != nil && p.BuiltUpArea.Unit != "" && !contains(MeasuredAreaUnits, p.BuiltUpArea.Unit) {
		invalid = append(invalid, "builtUpArea.unit")
	}

	if contains(PropertyTypes, p.Type) {
		for _, check := range typeRequirements[p.Type] {
			if !check.present(p) {
				missing = append(missing, check.name)
			}
		}
	}

	if len(missing) > 0 {
		return apperr.Validation("missing required fields", missing...)
	}
	if len(invalid) > 0 {
		return apperr.Validation("invalid field values", invalid...)
	}
	return nil
}

// ApplyDefaults fills creation-time defaults: pending status, empty slices,
// measurement units, and the synthesized overview line.
func (p *Property) ApplyDefaults() {
	if p.Status == "" {
		p.Status = StatusPending
	}
	if p.Videos == nil {
		p.Videos = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if p.Dimensions != nil && p.Dimensions.Unit == "" {
		p.Dimensions.Unit = "feet"
	}
	if p.CarpetArea != nil && p.CarpetArea.Unit == "" {
		p.CarpetArea.Unit = "sq.ft"
	}
	if p.BuiltUpArea != nil && p.BuiltUpArea.Unit == "" {
		p.BuiltUpArea.Unit = "sq.ft"
	}
	if p.Overview == "" {
		p.Overview = p.synthesizeOverview()
	}
}

func (p *Property) synthesizeOverview() string {
	if p.BHK != nil {
		return fmt.Sprintf("%d BHK %s for %s in %s", *p.BHK, p.Type, p.SaleOrRent, p.Location)
	}
	if p.Area != nil && p.Area.Value > 0 {
		return fmt.Sprintf("%g %s %s for %s in %s", p.Area.Value, p.Area.Unit, p.Type, p.SaleOrRent, p.Location)
	}
	return fmt.Sprintf("%s for %s in %s", p.Type, p.SaleOrRent, p.Location)
}
