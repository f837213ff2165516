package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Agent-cat/Midland/apperr"
)

func intPtr(v int) *int { return &v }

// validProperty builds a payload satisfying the common and type-conditional
// requirements for the given type.
func validProperty(propertyType string) Property {
	p := Property{
		Name:             "Sunrise Residency",
		Type:             propertyType,
		Location:         "guntur",
		Price:            5000000,
		Address:          "12-3-45, Lakshmipuram",
		SellerID:         primitive.NewObjectID(),
		SellerName:       "Ravi Kumar",
		Images:           []string{"a.jpg"},
		SaleOrRent:       "sale",
		PropertyCategory: "residential",
	}
	switch propertyType {
	case TypeFlats, TypeHouses, TypeVillas:
		p.BHK = intPtr(3)
		p.FurnishingStatus = "furnished"
		p.Flooring = "tiled"
	case TypeShops:
		p.FurnishingStatus = "unfurnished"
		p.Flooring = "marbled"
	case TypeFarmhouse:
		p.BHK = intPtr(4)
		p.Area = &Area{Value: 2, Unit: "acres"}
	case TypeAgricultureLand:
		p.Area = &Area{Value: 5, Unit: "acres"}
		p.SoilType = "black"
	case TypeResidentialLand:
		p.Area = &Area{Value: 200, Unit: "sq.yard"}
	}
	return p
}

func requireMissing(t *testing.T, err error, fields ...string) {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*apperr.ValidationError)
	require.True(t, ok, "expected ValidationError, got %T", err)
	for _, f := range fields {
		require.Contains(t, verr.Fields, f)
	}
}

func TestValidateAcceptsEveryType(t *testing.T) {
	for _, propertyType := range PropertyTypes {
		t.Run(propertyType, func(t *testing.T) {
			p := validProperty(propertyType)
			require.NoError(t, p.Validate())
		})
	}
}

func TestValidateTypeConditionalFields(t *testing.T) {
	t.Run("flats without bhk", func(t *testing.T) {
		p := validProperty(TypeFlats)
		p.BHK = nil
		requireMissing(t, p.Validate(), "bhk")
	})

	t.Run("flats without furnishing and flooring", func(t *testing.T) {
		p := validProperty(TypeFlats)
		p.FurnishingStatus = ""
		p.Flooring = ""
		requireMissing(t, p.Validate(), "furnishingStatus", "flooring")
	})

	t.Run("shops need no bhk", func(t *testing.T) {
		p := validProperty(TypeShops)
		require.Nil(t, p.BHK)
		require.NoError(t, p.Validate())
	})

	t.Run("agriculture land without area and soil", func(t *testing.T) {
		p := validProperty(TypeAgricultureLand)
		p.Area = nil
		p.SoilType = ""
		requireMissing(t, p.Validate(), "area.value", "area.unit", "soil_type")
	})

	t.Run("farmhouse needs bhk and area", func(t *testing.T) {
		p := validProperty(TypeFarmhouse)
		p.BHK = nil
		p.Area = nil
		requireMissing(t, p.Validate(), "bhk", "area.value", "area.unit")
	})

	t.Run("residential land without area unit", func(t *testing.T) {
		p := validProperty(TypeResidentialLand)
		p.Area = &Area{Value: 200}
		requireMissing(t, p.Validate(), "area.unit")
	})
}

func TestValidateCommonFields(t *testing.T) {
	t.Run("missing always-required fields", func(t *testing.T) {
		p := validProperty(TypeFlats)
		p.Name = ""
		p.Address = ""
		p.SellerName = ""
		requireMissing(t, p.Validate(), "name", "address", "sellerName")
	})

	t.Run("zero price", func(t *testing.T) {
		p := validProperty(TypeHouses)
		p.Price = 0
		requireMissing(t, p.Validate(), "price")
	})

	t.Run("negative price", func(t *testing.T) {
		p := validProperty(TypeHouses)
		p.Price = -100
		err := p.Validate()
		require.Error(t, err)
		verr := err.(*apperr.ValidationError)
		require.Contains(t, verr.Fields, "price")
	})

	t.Run("empty images", func(t *testing.T) {
		p := validProperty(TypeVillas)
		p.Images = nil
		requireMissing(t, p.Validate(), "images")
	})
}

func TestValidateEnums(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Property)
		field   string
		payload string
	}{
		{"unknown type", func(p *Property) { p.Type = "castle" }, "type", TypeFlats},
		{"unknown location", func(p *Property) { p.Location = "hyderabad" }, "location", TypeFlats},
		{"unknown sale mode", func(p *Property) { p.SaleOrRent = "lease" }, "saleOrRent", TypeFlats},
		{"unknown category", func(p *Property) { p.PropertyCategory = "industrial" }, "propertyCategory", TypeFlats},
		{"unknown area unit", func(p *Property) { p.Area.Unit = "lightyears" }, "area.unit", TypeAgricultureLand},
		{"unknown flooring", func(p *Property) { p.Flooring = "carpeted" }, "flooring", TypeShops},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProperty(tc.payload)
			tc.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			verr, ok := err.(*apperr.ValidationError)
			require.True(t, ok)
			require.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestAreaUnitsClosedSet(t *testing.T) {
	require.Len(t, AreaUnits, 17)
	p := validProperty(TypeResidentialLand)
	for _, unit := range AreaUnits {
		p.Area.Unit = unit
		require.NoError(t, p.Validate())
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("synthesizes overview from bhk", func(t *testing.T) {
		p := validProperty(TypeFlats)
		p.ApplyDefaults()
		require.Equal(t, "3 BHK flats for sale in guntur", p.Overview)
	})

	t.Run("synthesizes overview from area when no bhk", func(t *testing.T) {
		p := validProperty(TypeAgricultureLand)
		p.ApplyDefaults()
		require.Equal(t, "5 acres agriculture land for sale in guntur", p.Overview)
	})

	t.Run("keeps provided overview", func(t *testing.T) {
		p := validProperty(TypeFlats)
		p.Overview = "hand-written pitch"
		p.ApplyDefaults()
		require.Equal(t, "hand-written pitch", p.Overview)
	})

	t.Run("defaults status and slices", func(t *testing.T) {
		p := validProperty(TypeFlats)
		p.ApplyDefaults()
		require.Equal(t, StatusPending, p.Status)
		require.NotNil(t, p.Videos)
		require.NotNil(t, p.Amenities)
	})

	t.Run("never synthesizes dimensions", func(t *testing.T) {
		p := validProperty(TypeFarmhouse)
		p.ApplyDefaults()
		require.Nil(t, p.Dimensions)
	})

	t.Run("fills measurement units", func(t *testing.T) {
		p := validProperty(TypeFlats)
		p.Dimensions = &Dimensions{Length: 40, Width: 30}
		p.CarpetArea = &MeasuredArea{Value: 1200}
		p.ApplyDefaults()
		require.Equal(t, "feet", p.Dimensions.Unit)
		require.Equal(t, "sq.ft", p.CarpetArea.Unit)
	})
}
