package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Agent-cat/Midland/apperr"
	"github.com/Agent-cat/Midland/config"
	"github.com/Agent-cat/Midland/models"
	"github.com/Agent-cat/Midland/utils"
)

const listingCacheTTL = 60 * time.Second

type PropertyController struct {
	collection *mongo.Collection
}

func NewPropertyController() *PropertyController {
	name := config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")
	return &PropertyController{
		collection: config.GetCollection(name),
	}
}

// CreateProperty validates the type-conditional schema, rejects duplicates by
// (name, location, address) with the existing record attached, and persists
// the listing as pending and unverified.
func (pc *PropertyController) CreateProperty(c echo.Context) error {
	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if property.SellerID.IsZero() {
		if userID, ok := c.Get("user_id").(primitive.ObjectID); ok {
			property.SellerID = userID
		}
	}

	if err := property.Validate(); err != nil {
		return fail(c, err)
	}

	ctx := c.Request().Context()
	var existing models.Property
	err := pc.collection.FindOne(ctx, bson.M{
		"name":     property.Name,
		"location": property.Location,
		"address":  property.Address,
	}).Decode(&existing)
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":    "Property already exists",
			"property": existing,
		})
	}
	if err != mongo.ErrNoDocuments {
		return fail(c, apperr.Internal("Failed to check property existence", err))
	}

	property.ID = primitive.NewObjectID()
	property.Status = ""
	property.IsVerified = false
	property.VerificationNote = ""
	property.VerifiedAt = nil
	property.VerifiedBy = nil
	property.IsViewed = false
	property.Views = nil
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()
	property.ApplyDefaults()

	if _, err := pc.collection.InsertOne(ctx, property); err != nil {
		// The unique index is the authoritative duplicate check; a racing
		// insert surfaces here.
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Property already exists"})
		}
		return fail(c, apperr.Internal("Failed to create property", err))
	}
	return c.JSON(http.StatusCreated, property)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	var property models.Property
	err = pc.collection.FindOne(c.Request().Context(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fail(c, apperr.NotFound("Property not found"))
		}
		return fail(c, apperr.Internal("Failed to fetch property", err))
	}
	return c.JSON(http.StatusOK, property)
}

// UpdateProperty merges the partial payload over the stored document and
// re-validates the result, so type-conditional requirements hold after every
// update.
func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	var property models.Property
	err = pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fail(c, apperr.NotFound("Property not found"))
		}
		return fail(c, apperr.Internal("Failed to fetch property", err))
	}

	if userID, ok := c.Get("user_id").(primitive.ObjectID); ok {
		userRole, _ := c.Get("user_role").(string)
		if property.SellerID != userID && userRole != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
		}
	}

	// Binding into the loaded document gives merge semantics: only the
	// fields present in the payload change.
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	property.ID = id

	if err := property.Validate(); err != nil {
		return fail(c, err)
	}
	property.UpdatedAt = time.Now()

	if _, err := pc.collection.ReplaceOne(ctx, bson.M{"_id": id}, property); err != nil {
		return fail(c, apperr.Internal("Failed to update property", err))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Property updated successfully",
		"property": property,
	})
}

// DeleteProperty hard-deletes the listing. View-ledger rows are kept: they
// are historical lead records, and stale cart references drop out when the
// cart is resolved.
func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	var property models.Property
	err = pc.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fail(c, apperr.NotFound("Property not found"))
		}
		return fail(c, apperr.Internal("Failed to fetch property", err))
	}

	if userID, ok := c.Get("user_id").(primitive.ObjectID); ok {
		userRole, _ := c.Get("user_role").(string)
		if property.SellerID != userID && userRole != models.RoleAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
		}
	}

	if _, err := pc.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fail(c, apperr.Internal("Failed to delete property", err))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

func (pc *PropertyController) ListProperties(c echo.Context) error {
	query := bson.M{}
	params := map[string]string{}

	if location := c.QueryParam("location"); location != "" {
		query["location"] = location
		params["location"] = location
	}
	if propType := c.QueryParam("type"); propType != "" {
		query["type"] = propType
		params["type"] = propType
	}
	if status := c.QueryParam("status"); status != "" {
		query["status"] = status
		params["status"] = status
	}
	if saleOrRent := c.QueryParam("sale_or_rent"); saleOrRent != "" {
		query["saleOrRent"] = saleOrRent
		params["sale_or_rent"] = saleOrRent
	}
	if category := c.QueryParam("category"); category != "" {
		query["propertyCategory"] = category
		params["category"] = category
	}
	if bhk := c.QueryParam("bhk"); bhk != "" {
		if num, err := strconv.Atoi(bhk); err == nil {
			query["bhk"] = num
			params["bhk"] = bhk
		}
	}
	if priceMin := c.QueryParam("price_min"); priceMin != "" {
		if min, err := strconv.ParseFloat(priceMin, 64); err == nil {
			query["price"] = bson.M{"$gte": min}
			params["price_min"] = priceMin
		}
	}
	if priceMax := c.QueryParam("price_max"); priceMax != "" {
		if max, err := strconv.ParseFloat(priceMax, 64); err == nil {
			if existing, ok := query["price"].(bson.M); ok {
				existing["$lte"] = max
			} else {
				query["price"] = bson.M{"$lte": max}
			}
			params["price_max"] = priceMax
		}
	}
	if areaMin := c.QueryParam("area_min"); areaMin != "" {
		if min, err := strconv.ParseFloat(areaMin, 64); err == nil {
			query["area.value"] = bson.M{"$gte": min}
			params["area_min"] = areaMin
		}
	}
	if areaMax := c.QueryParam("area_max"); areaMax != "" {
		if max, err := strconv.ParseFloat(areaMax, 64); err == nil {
			if existing, ok := query["area.value"].(bson.M); ok {
				existing["$lte"] = max
			} else {
				query["area.value"] = bson.M{"$lte": max}
			}
			params["area_max"] = areaMax
		}
	}
	if verified := c.QueryParam("verified"); verified != "" {
		switch verified {
		case "true":
			query["isVerified"] = true
			params["verified"] = verified
		case "false":
			query["isVerified"] = false
			params["verified"] = verified
		}
	}
	if q := c.QueryParam("q"); q != "" {
		regex := bson.M{"$regex": q, "$options": "i"}
		query["$or"] = []bson.M{
			{"name": regex},
			{"address": regex},
			{"overview": regex},
			{"details": regex},
			{"sellerName": regex},
		}
		params["q"] = q
	}

	ctx := c.Request().Context()
	cacheKey := utils.GenerateQueryCacheKey("properties", params)
	var cached []models.Property
	if hit, err := utils.GetCached(ctx, cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	cursor, err := pc.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return fail(c, apperr.Internal("Failed to fetch properties", err))
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}

	if err := utils.SetCached(ctx, cacheKey, properties, listingCacheTTL); err != nil {
		utils.Debug("listing cache write failed", zap.Error(err))
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) SellerProperties(c echo.Context) error {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	ctx := c.Request().Context()
	cursor, err := pc.collection.Find(ctx, bson.M{"sellerId": sellerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return fail(c, apperr.Internal("Failed to fetch properties", err))
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		properties = append(properties, property)
	}
	return c.JSON(http.StatusOK, properties)
}

// VerifyProperty applies the admin verification decision as a full overwrite:
// approving stamps verifiedAt/verifiedBy, rejecting clears them and keeps
// only the note. Verification is independent of the listing status.
func (pc *PropertyController) VerifyProperty(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var req models.VerifyPropertyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.AdminID == "" {
		return fail(c, apperr.Validation("Admin ID is required"))
	}

	updates := bson.M{
		"isVerified":       req.IsVerified,
		"verificationNote": req.VerificationNote,
		"verifiedAt":       nil,
		"verifiedBy":       nil,
		"updatedAt":        time.Now(),
	}
	if req.IsVerified {
		adminID, err := primitive.ObjectIDFromHex(req.AdminID)
		if err != nil {
			return fail(c, apperr.Validation("Invalid admin ID"))
		}
		updates["verifiedAt"] = time.Now()
		updates["verifiedBy"] = adminID
	}

	var property models.Property
	err = pc.collection.FindOneAndUpdate(
		c.Request().Context(),
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fail(c, apperr.NotFound("Property not found"))
		}
		return fail(c, apperr.Internal("Failed to update property verification status", err))
	}

	message := "Property unverified successfully"
	if req.IsVerified {
		message = "Property verified successfully"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  message,
		"property": property,
	})
}
