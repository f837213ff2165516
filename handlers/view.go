package handlers

import (
	"context"
	"net/http"
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

type ViewController struct {
	views      *mongo.Collection
	properties *mongo.Collection
	users      *mongo.Collection
}

func NewViewController() *ViewController {
	return &ViewController{
		views:      config.GetCollection(config.CollectionName("MONGODB_COLLECTION_VIEWS", "property_views")),
		properties: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
		users:      config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USER", "user")),
	}
}

type recordViewRequest struct {
	UserID string `json:"userId"`
	Phone  string `json:"phone"`
}

// RecordView appends a lead to the ledger. A repeat reveal by the same user
// for the same property within the dedup window refreshes the existing row
// instead of inserting a new one.
func (vc *ViewController) RecordView(c echo.Context) error {
	propertyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var req recordViewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid user ID"})
	}

	ctx := c.Request().Context()
	if err := vc.propertyExists(ctx, propertyID); err != nil {
		return fail(c, err)
	}

	now := time.Now()
	windowStart := now.Add(-models.ViewDedupWindow)

	var existing models.PropertyView
	err = vc.views.FindOne(ctx, bson.M{
		"userId":     userID,
		"propertyId": propertyID,
		"viewedAt":   bson.M{"$gt": windowStart},
	}).Decode(&existing)
	if err == nil {
		existing.ViewedAt = now
		if _, err := vc.views.UpdateByID(ctx, existing.ID, bson.M{"$set": bson.M{"viewedAt": now}}); err != nil {
			return fail(c, apperr.Internal("Failed to record property view", err))
		}
		return c.JSON(http.StatusOK, existing)
	}
	if err != mongo.ErrNoDocuments {
		return fail(c, apperr.Internal("Failed to record property view", err))
	}

	view := models.PropertyView{
		ID:         primitive.NewObjectID(),
		PropertyID: propertyID,
		UserID:     userID,
		Phone:      req.Phone,
		ViewedAt:   now,
		Status:     models.ViewStatusPending,
	}
	if _, err := vc.views.InsertOne(ctx, view); err != nil {
		return fail(c, apperr.Internal("Failed to record property view", err))
	}

	// Denormalized markers on the property. Best-effort: the ledger is the
	// source of truth and these are only display caches.
	_, err = vc.properties.UpdateByID(ctx, propertyID, bson.M{
		"$set":  bson.M{"isViewed": true},
		"$push": bson.M{"views": view.ID},
	})
	if err != nil {
		utils.Warn("failed to update property view markers",
			zap.String("propertyId", propertyID.Hex()), zap.Error(err))
	}

	return c.JSON(http.StatusCreated, view)
}

// ListPropertyViews returns one property's leads, newest first, with the
// viewer summary joined in.
func (vc *ViewController) ListPropertyViews(c echo.Context) error {
	propertyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	ctx := c.Request().Context()
	views, err := vc.findViews(ctx, bson.M{"propertyId": propertyID})
	if err != nil {
		return fail(c, apperr.Internal("Failed to fetch views", err))
	}

	details, err := vc.joinViews(ctx, views, false)
	if err != nil {
		return fail(c, apperr.Internal("Failed to fetch views", err))
	}
	return c.JSON(http.StatusOK, details)
}

// AllViews returns the whole ledger for lead management, with viewer and
// property summaries joined in.
func (vc *ViewController) AllViews(c echo.Context) error {
	ctx := c.Request().Context()
	views, err := vc.findViews(ctx, bson.M{})
	if err != nil {
		return fail(c, apperr.Internal("Failed to fetch views", err))
	}

	details, err := vc.joinViews(ctx, views, true)
	if err != nil {
		return fail(c, apperr.Internal("Failed to fetch views", err))
	}
	return c.JSON(http.StatusOK, details)
}

// UpdateView is the admin lead-management update: workflow status plus
// free-form remarks.
func (vc *ViewController) UpdateView(c echo.Context) error {
	viewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid view ID"})
	}

	var req models.UpdateViewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var view models.PropertyView
	err = vc.views.FindOneAndUpdate(
		c.Request().Context(),
		bson.M{"_id": viewID},
		bson.M{"$set": bson.M{"status": req.Status, "remarks": req.Remarks}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&view)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fail(c, apperr.NotFound("View not found"))
		}
		return fail(c, apperr.Internal("Failed to update view", err))
	}
	return c.JSON(http.StatusOK, view)
}

func (vc *ViewController) propertyExists(ctx context.Context, propertyID primitive.ObjectID) error {
	count, err := vc.properties.CountDocuments(ctx, bson.M{"_id": propertyID})
	if err != nil {
		return apperr.Internal("Failed to check property existence", err)
	}
	if count == 0 {
		return apperr.NotFound("Property not found")
	}
	return nil
}

func (vc *ViewController) findViews(ctx context.Context, filter bson.M) ([]models.PropertyView, error) {
	cursor, err := vc.views.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "viewedAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	views := []models.PropertyView{}
	for cursor.Next(ctx) {
		var view models.PropertyView
		if err := cursor.Decode(&view); err != nil {
			continue
		}
		views = append(views, view)
	}
	return views, cursor.Err()
}

// joinViews resolves the display joins with $in lookups keyed by the ids the
// views reference.
func (vc *ViewController) joinViews(ctx context.Context, views []models.PropertyView, withProperties bool) ([]models.PropertyViewDetail, error) {
	userIDs := make([]primitive.ObjectID, 0, len(views))
	propertyIDs := make([]primitive.ObjectID, 0, len(views))
	for _, v := range views {
		userIDs = append(userIDs, v.UserID)
		propertyIDs = append(propertyIDs, v.PropertyID)
	}

	userByID := map[primitive.ObjectID]models.UserSummary{}
	if len(userIDs) > 0 {
		cursor, err := vc.users.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		for cursor.Next(ctx) {
			var u models.UserSummary
			if err := cursor.Decode(&u); err != nil {
				continue
			}
			userByID[u.ID] = u
		}
	}

	propertyByID := map[primitive.ObjectID]models.PropertySummary{}
	if withProperties && len(propertyIDs) > 0 {
		cursor, err := vc.properties.Find(ctx, bson.M{"_id": bson.M{"$in": propertyIDs}})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		for cursor.Next(ctx) {
			var p models.PropertySummary
			if err := cursor.Decode(&p); err != nil {
				continue
			}
			propertyByID[p.ID] = p
		}
	}

	details := make([]models.PropertyViewDetail, 0, len(views))
	for _, v := range views {
		detail := models.PropertyViewDetail{PropertyView: v}
		if u, ok := userByID[v.UserID]; ok {
			user := u
			detail.User = &user
		}
		if p, ok := propertyByID[v.PropertyID]; ok {
			property := p
			detail.Property = &property
		}
		details = append(details, detail)
	}
	return details, nil
}
