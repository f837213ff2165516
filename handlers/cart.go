package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Agent-cat/Midland/apperr"
	"github.com/Agent-cat/Midland/config"
	"github.com/Agent-cat/Midland/models"
)

type CartController struct {
	users      *mongo.Collection
	properties *mongo.Collection
}

func NewCartController() *CartController {
	return &CartController{
		users:      config.GetCollection(config.CollectionName("MONGODB_COLLECTION_USER", "user")),
		properties: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

// AddToCart appends a property reference to the user's cart. Adding an id
// already present is a conflict; the cart never holds duplicates.
func (cc *CartController) AddToCart(c echo.Context) error {
	user, propertyID, err := cc.loadCartTarget(c)
	if err != nil {
		return fail(c, err)
	}

	if err := user.AddToCart(propertyID); err != nil {
		return fail(c, err)
	}
	if err := cc.saveCart(c.Request().Context(), user); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Property added to cart successfully",
		"cart":    user.Cart,
	})
}

// RemoveFromCart filters a property reference out of the cart. Removing an
// absent id succeeds and returns the cart unchanged.
func (cc *CartController) RemoveFromCart(c echo.Context) error {
	user, propertyID, err := cc.loadCartTarget(c)
	if err != nil {
		return fail(c, err)
	}

	user.RemoveFromCart(propertyID)
	if err := cc.saveCart(c.Request().Context(), user); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Property removed from cart successfully",
		"cart":    user.Cart,
	})
}

// GetCart resolves the user's cart to full property records, preserving
// insertion order. References to properties deleted since being carted are
// skipped.
func (cc *CartController) GetCart(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return fail(c, apperr.Validation("Invalid user ID"))
	}

	ctx := c.Request().Context()
	var user models.User
	if err := cc.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return fail(c, apperr.NotFound("User not found"))
		}
		return fail(c, apperr.Internal("Failed to fetch user", err))
	}

	properties := []models.Property{}
	if len(user.Cart) > 0 {
		cursor, err := cc.properties.Find(ctx, bson.M{"_id": bson.M{"$in": user.Cart}})
		if err != nil {
			return fail(c, apperr.Internal("Failed to fetch cart", err))
		}
		defer cursor.Close(ctx)

		byID := map[primitive.ObjectID]models.Property{}
		for cursor.Next(ctx) {
			var property models.Property
			if err := cursor.Decode(&property); err != nil {
				continue
			}
			byID[property.ID] = property
		}
		for _, id := range user.Cart {
			if property, ok := byID[id]; ok {
				properties = append(properties, property)
			}
		}
	}
	return c.JSON(http.StatusOK, properties)
}

// loadCartTarget binds the request and runs the shared existence checks:
// well-formed ids, user present, property present.
func (cc *CartController) loadCartTarget(c echo.Context) (*models.User, primitive.ObjectID, error) {
	var req models.CartRequest
	if err := c.Bind(&req); err != nil {
		return nil, primitive.NilObjectID, apperr.Validation("Invalid request body")
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, primitive.NilObjectID, apperr.Validation("Invalid user ID")
	}
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return nil, primitive.NilObjectID, apperr.Validation("Invalid property ID")
	}

	ctx := c.Request().Context()
	var user models.User
	if err := cc.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, primitive.NilObjectID, apperr.NotFound("User not found")
		}
		return nil, primitive.NilObjectID, apperr.Internal("Failed to fetch user", err)
	}

	count, err := cc.properties.CountDocuments(ctx, bson.M{"_id": propertyID})
	if err != nil {
		return nil, primitive.NilObjectID, apperr.Internal("Failed to check property existence", err)
	}
	if count == 0 {
		return nil, primitive.NilObjectID, apperr.NotFound("Property not found")
	}

	return &user, propertyID, nil
}

func (cc *CartController) saveCart(ctx context.Context, user *models.User) error {
	_, err := cc.users.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"cart":       user.Cart,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return apperr.Internal("Failed to update cart", err)
	}
	return nil
}
