package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Agent-cat/Midland/apperr"
)

func TestCartAddAndRemove(t *testing.T) {
	user := User{Cart: []primitive.ObjectID{}}
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	require.NoError(t, user.AddToCart(first))
	require.NoError(t, user.AddToCart(second))
	require.Equal(t, []primitive.ObjectID{first, second}, user.Cart)

	err := user.AddToCart(first)
	require.Error(t, err)
	_, ok := err.(*apperr.ConflictError)
	require.True(t, ok, "duplicate add must be a conflict, got %T", err)
	require.Len(t, user.Cart, 2)

	user.RemoveFromCart(first)
	require.Equal(t, []primitive.ObjectID{second}, user.Cart)

	// Removing an absent id is a silent no-op.
	user.RemoveFromCart(first)
	require.Equal(t, []primitive.ObjectID{second}, user.Cart)
}

func TestCartNeverHoldsDuplicates(t *testing.T) {
	user := User{}
	id := primitive.NewObjectID()
	require.NoError(t, user.AddToCart(id))
	for i := 0; i < 3; i++ {
		require.Error(t, user.AddToCart(id))
	}
	require.Len(t, user.Cart, 1)
}
