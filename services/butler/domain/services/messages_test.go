package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtraItemsText(t *testing.T) {
	assert.Equal(t, "", ExtraItemsText([]string{"Milk"}))
	assert.Equal(t, "and 'Eggs'", ExtraItemsText([]string{"Milk", "Eggs"}))
	assert.Equal(t, "and 3 other items", ExtraItemsText([]string{"Milk", "Eggs", "Ham", "Jam"}))
}

func TestExpiredMessage(t *testing.T) {
	msg := ExpiredMessage("My Fridge", []string{"Milk", "Eggs", "Ham"})
	assert.Equal(t, "Expiration warning for My Fridge", msg.Title)
	assert.Equal(t, "3 items have passed expiration!", msg.Body)
}

func TestItemListMessages(t *testing.T) {
	assert.Equal(t, "'Milk' will expire soon", ExpiringMessage("Fridge", []string{"Milk"}).Body)
	assert.Equal(t, "You still need 'Milk' and 'Eggs'", NeededMessage("Fridge", []string{"Milk", "Eggs"}).Body)
	assert.Equal(t, "Shopping reminder for Fridge", NeededMessage("Fridge", []string{"Milk"}).Title)
}

func TestNearbyMessage(t *testing.T) {
	msg := NearbyMessage([]string{"Corner Market", "MegaMart"}, 4)
	assert.Equal(t, "Corner Market is nearby", msg.Title)
	assert.Equal(t, "You need 4 items. 1 other stores are close too.", msg.Body)

	assert.Equal(t, "A store is nearby", NearbyMessage(nil, 1).Title)
}
