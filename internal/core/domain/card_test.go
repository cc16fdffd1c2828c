package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDefaultImage = "/assets/default-room.png"

func decodeProperty(t *testing.T, raw string) *Property {
	t.Helper()
	var p Property
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestNewPropertyCard(t *testing.T) {
	card := NewPropertyCard(decodeProperty(t, sampleRecord), 0, testDefaultImage)

	assert.Equal(t, "42-0", card.Key)
	assert.Equal(t, "https://img.example.com/1.jpg", card.ImageURL)
	assert.False(t, card.UsesDefaultImage)
	assert.Equal(t, "Twin sharing", card.RoomName)
	assert.Equal(t, "Green Residency, Koramangala, Bengaluru", card.Location)
	assert.Equal(t, "₹12,500/mo", card.Rent)
	assert.Equal(t, "3", card.Floor)
	assert.Equal(t, "Boys", card.Availability)
	assert.Equal(t, []string{"Metro", "Park"}, card.NearbyTags)
	assert.Equal(t, 1, card.NearbyOverflow)
	assert.Equal(t, []string{ActionCallback, ActionVisit}, card.Actions)
}

func TestNewPropertyCardDefaultImage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no society images", raw: `{"id":"1"}`},
		{name: "empty list", raw: `{"id":"1","society_images":[]}`},
		{name: "empty url", raw: `{"id":"1","society_images":[{"image_url":""}]}`},
		{name: "blank url", raw: `{"id":"1","society_images":[{"image_url":"   "}]}`},
		{name: "url of wrong type", raw: `{"id":"1","society_images":[{"image_url":12}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewPropertyCard(decodeProperty(t, tt.raw), 3, testDefaultImage)

			assert.True(t, card.UsesDefaultImage)
			assert.Equal(t, testDefaultImage, card.ImageURL)
		})
	}
}

func TestNewPropertyCardMissingFields(t *testing.T) {
	card := NewPropertyCard(decodeProperty(t, `{}`), 2, testDefaultImage)

	assert.Equal(t, "-2", card.Key)
	assert.Equal(t, ", , ", card.Location)
	assert.Equal(t, "₹/mo", card.Rent)
	assert.Empty(t, card.RoomName)
	assert.Empty(t, card.Floor)
	assert.NotNil(t, card.NearbyTags)
	assert.Zero(t, card.NearbyOverflow)
}

func TestFormatRent(t *testing.T) {
	value := func(f float64) *float64 { return &f }

	assert.Equal(t, "₹/mo", FormatRent(nil))
	assert.Equal(t, "₹0/mo", FormatRent(value(0)))
	assert.Equal(t, "₹950/mo", FormatRent(value(950)))
	assert.Equal(t, "₹1,234,567/mo", FormatRent(value(1234567)))
	assert.Equal(t, "₹12,345.5/mo", FormatRent(value(12345.5)))
}

func TestNewPropertyCardRentText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "text rent shown as is", raw: `{"rooms":[{"total_rent":"On request"}]}`, want: "₹On request/mo"},
		{name: "numeric string formatted", raw: `{"rooms":[{"total_rent":"9999"}]}`, want: "₹9,999/mo"},
		{name: "rent of wrong type", raw: `{"rooms":[{"total_rent":true}]}`, want: "₹/mo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewPropertyCard(decodeProperty(t, tt.raw), 0, testDefaultImage)
			assert.Equal(t, tt.want, card.Rent)
		})
	}
}
