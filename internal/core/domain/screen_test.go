package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewScreenState(t *testing.T) {
	s := NewScreenState()

	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 1, s.TotalPages)
	assert.False(t, s.Loading)
	assert.NotNil(t, s.Properties)
	assert.Empty(t, s.Properties)
	assert.Equal(t, ScreenIdle, s.Status())
}

func TestBuildScreenView(t *testing.T) {
	state := NewScreenState()
	state.Properties = []Property{{}, {}}
	state.Page = 2
	state.TotalPages = 3

	view := BuildScreenView(state, 5, testDefaultImage)

	assert.Equal(t, ScreenIdle, view.Status)
	assert.Len(t, view.Cards, 2)
	assert.Equal(t, []int{1, 2, 3}, view.Pagination.Pages)
	assert.True(t, view.Pagination.ShowPrevious)
	assert.True(t, view.Pagination.ShowNext)
}

func TestBuildScreenViewWhileLoading(t *testing.T) {
	state := NewScreenState()
	state.Properties = []Property{{}}
	state.Loading = true

	view := BuildScreenView(state, 5, testDefaultImage)

	assert.Equal(t, ScreenLoading, view.Status)
	assert.Empty(t, view.Cards)
	assert.Empty(t, view.Pagination.Pages)
}

func TestScreenStateCloneDoesNotShareList(t *testing.T) {
	state := NewScreenState()
	state.Properties = []Property{{}}

	clone := state.Clone()
	clone.Properties[0].Raw = []byte(`{}`)

	assert.Nil(t, state.Properties[0].Raw)
}
