package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMenu(t *testing.T) {
	assert.Equal(t, ErrNoOptions, validateMenu(&Menu{}))

	assert.Equal(t, ErrDuplicateOption, validateMenu(&Menu{
		Options: []Option{
			{RoleID: "red"},
			{RoleID: "blue"},
			{RoleID: "red"},
		},
	}))

	assert.NoError(t, validateMenu(&Menu{
		Options: []Option{
			{RoleID: "red"},
			{RoleID: "blue"},
		},
	}))
}

func TestValidateBlock(t *testing.T) {
	assert.Equal(t, ErrSelfBlock, validateBlock("red", "red"))
	assert.NoError(t, validateBlock("red", "blue"))
}

func TestMenuOption(t *testing.T) {
	menu := &Menu{
		Options: []Option{
			{RoleID: "red", Label: "Red"},
			{RoleID: "blue", Label: "Blue"},
		},
	}

	o := menu.Option("blue")
	require.NotNil(t, o)
	assert.Equal(t, "Blue", o.Label)

	assert.Nil(t, menu.Option("green"))
}
