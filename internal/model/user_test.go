package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasBlankAttributes(t *testing.T) {
	var nilUser *User
	assert.True(t, nilUser.HasBlankAttributes())

	assert.True(t, (&User{Name: "", Password: "x"}).HasBlankAttributes())
	assert.True(t, (&User{Name: " \t\n", Password: "x"}).HasBlankAttributes())
	assert.True(t, (&User{Name: "Manel", Password: "  "}).HasBlankAttributes())
	assert.False(t, (&User{Name: "Manel", Password: "pass123"}).HasBlankAttributes())
}

func TestUpdateUserPayload_IDMatches(t *testing.T) {
	same, other := int64(3), int64(4)

	assert.True(t, (&UpdateUserPayload{ID: 3}).IDMatches())
	assert.True(t, (&UpdateUserPayload{ID: 3, BodyID: &same}).IDMatches())
	assert.False(t, (&UpdateUserPayload{ID: 3, BodyID: &other}).IDMatches())
}

func TestUpdateUserPayload_ToUserUsesPathID(t *testing.T) {
	other := int64(9)
	u := (&UpdateUserPayload{ID: 3, BodyID: &other, Name: "n", Password: "p"}).ToUser()

	assert.Equal(t, &User{ID: 3, Name: "n", Password: "p"}, u)
}

func TestSearchUsersPayload_Validate(t *testing.T) {
	assert.NoError(t, (&SearchUsersPayload{}).Validate())
	assert.NoError(t, (&SearchUsersPayload{Name: "Manel"}).Validate())
}
