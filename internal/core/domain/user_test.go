package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to UserStatus
		want     bool
	}{
		{StatusUnset, StatusRequested, true},
		{StatusUnset, StatusVerified, false},
		{StatusRequested, StatusRequested, false},
		{StatusRequested, StatusVerified, false},
		{StatusVerified, StatusRequested, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.from.CanTransitionTo(c.to), "%q -> %q", c.from, c.to)
	}
}
