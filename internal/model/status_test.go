package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownStatus(t *testing.T) {
	for _, s := range []string{StatusBooked, StatusSeated, StatusFinished, StatusCancelled} {
		assert.True(t, KnownStatus(s), s)
	}
	assert.False(t, KnownStatus(""))
	assert.False(t, KnownStatus("pending"))
	assert.False(t, KnownStatus("Booked"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusBooked))
	assert.False(t, IsTerminal(StatusSeated))
	assert.True(t, IsTerminal(StatusFinished))
	assert.True(t, IsTerminal(StatusCancelled))
}

func TestCanTransition(t *testing.T) {
	all := []string{StatusBooked, StatusSeated, StatusFinished, StatusCancelled}
	allowed := map[[2]string]bool{
		{StatusBooked, StatusSeated}:    true,
		{StatusBooked, StatusCancelled}: true,
		{StatusSeated, StatusFinished}:  true,
	}
	for _, from := range all {
		for _, to := range all {
			got := CanTransition(from, to)
			assert.Equal(t, allowed[[2]string{from, to}], got, "%s -> %s", from, to)
		}
	}

	// Same-status updates are not transitions.
	assert.False(t, CanTransition(StatusBooked, StatusBooked))
	// Unknown states never transition anywhere.
	assert.False(t, CanTransition("pending", StatusSeated))
	assert.False(t, CanTransition(StatusBooked, "pending"))
}
