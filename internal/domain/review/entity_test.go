package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingBreakdown(t *testing.T) {
	var b RatingBreakdown

	b.Add(5)
	b.Add(5)
	b.Add(4)
	b.Add(1)
	b.Add(0) // ignored
	b.Add(6) // ignored

	assert.Equal(t, 2, b.Count(5))
	assert.Equal(t, 1, b.Count(4))
	assert.Equal(t, 0, b.Count(3))
	assert.Equal(t, 1, b.Count(1))
	assert.Equal(t, 4, b.Total())
	assert.InDelta(t, (5+5+4+1)/4.0, b.Average(), 1e-9)
}

func TestRatingBreakdown_EmptyAverageIsZero(t *testing.T) {
	var b RatingBreakdown
	assert.Zero(t, b.Average())
	assert.Zero(t, b.Total())
}

func TestNewSummary(t *testing.T) {
	var b RatingBreakdown
	b.Add(3)
	b.Add(5)

	s := NewSummary(" spu-1 ", b)

	assert.Equal(t, "spu-1", s.ProductID)
	assert.Equal(t, 2, s.Total)
	assert.InDelta(t, 4.0, s.Average, 1e-9)
}

func TestReviewValidate(t *testing.T) {
	ok := Review{ProductID: "spu-1", AvatarID: "av-1", Rating: 4}
	require.NoError(t, ok.Validate())

	for _, bad := range []Review{
		{AvatarID: "av-1", Rating: 4},
		{ProductID: "spu-1", Rating: 4},
		{ProductID: "spu-1", AvatarID: "av-1", Rating: 0},
		{ProductID: "spu-1", AvatarID: "av-1", Rating: 6},
	} {
		assert.ErrorIs(t, bad.Validate(), ErrInvalid)
	}
}
