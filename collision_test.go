package iniconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollisionFlagsRoundTripExtraction(t *testing.T) {
	f, err := NewCollisionFlags(MV1SAllow, MV2SError, MSOverwrite)
	require.NoError(t, err)

	assert.Equal(t, MV1SAllow, f.MV1S())
	assert.Equal(t, MV2SError, f.MV2S())
	assert.Equal(t, MSOverwrite, f.MS())
}

func TestCollisionFlagsDefault(t *testing.T) {
	assert.Equal(t, MV1SOverwrite, DefaultCollisionFlags.MV1S())
	assert.Equal(t, MV2SOverwrite, DefaultCollisionFlags.MV2S())
	assert.Equal(t, MSMerge, DefaultCollisionFlags.MS())
}

func TestCollisionFlagsValidateRejectsUnknownBits(t *testing.T) {
	bad := CollisionFlags(0xFFFFFFFF)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidArgument)
}

func TestCollisionFlagsFieldsAreDisjoint(t *testing.T) {
	assert.Zero(t, uint32(mv1sMask)&uint32(mv2sMask))
	assert.Zero(t, uint32(mv2sMask)&uint32(msMask))
	assert.Zero(t, uint32(mv1sMask)&uint32(msMask))
}

func TestMSDetectCombinesWithAnyMode(t *testing.T) {
	for _, mode := range []MS{MSMerge, MSError, MSOverwrite, MSPreserve} {
		combined := mode | MSDetect
		f, err := NewCollisionFlags(MV1SOverwrite, MV2SOverwrite, combined)
		require.NoError(t, err)
		assert.Equal(t, mode, f.MS().Mode())
		assert.True(t, f.MS().HasDetect())
	}
}

func TestMSModeAloneHasNoDetect(t *testing.T) {
	f, err := NewCollisionFlags(MV1SOverwrite, MV2SOverwrite, MSPreserve)
	require.NoError(t, err)
	assert.False(t, f.MS().HasDetect())
	assert.Equal(t, MSPreserve, f.MS().Mode())
}
