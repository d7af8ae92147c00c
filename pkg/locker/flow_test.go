package locker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupFlow(t *testing.T) {
	g := newGate(t, nil)
	g.Open()
	f := g.NewSetupFlow()

	assert.ErrorIs(t, f.Submit("abc"), ErrTooShort)
	assert.Equal(t, SetupCreate, f.Step())

	require.NoError(t, f.Submit("abcd"))
	assert.Equal(t, SetupConfirm, f.Step())

	assert.ErrorIs(t, f.Submit("abce"), ErrMismatch)
	assert.Equal(t, SetupCreate, f.Step())
	assert.False(t, g.HasSecret())

	require.NoError(t, f.Submit("abcd"))
	require.NoError(t, f.Submit("abcd"))
	assert.Equal(t, SetupDone, f.Step())
	assert.Equal(t, Unlocked, g.Phase())
	assert.True(t, g.Verify("abcd"))
}

func TestChangeFlow(t *testing.T) {
	g := newGate(t, nil)
	require.NoError(t, g.Setup("abcd"))

	f, err := g.NewChangeFlow()
	require.NoError(t, err)
	assert.Equal(t, ChangingPassword, g.Phase())

	assert.ErrorIs(t, f.Submit("nope"), ErrWrongOldPassword)
	assert.Equal(t, ChangeOld, f.Step())

	require.NoError(t, f.Submit("abcd"))
	assert.ErrorIs(t, f.Submit("wx"), ErrTooShort)
	assert.Equal(t, ChangeNew, f.Step())

	require.NoError(t, f.Submit("wxyz"))
	assert.ErrorIs(t, f.Submit("wxy!"), ErrMismatch)
	assert.Equal(t, ChangeNew, f.Step())
	assert.True(t, g.Verify("abcd"))

	require.NoError(t, f.Submit("wxyz"))
	require.NoError(t, f.Submit("wxyz"))
	assert.Equal(t, ChangeDone, f.Step())
	assert.Equal(t, Unlocked, g.Phase())
	assert.True(t, g.Verify("wxyz"))
	assert.False(t, g.Verify("abcd"))
}

func TestChangeFlowCancel(t *testing.T) {
	g := newGate(t, nil)
	require.NoError(t, g.Setup("abcd"))

	f, err := g.NewChangeFlow()
	require.NoError(t, err)
	require.NoError(t, f.Submit("abcd"))
	require.NoError(t, f.Cancel())

	assert.Equal(t, Unlocked, g.Phase())
	assert.True(t, g.Verify("abcd"))
	assert.ErrorIs(t, f.Submit("wxyz"), ErrPhase)
}

func TestChangeFlowRequiresUnlocked(t *testing.T) {
	g := newGate(t, nil)
	require.NoError(t, g.Setup("abcd"))
	require.NoError(t, g.Relock())

	_, err := g.NewChangeFlow()
	assert.ErrorIs(t, err, ErrPhase)
}
