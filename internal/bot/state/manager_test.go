package state

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisManager(t *testing.T) (*RedisManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	m, err := NewRedisManager(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m, mr
}

func managers(t *testing.T) map[string]StateManager {
	redisManager, _ := newRedisManager(t)
	return map[string]StateManager{
		"memory": NewManager(),
		"redis":  redisManager,
	}
}

func TestStateManager_States(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, None, m.GetUserState(1))

			m.SetUserState(1, AwaitingBreaks)
			assert.Equal(t, AwaitingBreaks, m.GetUserState(1))
			assert.Equal(t, None, m.GetUserState(2))

			m.ClearUserState(1)
			assert.Equal(t, None, m.GetUserState(1))
		})
	}
}

func TestStateManager_TempData(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := m.GetTempData(7, "mood")
			assert.False(t, ok)
			assert.Empty(t, m.GetAllTempData(7))

			m.SetTempData(7, "mood", float64(2))
			m.SetTempData(7, "sleep", 6.5)

			v, ok := m.GetTempData(7, "mood")
			require.True(t, ok)
			assert.Equal(t, float64(2), v)
			assert.Equal(t, map[string]interface{}{"mood": float64(2), "sleep": 6.5}, m.GetAllTempData(7))

			m.ClearTempData(7)
			assert.Empty(t, m.GetAllTempData(7))
		})
	}
}

func TestManager_GetAllTempDataIsCopy(t *testing.T) {
	m := NewManager()
	m.SetTempData(1, "breaks", float64(1))

	all := m.GetAllTempData(1)
	all["breaks"] = float64(99)

	v, _ := m.GetTempData(1, "breaks")
	assert.Equal(t, float64(1), v)
}

func TestRedisManager_TTL(t *testing.T) {
	m, mr := newRedisManager(t)

	m.SetUserState(5, AwaitingMood)
	m.SetTempData(5, "screen_time", float64(200))

	assert.Equal(t, SessionTTL, mr.TTL(stateKey(5)))
	assert.Equal(t, SessionTTL, mr.TTL(tempKey(5)))

	mr.FastForward(SessionTTL + 1)
	assert.Equal(t, None, m.GetUserState(5))
	assert.Empty(t, m.GetAllTempData(5))
}

func TestRedisManager_CorruptAnswersAreDiscarded(t *testing.T) {
	m, mr := newRedisManager(t)

	require.NoError(t, mr.Set(tempKey(3), "{not json"))
	_, ok := m.GetTempData(3, "mood")
	assert.False(t, ok)

	m.SetTempData(3, "mood", float64(4))
	v, ok := m.GetTempData(3, "mood")
	require.True(t, ok)
	assert.Equal(t, float64(4), v)
}

func TestNewRedisManager_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisManager(addr, "", 0)
	assert.Error(t, err)
}
