package logging

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_ConcurrentUseAndInit(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NotNil(t, GetLogger())
			Debug("concurrent log", "n", n)
			_ = WithRequest("req", "user", "/x")
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, Init("test"))
	}()
	wg.Wait()

	require.NotNil(t, GetLogger())
	assert.False(t, IsProduction())
}
