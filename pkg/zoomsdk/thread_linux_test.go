package zoomsdk_test

import (
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

func TestOSThread_ExecuteRunsOnOneThread(t *testing.T) {
	thread := zoomsdk.NewOSThread()
	thread.Start()
	defer thread.Stop()

	tids := make(map[int]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := thread.Execute(func() {
				mu.Lock()
				tids[syscall.Gettid()] = true
				mu.Unlock()
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, tids, 1)
}
