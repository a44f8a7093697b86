package zoomsdk_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk/zoomsdktest"
)

func TestProvider_InstanceIsMemoized(t *testing.T) {
	var paths []string
	provider := zoomsdk.NewProvider(zoomsdktest.Loader(zoomsdktest.NewEngine(), &paths))

	first, err := provider.Instance(zoomsdk.LoadOptions{Path: "/first/"})
	require.NoError(t, err)

	second, err := provider.Instance(zoomsdk.LoadOptions{
		Path:     "/second/",
		Platform: &zoomsdk.Platform{OS: "darwin", Arch: "arm64"},
	})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"/first/"}, paths, "engine loaded once")
	assert.Equal(t, "/first/", second.ModulePath(), "later options are ignored")
	assert.Equal(t, zoomsdk.HostPlatform(), second.Platform())
}

func TestProvider_PlatformOverride(t *testing.T) {
	var paths []string
	provider := zoomsdk.NewProvider(zoomsdktest.Loader(zoomsdktest.NewEngine(), &paths))

	f, err := provider.Instance(zoomsdk.LoadOptions{Platform: &zoomsdk.Platform{OS: "darwin", Arch: "arm64"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"./../sdk/mac/"}, paths)
	assert.True(t, f.Platform().IsDarwin())

	f.Initialize(zoomsdk.InitOptions{})
	cfg, _ := f.LastConfig()
	assert.False(t, cfg.EnableRawDataIntermediateMode)
}

func TestProvider_ConcurrentInstance(t *testing.T) {
	var (
		mu    sync.Mutex
		loads int
	)
	engine := zoomsdktest.NewEngine()
	provider := zoomsdk.NewProvider(func(string) (zoomsdk.Engine, error) {
		mu.Lock()
		loads++
		mu.Unlock()
		return engine, nil
	})

	results := make([]*zoomsdk.Facade, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := provider.Instance(zoomsdk.LoadOptions{})
			assert.NoError(t, err)
			results[i] = f
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, loads)
	for _, f := range results {
		assert.Same(t, results[0], f)
	}
}

func TestProvider_LoadFailureIsSticky(t *testing.T) {
	calls := 0
	errDlopen := errors.New("dlopen failed")
	provider := zoomsdk.NewProvider(func(string) (zoomsdk.Engine, error) {
		calls++
		return nil, errDlopen
	})

	for i := 0; i < 2; i++ {
		f, err := provider.Instance(zoomsdk.LoadOptions{})
		assert.Nil(t, f)
		assert.ErrorIs(t, err, zoomsdk.ErrEngineLoad)
		assert.ErrorIs(t, err, errDlopen, "loader error stays in the chain")
		assert.Contains(t, err.Error(), "dlopen failed")
	}
	assert.Equal(t, 1, calls)
}

func TestProvider_NilLoaderAndNilEngine(t *testing.T) {
	_, err := zoomsdk.NewProvider(nil).Instance(zoomsdk.LoadOptions{})
	assert.ErrorIs(t, err, zoomsdk.ErrEngineLoad)

	_, err = zoomsdk.NewProvider(func(string) (zoomsdk.Engine, error) { return nil, nil }).
		Instance(zoomsdk.LoadOptions{})
	assert.ErrorIs(t, err, zoomsdk.ErrEngineLoad)
}

func TestProvider_FacadeOptionsApplied(t *testing.T) {
	obs := newRecordingObserver()
	provider := zoomsdk.NewProvider(zoomsdktest.Loader(zoomsdktest.NewEngine(), nil), zoomsdk.WithObserver(obs))

	f, err := provider.Instance(zoomsdk.LoadOptions{})
	require.NoError(t, err)
	f.Initialize(zoomsdk.InitOptions{})

	assert.Len(t, obs.inits, 1)
}
