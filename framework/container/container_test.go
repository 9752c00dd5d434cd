package container_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/framework/container"
)

// ── Build ─────────────────────────────────────────────────────────────────────

func TestBuild(t *testing.T) {
	c := newContainer()

	v, err := c.Build(context.Background(), "Service")
	require.NoError(t, err)
	assert.IsType(t, &Service{}, v)
}

func TestBuildArguments(t *testing.T) {
	c := newContainer()

	v, err := c.BuildWith(context.Background(), "ArgumentService", container.Args("a", 4, "b", 5, "c", 6))
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, v.(*ArgumentService).Arguments())
}

func TestBuildArgumentsDefaults(t *testing.T) {
	c := newContainer()

	v, err := c.BuildWith(context.Background(), "ArgumentService", container.Args("b", 5))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 3}, v.(*ArgumentService).Arguments())
}

func TestBuildContainerDependency(t *testing.T) {
	c := newContainer()

	v, err := c.Build(context.Background(), "ContainerService")
	require.NoError(t, err)
	assert.Same(t, c, v.(*ContainerService).c)
}

func TestBuildContext(t *testing.T) {
	c := newContainer()

	v, err := c.Build(context.Background(), "ItemService")
	require.NoError(t, err)
	assert.Equal(t, "test", v.(*ItemService).item.value)
}

func TestBuildContextFromBinding(t *testing.T) {
	c := newContainer()

	container.BindMarker(c, func(ctx context.Context, m ItemContext, got *container.Container) (any, error) {
		assert.Same(t, c, got)
		assert.Equal(t, "test", m.Value)
		return NewItem("other"), nil
	})

	v, err := c.Build(context.Background(), "ItemService")
	require.NoError(t, err)
	assert.Equal(t, "other", v.(*ItemService).item.value)
}

func TestBuildContextHandlerError(t *testing.T) {
	c := newContainer()
	boom := errors.New("boom")

	c.BindAttribute(container.MarkerID(ItemContext{}), func(context.Context, container.Marker, *container.Container) (any, error) {
		return nil, boom
	})

	_, err := c.Build(context.Background(), "ItemService")
	assert.ErrorIs(t, err, boom)
}

func TestBuildDependency(t *testing.T) {
	c := newContainer()
	ctx := context.Background()

	v, err := c.Build(ctx, outerKey)
	require.NoError(t, err)
	inner := v.(*OuterService).inner
	require.NotNil(t, inner)

	again, err := c.Use(ctx, innerKey)
	require.NoError(t, err)
	assert.NotSame(t, inner, again)
}

func TestBuildSharedDependency(t *testing.T) {
	c := newContainer()
	ctx := context.Background()
	c.Singleton(innerKey, nil)

	v, err := c.Build(ctx, outerKey)
	require.NoError(t, err)

	shared, err := c.Use(ctx, innerKey)
	require.NoError(t, err)
	assert.Same(t, v.(*OuterService).inner, shared)
}

func TestBuildWithoutConstructorIgnoresArguments(t *testing.T) {
	c := newContainer()

	v, err := c.BuildWith(context.Background(), "Service", container.Args("a", 1))
	require.NoError(t, err)
	assert.IsType(t, &Service{}, v)
}

func TestBuildParentAlias(t *testing.T) {
	c := newContainer()

	v, err := c.Build(context.Background(), container.KeyOf[*Child]())
	require.NoError(t, err)
	assert.NotNil(t, v.(*Child).base)
}

func TestBuildErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid class", func(t *testing.T) {
		_, err := newContainer().Build(ctx, "Missing")
		assert.True(t, container.IsInvalidClass(err))
		assert.ErrorIs(t, err, container.ErrInvalidClass)
	})

	t.Run("not instantiable", func(t *testing.T) {
		_, err := newContainer().Build(ctx, container.KeyOf[Greeter]())
		assert.True(t, container.IsNotInstantiable(err))
	})

	t.Run("self dependency", func(t *testing.T) {
		_, err := newContainer().Build(ctx, container.KeyOf[*Node]())
		assert.True(t, container.IsSelfDependency(err))
	})

	t.Run("circular dependency", func(t *testing.T) {
		_, err := newContainer().Build(ctx, container.KeyOf[*CycleA]())
		require.True(t, container.IsCircularDependency(err))

		var cerr *container.Error
		require.ErrorAs(t, err, &cerr)
		a, b := container.KeyOf[*CycleA](), container.KeyOf[*CycleB]()
		assert.Equal(t, []string{a, b, a}, cerr.Chain)
	})

	t.Run("depth exceeded", func(t *testing.T) {
		_, err := newContainer(container.WithMaxDepth(1)).Build(ctx, outerKey)
		assert.ErrorIs(t, err, container.ErrDepthExceeded)
	})

	t.Run("unresolved user type", func(t *testing.T) {
		c := newContainer()
		_, err := c.Call(ctx, container.Func(func(u *Unregistered) int { return 1 }, container.Arg("u")))
		assert.True(t, container.IsUnresolved(err))
		assert.ErrorIs(t, err, container.ErrInvalidClass)
	})

	t.Run("unresolved builtin", func(t *testing.T) {
		c := newContainer()
		_, err := c.Call(ctx, container.Func(func(x int) int { return x }, container.Arg("x")))
		assert.True(t, container.IsUnresolved(err))

		var cerr *container.Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "x", cerr.Param)
	})
}

func TestBuildNullableSelfDependency(t *testing.T) {
	types := container.NewTypes()
	container.Define[*Node](types).Constructor(NewNode, container.Arg("next").Nullable())
	c := container.New(container.WithTypes(types))

	v, err := c.Build(context.Background(), container.KeyOf[*Node]())
	require.NoError(t, err)
	assert.Nil(t, v.(*Node).next)
}

func TestBuildNullableUnresolvable(t *testing.T) {
	c := newContainer()

	v, err := c.Call(context.Background(), container.Func(
		func(u *Unregistered) bool { return u == nil },
		container.Arg("u").Nullable(),
	))
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

// ── Use ───────────────────────────────────────────────────────────────────────

func TestUse(t *testing.T) {
	c := newContainer()
	ctx := context.Background()

	first, err := c.Use(ctx, "Service")
	require.NoError(t, err)
	second, err := c.Use(ctx, "Service")
	require.NoError(t, err)

	assert.IsType(t, &Service{}, first)
	assert.NotSame(t, first, second)
}

func TestUseFactory(t *testing.T) {
	c := newContainer()
	svc := NewArgumentService(7, 8, 9)

	assert.Same(t, c, c.Bind("ArgumentService", container.Func(func() *ArgumentService { return svc })))

	v, err := c.Use(context.Background(), "ArgumentService")
	require.NoError(t, err)
	assert.Same(t, svc, v)
}

func TestUseInstance(t *testing.T) {
	c := newContainer()
	svc := NewArgumentService(7, 8, 9)

	assert.Same(t, svc, c.Instance("ArgumentService", svc))

	v, err := c.Use(context.Background(), "ArgumentService")
	require.NoError(t, err)
	assert.Same(t, svc, v)
}

func TestUseScoped(t *testing.T) {
	c := newContainer()
	ctx := context.Background()

	assert.Same(t, c, c.Scoped("Service", nil))

	first, err := c.Use(ctx, "Service")
	require.NoError(t, err)
	second, err := c.Use(ctx, "Service")
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Same(t, c, c.ClearScoped())

	third, err := c.Use(ctx, "Service")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestUseShared(t *testing.T) {
	c := newContainer()
	ctx := context.Background()

	assert.Same(t, c, c.Singleton("Service", nil))

	first, err := c.Use(ctx, "Service")
	require.NoError(t, err)
	second, err := c.Use(ctx, "Service")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestUseSelf(t *testing.T) {
	c := newContainer()

	v, err := c.Use(context.Background(), "container")
	require.NoError(t, err)
	assert.Same(t, c, v)

	typed, err := container.ResolveType[*container.Container](context.Background(), c)
	require.NoError(t, err)
	assert.Same(t, c, typed)
}

func TestUseWithArgumentsBypassesCache(t *testing.T) {
	c := newContainer()
	ctx := context.Background()
	c.Singleton("ArgumentService", nil)

	v, err := c.UseWith(ctx, "ArgumentService", container.Args("a", 9))
	require.NoError(t, err)
	assert.Equal(t, []int{9, 2, 3}, v.(*ArgumentService).Arguments())
	assert.False(t, c.Resolved("ArgumentService"))

	cached, err := c.Use(ctx, "ArgumentService")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, cached.(*ArgumentService).Arguments())

	again, err := c.UseWith(ctx, "ArgumentService", container.Args("a", 9))
	require.NoError(t, err)
	assert.NotSame(t, cached, again)
}

func TestUseFactoryError(t *testing.T) {
	c := newContainer()
	boom := errors.New("boom")
	c.Singleton("broken", container.Func(func() (*Service, error) { return nil, boom }))

	_, err := c.Use(context.Background(), "broken")
	assert.True(t, container.IsFactoryFailed(err))
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Resolved("broken"))
}

func TestUseConcreteBinding(t *testing.T) {
	c := newContainer()
	c.Singleton("outer", container.Concrete(outerKey))

	v, err := c.Use(context.Background(), "outer")
	require.NoError(t, err)
	assert.IsType(t, &OuterService{}, v)
	assert.True(t, c.Resolved("outer"))
}

func TestUseConcurrentSingleton(t *testing.T) {
	c := newContainer()
	c.Singleton("Service", nil)

	const n = 50
	results := make([]any, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Use(context.Background(), "Service")
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	cached, err := c.Use(context.Background(), "Service")
	require.NoError(t, err)
	for _, v := range results {
		assert.Same(t, cached, v)
	}
}

func TestFactoryReentrantUse(t *testing.T) {
	c := newContainer()
	c.Singleton(innerKey, nil)
	c.Singleton("outer", container.Func(func(ctx context.Context) (*OuterService, error) {
		inner, err := container.ResolveType[*InnerService](ctx, c)
		if err != nil {
			return nil, err
		}
		return NewOuterService(inner), nil
	}, container.Arg("ctx")))

	v, err := c.Use(context.Background(), "outer")
	require.NoError(t, err)
	assert.NotNil(t, v.(*OuterService).inner)
}

func TestFactoryReentrantCycle(t *testing.T) {
	c := newContainer()
	c.Bind("loop", container.Func(func(ctx context.Context) (any, error) {
		return c.Use(ctx, "loop")
	}, container.Arg("ctx")))

	_, err := c.Use(context.Background(), "loop")
	assert.True(t, container.IsCircularDependency(err))
}

// ── Contextual bindings ───────────────────────────────────────────────────────

func TestContextualBinding(t *testing.T) {
	c := newContainer()
	special := &InnerService{name: "special"}
	c.When(outerKey).Needs(innerKey).GiveValue(special)

	v, err := c.Build(context.Background(), outerKey)
	require.NoError(t, err)
	assert.Same(t, special, v.(*OuterService).inner)

	plain, err := c.Use(context.Background(), innerKey)
	require.NoError(t, err)
	assert.NotSame(t, special, plain)
}

// ── Eviction ──────────────────────────────────────────────────────────────────

func resolveOuter(t *testing.T, c *container.Container) *OuterService {
	t.Helper()
	v, err := c.Use(context.Background(), outerKey)
	require.NoError(t, err)
	return v.(*OuterService)
}

func TestUnsetCascade(t *testing.T) {
	c := newContainer()
	c.Singleton(innerKey, nil)
	c.Singleton(outerKey, nil)

	first := resolveOuter(t, c)
	require.True(t, c.Resolved(innerKey))
	require.True(t, c.Resolved(outerKey))

	c.Unset(innerKey, true)
	assert.False(t, c.Resolved(innerKey))
	assert.False(t, c.Resolved(outerKey))
	assert.NotSame(t, first, resolveOuter(t, c))
}

func TestUnsetWithoutCascade(t *testing.T) {
	c := newContainer()
	c.Singleton(innerKey, nil)
	c.Singleton(outerKey, nil)

	first := resolveOuter(t, c)
	c.Unset(innerKey, false)

	assert.False(t, c.Resolved(innerKey))
	assert.True(t, c.Resolved(outerKey))
	assert.Same(t, first, resolveOuter(t, c))
}

func TestClearScopedCascades(t *testing.T) {
	c := newContainer()
	c.Scoped(innerKey, nil)
	c.Singleton(outerKey, nil)

	first := resolveOuter(t, c)
	c.ClearScoped()

	assert.False(t, c.Resolved(outerKey))
	second := resolveOuter(t, c)
	assert.NotSame(t, first.inner, second.inner)
}

func TestUnscoped(t *testing.T) {
	c := newContainer()
	c.Scoped("Service", nil)
	assert.True(t, c.IsScoped("Service"))

	c.Unscoped("Service")
	assert.False(t, c.IsScoped("Service"))

	first, err := c.Use(context.Background(), "Service")
	require.NoError(t, err)
	c.ClearScoped()
	assert.True(t, c.Resolved("Service"))

	second, err := c.Use(context.Background(), "Service")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRebindCascades(t *testing.T) {
	c := newContainer()
	c.Instance(innerKey, &InnerService{name: "one"})
	c.Singleton(outerKey, nil)

	first := resolveOuter(t, c)
	assert.Equal(t, "one", first.inner.name)

	c.Instance(innerKey, &InnerService{name: "two"})
	assert.False(t, c.Resolved(outerKey))
	assert.Equal(t, "two", resolveOuter(t, c).inner.name)
}

func TestRebindWithoutCascade(t *testing.T) {
	c := newContainer(container.WithCascadeOnRebind(false))
	c.Instance(innerKey, &InnerService{name: "one"})
	c.Singleton(outerKey, nil)

	first := resolveOuter(t, c)
	c.Instance(innerKey, &InnerService{name: "two"})

	assert.True(t, c.Resolved(outerKey))
	assert.Same(t, first, resolveOuter(t, c))
}

func TestDependencyEvictedDuringBuild(t *testing.T) {
	c := newContainer()
	c.Singleton(innerKey, nil)
	c.Singleton("outer", container.Func(func(inner *InnerService) *OuterService {
		c.Unset(innerKey, true)
		return NewOuterService(inner)
	}, container.Arg("inner")))

	v, err := c.Use(context.Background(), "outer")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.False(t, c.Resolved("outer"))
}

func TestCallableFactoryRecordsDependencies(t *testing.T) {
	c := newContainer()
	c.Singleton(innerKey, nil)
	c.Singleton("outer", container.Func(NewOuterService, container.Arg("inner")))

	_, err := c.Use(context.Background(), "outer")
	require.NoError(t, err)

	info, ok := c.Describe("outer")
	require.True(t, ok)
	assert.Equal(t, []string{innerKey}, info.Dependencies)

	c.Unset(innerKey, true)
	assert.False(t, c.Resolved("outer"))
}

// ── Registration helpers ──────────────────────────────────────────────────────

func TestBoundResolvedShared(t *testing.T) {
	c := newContainer()
	c.Bind("transient", nil)
	c.Singleton("shared", nil)
	c.Scoped("scoped", nil)

	assert.True(t, c.Bound("transient"))
	assert.False(t, c.Bound("missing"))
	assert.False(t, c.IsShared("transient"))
	assert.True(t, c.IsShared("shared"))
	assert.True(t, c.IsShared("scoped"))
	assert.True(t, c.IsScoped("scoped"))
	assert.False(t, c.Resolved("shared"))

	assert.Subset(t, c.Bindings(), []string{"transient", "shared", "scoped", "container"})
}

func TestTagged(t *testing.T) {
	c := newContainer()
	c.Instance("cpu", "cpu-report")
	c.Instance("mem", "mem-report")
	c.Tag([]string{"cpu", "mem"}, "reports")

	reports, err := c.Tagged(context.Background(), "reports")
	require.NoError(t, err)
	assert.Equal(t, []any{"cpu-report", "mem-report"}, reports)

	empty, err := c.Tagged(context.Background(), "none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAfterResolving(t *testing.T) {
	c := newContainer()
	var seen []string
	c.AfterResolving(func(alias string, _ any) { seen = append(seen, alias) })
	c.Singleton("Service", nil)

	_, _ = c.Use(context.Background(), "Service")
	_, _ = c.Use(context.Background(), "Service")

	assert.Equal(t, []string{"Service"}, seen)
}

func TestDefer(t *testing.T) {
	c := newContainer()
	loads := 0
	c.Defer("lazy", func(ctx context.Context, c *container.Container) error {
		loads++
		c.Singleton("lazy", container.Func(func() string { return "loaded" }))
		return nil
	})

	assert.True(t, c.Bound("lazy"))
	assert.Equal(t, 0, loads)

	v, err := c.Use(context.Background(), "lazy")
	require.NoError(t, err)
	assert.Equal(t, "loaded", v)

	_, _ = c.Use(context.Background(), "lazy")
	assert.Equal(t, 1, loads)
}

func TestFlush(t *testing.T) {
	c := newContainer()
	c.Singleton("Service", nil)
	_, _ = c.Use(context.Background(), "Service")

	c.Flush()
	assert.False(t, c.Bound("Service"))
	assert.True(t, c.Bound("container"))
}

func TestResolveGenerics(t *testing.T) {
	c := newContainer()
	ctx := context.Background()
	c.Instance("name", "ioc")

	s, err := container.Resolve[string](ctx, c, "name")
	require.NoError(t, err)
	assert.Equal(t, "ioc", s)

	_, err = container.Resolve[int](ctx, c, "name")
	assert.ErrorIs(t, err, container.ErrTypeMismatch)

	assert.Equal(t, "ioc", container.MustResolve[string](ctx, c, "name"))
	assert.Panics(t, func() { container.MustResolve[int](ctx, c, "name") })
}

func TestGlobal(t *testing.T) {
	c := container.New()
	container.SetGlobal(c)
	assert.Same(t, c, container.Global())

	container.SetGlobal(nil)
	assert.NotSame(t, c, container.Global())
}

func TestGlobalConcurrentReplace(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				assert.NotNil(t, container.Global())
			}()
			go func() {
				defer wg.Done()
				container.SetGlobal(nil)
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Global and SetGlobal did not return")
	}
}

// ── Observer ──────────────────────────────────────────────────────────────────

type recordingObserver struct {
	mu       sync.Mutex
	resolved []string
	failed   []string
	evicted  []string
}

func (o *recordingObserver) Resolved(alias string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.failed = append(o.failed, alias)
		return
	}
	o.resolved = append(o.resolved, alias)
}

func (o *recordingObserver) Evicted(alias string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.evicted = append(o.evicted, alias)
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	c := newContainer(container.WithObserver(obs))
	c.Singleton(innerKey, nil)
	c.Singleton(outerKey, nil)

	resolveOuter(t, c)
	_, _ = c.Use(context.Background(), "Missing")
	c.Unset(innerKey, true)

	assert.Equal(t, []string{innerKey, outerKey}, obs.resolved)
	assert.Equal(t, []string{"Missing"}, obs.failed)
	assert.ElementsMatch(t, []string{innerKey, outerKey}, obs.evicted)
}
