package solo

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// persistentRoot is the pseudo-scene containers are re-parented to when a
// persistent winner asks to survive scene teardown.
const persistentRoot = "<root>"

type testContainer struct {
	id         string
	singletons []Singleton
}

func (c *testContainer) Singletons() []Singleton { return c.singletons }

// sceneHost simulates an engine-style host: containers live inside named
// scenes, and unloading a scene destroys its containers unless they were
// re-parented to the persistent root.
type sceneHost struct {
	mu          sync.Mutex
	registry    *Registry
	activeScene string
	scenes      map[*testContainer]string
	destroyed   []*testContainer
	factories   map[reflect.Type]func() Singleton
	createCalls map[reflect.Type]int
	persisted   []*testContainer
}

func newSceneHost() *sceneHost {
	return &sceneHost{
		activeScene: "boot",
		scenes:      make(map[*testContainer]string),
		factories:   make(map[reflect.Type]func() Singleton),
		createCalls: make(map[reflect.Type]int),
	}
}

func (h *sceneHost) bind(r *Registry) {
	h.registry = r
}

// define registers the factory Create uses for singletons of type T.
func define[T Singleton](h *sceneHost, fn func() T) {
	h.factories[TypeOf[T]()] = func() Singleton { return fn() }
}

// place drops a container into a scene without announcing it, like an object
// that exists in a scene before its live event has been processed.
func (h *sceneHost) place(scene string, singletons ...Singleton) *testContainer {
	c := &testContainer{id: uuid.NewString(), singletons: singletons}
	h.mu.Lock()
	h.scenes[c] = scene
	h.mu.Unlock()
	return c
}

// spawn places a container and fires ContainerLive, the way restoring a
// scene recreates its objects outside any Acquire call.
func (h *sceneHost) spawn(scene string, singletons ...Singleton) *testContainer {
	c := h.place(scene, singletons...)
	h.registry.ContainerLive(c)
	return c
}

func (h *sceneHost) FindLive(t reflect.Type) (Container, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.scenes {
		if _, ok := singletonOn(c, t); ok {
			return c, true
		}
	}
	return nil, false
}

func (h *sceneHost) Create(t reflect.Type) Container {
	h.mu.Lock()
	factory, ok := h.factories[t]
	if !ok {
		h.mu.Unlock()
		panic(fmt.Sprintf("sceneHost: no factory defined for %v", t))
	}
	h.createCalls[t]++
	c := &testContainer{id: uuid.NewString(), singletons: []Singleton{factory()}}
	h.scenes[c] = h.activeScene
	h.mu.Unlock()

	h.registry.ContainerLive(c)
	return c
}

func (h *sceneHost) Persist(c Container) {
	tc := c.(*testContainer)
	h.mu.Lock()
	h.scenes[tc] = persistentRoot
	h.persisted = append(h.persisted, tc)
	h.mu.Unlock()
}

func (h *sceneHost) Destroy(c Container) {
	tc := c.(*testContainer)
	h.mu.Lock()
	delete(h.scenes, tc)
	h.destroyed = append(h.destroyed, tc)
	h.mu.Unlock()

	h.registry.ContainerDestroyed(tc)
}

// unloadScene destroys every container in a scene except those re-parented
// to the persistent root. This is normal teardown, not process shutdown.
func (h *sceneHost) unloadScene(scene string) {
	h.mu.Lock()
	var victims []*testContainer
	for c, s := range h.scenes {
		if s == scene {
			victims = append(victims, c)
		}
	}
	h.mu.Unlock()

	for _, c := range victims {
		h.Destroy(c)
	}
}

// quit simulates process-wide teardown: every remaining container gets the
// shutdown notification before it is destroyed.
func (h *sceneHost) quit() {
	h.mu.Lock()
	var victims []*testContainer
	for c := range h.scenes {
		victims = append(victims, c)
	}
	h.mu.Unlock()

	for _, c := range victims {
		h.registry.NotifyShutdown(c)
		h.Destroy(c)
	}
}

func (h *sceneHost) createCount(t reflect.Type) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.createCalls[t]
}

func (h *sceneHost) destroyedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.destroyed)
}

func (h *sceneHost) wasDestroyed(c Container) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range h.destroyed {
		if d == c {
			return true
		}
	}
	return false
}

func (h *sceneHost) sceneOf(c Container) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.scenes[c.(*testContainer)]
	return s, ok
}

// stateOf reads a handle's lifecycle state under its registration lock.
func stateOf(r *Registry, t reflect.Type) lifecycleState {
	h, ok := r.handles.lookup(t)
	if !ok {
		return stateUninitialized
	}
	h.regMu.Lock()
	defer h.regMu.Unlock()
	return h.state
}

// newTestRegistry wires a fresh host and registry pair.
func newTestRegistry(opts ...RegistryOption) (*Registry, *sceneHost) {
	host := newSceneHost()
	r := NewRegistry(host, opts...)
	host.bind(r)
	return r, host
}

// Test singleton types. Init counters are shared pointers so totals can be
// observed across multiple instances of the same type.

type audioManager struct {
	inits *atomic.Int32
	id    string
}

func (a *audioManager) Init() {
	if a.inits != nil {
		a.inits.Add(1)
	}
	a.id = uuid.NewString()
}

func (a *audioManager) Lifetime() Lifetime { return LifetimePersistent }

type scoreBoard struct {
	inits *atomic.Int32
	score int
}

func (s *scoreBoard) Init() {
	if s.inits != nil {
		s.inits.Add(1)
	}
	s.score = 0
}

func (s *scoreBoard) Lifetime() Lifetime { return LifetimeTransient }

// slowService blocks inside Init until released, to observe what other
// callers can and cannot do while one type is mid-initialization.
type slowService struct {
	inits   *atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *slowService) Init() {
	if s.inits != nil {
		s.inits.Add(1)
	}
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
}

func (s *slowService) Lifetime() Lifetime { return LifetimeTransient }

// selfAware peeks at its own type from inside Init.
type selfAware struct {
	registry *Registry
	sawSelf  bool
}

func (s *selfAware) Init() {
	got, ok := Peek[*selfAware](s.registry)
	s.sawSelf = ok && got == s
}

func (s *selfAware) Lifetime() Lifetime { return LifetimeTransient }
