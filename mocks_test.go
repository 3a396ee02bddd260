package di

import "sync"

type mockObject struct {
	Closed bool
}

type mockObjectWithDependency struct {
	Object *mockObject
}

// Incrementable is the capability contract used in the locality tests.
type Incrementable interface {
	Increment()
	Value() int
}

type mockCounter struct {
	n int
}

func (c *mockCounter) Increment() {
	c.n++
}

func (c *mockCounter) Value() int {
	return c.n
}

// incrementableOps is the func-struct surface of a counter placeholder.
type incrementableOps struct {
	Increment func()
	Value     func() int
}

// recordingMonitor keeps the notifications it receives.
type recordingMonitor struct {
	mu     sync.Mutex
	events []string
}

func (m *recordingMonitor) ChangedBehavior(name, descriptor string) {
	m.mu.Lock()
	m.events = append(m.events, name+":"+descriptor)
	m.mu.Unlock()
}

func (m *recordingMonitor) Events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	copy(out, m.events)
	return out
}
