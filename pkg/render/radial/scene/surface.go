package scene

import "sync"

// Surface is a drawing area a scene can be replayed onto.
type Surface interface {
	// Clear removes everything previously drawn.
	Clear()
	// Append draws e on top of the current content.
	Append(e Element)
}

// Draw clears s and appends every element of sc in paint order.
func Draw(s Surface, sc Scene) {
	s.Clear()
	for _, e := range sc.Elements {
		s.Append(e)
	}
}

// MemorySurface records drawn elements. It is safe for concurrent use.
type MemorySurface struct {
	mu       sync.Mutex
	elements []Element
	clears   int
}

// NewMemorySurface returns an empty surface.
func NewMemorySurface() *MemorySurface { return &MemorySurface{} }

func (m *MemorySurface) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements = nil
	m.clears++
}

func (m *MemorySurface) Append(e Element) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.elements = append(m.elements, e)
}

// Elements returns a copy of the current content.
func (m *MemorySurface) Elements() []Element {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Element(nil), m.elements...)
}

// Clears returns how many times the surface was cleared.
func (m *MemorySurface) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}
