package pdfs

import "fmt"

// TemplateStore keeps imported page templates addressable by key.
// T: Concrete Template Type -> depends on each implementation (gofpdi uses int ids)
type TemplateStore[T any] struct {
	templates map[string]T
}

func NewTemplateStore[T any]() *TemplateStore[T] {
	return &TemplateStore[T]{templates: make(map[string]T)}
}

func (s *TemplateStore[T]) Store(key string, template T) {
	s.templates[key] = template
}

func (s *TemplateStore[T]) Get(key string) (T, bool) {
	t, ok := s.templates[key]
	return t, ok
}

func (s *TemplateStore[T]) Remove(key string) {
	delete(s.templates, key)
}

func (s *TemplateStore[T]) Len() int {
	return len(s.templates)
}

// PageKey is the store key of a page (1-based) of an imported source
func PageKey(source int, page int) string {
	return fmt.Sprintf("%d/%d", source, page)
}
