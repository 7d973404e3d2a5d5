package canvas

// Registry 最简单的 Document 实现：id -> Element 映射
type Registry struct {
	elements map[string]Element
}

// NewRegistry 创建空的元素注册表
func NewRegistry() *Registry {
	return &Registry{elements: make(map[string]Element)}
}

// Register 以 id 注册元素，已存在的同名元素会被替换
func (r *Registry) Register(id string, el Element) {
	r.elements[id] = el
}

// Remove 移除元素
func (r *Registry) Remove(id string) {
	delete(r.elements, id)
}

// Element 实现 Document 接口
func (r *Registry) Element(id string) (Element, bool) {
	el, ok := r.elements[id]
	return el, ok
}
