package notify

import "sync"

// 通知级别
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive" // 失败类通知
)

// Notification 结构化通知
// 核心逻辑对外可观察的唯一"协议"：每个数据操作都应发出一条
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Notifier 通知侧信道
type Notifier interface {
	Notify(n Notification)
}

// ==================== 实现 ====================

// MemoryNotifier 进程内环形通知缓冲
// 保留最近 N 条，接口层取走后展示给前端 (toast)
type MemoryNotifier struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

// NewMemoryNotifier 创建内存通知器
func NewMemoryNotifier(limit int) *MemoryNotifier {
	if limit <= 0 {
		limit = 100
	}
	return &MemoryNotifier{limit: limit}
}

func (m *MemoryNotifier) Notify(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append(m.items, n)
	if len(m.items) > m.limit {
		m.items = m.items[len(m.items)-m.limit:]
	}
}

// Drain 取走全部待展示通知
func (m *MemoryNotifier) Drain() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.items
	m.items = nil
	return out
}

// Last 查看最近一条 (测试断言用)，没有时返回零值
func (m *MemoryNotifier) Last() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return Notification{}, false
	}
	return m.items[len(m.items)-1], true
}

// Success 快捷构造成功通知
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDefault}
}

// Destructive 快捷构造失败通知
func Destructive(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}
