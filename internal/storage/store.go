package storage

// KV 持久化键值接口，写入与删除均为原子操作
// KV is a durable key-value interface; multi-key writes and deletes are atomic
type KV interface {
	// Get 返回键值；键不存在时 ok 为 false 且 err 为 nil
	// Get returns the value; ok is false and err nil when the key is absent
	Get(key string) (value string, ok bool, err error)

	// SetMany 在同一事务中写入全部键值
	// SetMany writes every pair in a single transaction
	SetMany(values map[string]string) error

	// Delete 在同一事务中删除全部键
	// Delete removes every key in a single transaction
	Delete(keys ...string) error
}

// Store 持久化接口 / Store is the persistence interface
type Store interface {
	KV

	// 确认日志 / Confirmation log
	LogConfirmation(entry ConfirmationEntry) error
	RecentConfirmations(limit int) ([]ConfirmationEntry, error)

	// 生命周期 / Lifecycle
	Close() error
}
