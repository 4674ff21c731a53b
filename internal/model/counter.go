package model

// Counter 每种资源的下一个 ID（仅 sqlite 后端使用）
type Counter struct {
	Kind  string `gorm:"primaryKey;type:varchar(16)"`
	Value int64  `gorm:"not null"`
}

func (Counter) TableName() string { return "counters" }

const (
	KindUser = "user"
	KindPost = "post"
)
