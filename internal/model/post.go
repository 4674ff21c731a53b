package model

import "time"

// Post 帖子（author 为自由文本，不关联 User）
type Post struct {
	ID        int64      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Title     string     `json:"title" gorm:"type:text;not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	Author    string     `json:"author" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time  `json:"createdAt" gorm:"not null"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"` // 首次编辑前为空
	Views     int64      `json:"views" gorm:"not null"`
}

func (Post) TableName() string { return "posts" }

// Clone 返回副本，store 之外不持有内部引用
func (p *Post) Clone() *Post {
	cp := *p
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}

// PostPatch 编辑请求；只有 Title/Content 可改
type PostPatch struct {
	Title   Optional[string] `json:"title"`
	Content Optional[string] `json:"content"`
}

// Apply 将非空字段写入 p，空字符串视为未修改
func (pp PostPatch) Apply(p *Post) {
	if v, ok := pp.Title.Get(); ok && v != "" {
		p.Title = v
	}
	if v, ok := pp.Content.Get(); ok && v != "" {
		p.Content = v
	}
}
