package quote

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange 行号越界 / ErrIndexOutOfRange reports an invalid item index
var ErrIndexOutOfRange = errors.New("line item index out of range")

// Draft 提交前的本地可变报价草稿
// Draft is the client-local, mutable, pre-submission quote
type Draft struct {
	CompanyName string     `json:"company_name"`
	Items       []LineItem `json:"items"`
}

// ItemPatch 行的部分更新；nil 字段保持不变
// ItemPatch is a partial update of a line item; nil fields are left untouched
type ItemPatch struct {
	Name      *string
	UnitPrice *float64
	Quantity  *float64
	TaxRate   *float64
}

// DefaultItem 新草稿的首行 / DefaultItem is the first row of a fresh draft
func DefaultItem() LineItem {
	return LineItem{Name: "Service", UnitPrice: 100, Quantity: 1, TaxRate: 0}
}

// BlankItem 追加行的默认值 / BlankItem holds the defaults of an appended row
func BlankItem() LineItem {
	return LineItem{Name: "", UnitPrice: 0, Quantity: 1, TaxRate: 0}
}

// NewDraft 返回仅含一行默认项的草稿（提交成功后的重置状态）
// NewDraft returns a draft holding a single default item (the reset state after a successful submit)
func NewDraft() Draft {
	return Draft{Items: []LineItem{DefaultItem()}}
}

// Clone 深拷贝，修改副本不影响原草稿
// Clone deep-copies the draft so edits to the copy never reach the original
func (d Draft) Clone() Draft {
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return Draft{CompanyName: d.CompanyName, Items: items}
}

func (d *Draft) SetCompany(name string) {
	d.CompanyName = name
}

// AppendItem 追加空白行并返回其下标
// AppendItem appends a blank row and returns its index
func (d *Draft) AppendItem() int {
	items := make([]LineItem, len(d.Items), len(d.Items)+1)
	copy(items, d.Items)
	d.Items = append(items, BlankItem())
	return len(d.Items) - 1
}

// PatchItem 仅更新第 i 行中非 nil 的字段
// PatchItem updates only the non-nil fields of item i
func (d *Draft) PatchItem(i int, patch ItemPatch) error {
	if i < 0 || i >= len(d.Items) {
		return fmt.Errorf("patch item %d: %w", i, ErrIndexOutOfRange)
	}
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	items[i] = patch.Apply(items[i])
	d.Items = items
	return nil
}

// RemoveItem 删除第 i 行，后续行下标前移
// RemoveItem deletes item i; later items shift down by one
func (d *Draft) RemoveItem(i int) error {
	if i < 0 || i >= len(d.Items) {
		return fmt.Errorf("remove item %d: %w", i, ErrIndexOutOfRange)
	}
	items := make([]LineItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:i]...)
	items = append(items, d.Items[i+1:]...)
	d.Items = items
	return nil
}

// Total 草稿的预览合计 / Total is the draft's preview total
func (d Draft) Total() float64 {
	return Total(d.Items)
}

// Apply 返回应用补丁后的行 / Apply returns the item with the patch applied
func (p ItemPatch) Apply(item LineItem) LineItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.TaxRate != nil {
		item.TaxRate = *p.TaxRate
	}
	return item
}
