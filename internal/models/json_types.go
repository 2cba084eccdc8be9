package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ProductImage 商品图片
type ProductImage struct {
	ID        string `json:"id"`
	FileURL   string `json:"fileUrl"`
	AltText   string `json:"altText,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

// ProductImages 商品图片数组，以 JSON 存储
type ProductImages []ProductImage

// Value 实现 driver.Valuer 接口
func (p ProductImages) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan 实现 sql.Scanner 接口
func (p *ProductImages) Scan(value interface{}) error {
	return scanJSON(value, p, func() { *p = ProductImages{} })
}

// Primary 返回主图，没有标记主图时返回第一张
func (p ProductImages) Primary() (ProductImage, bool) {
	for _, img := range p {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(p) > 0 {
		return p[0], true
	}
	return ProductImage{}, false
}

// VariationAttribute 规格属性
type VariationAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariationAttributes 规格属性数组，以 JSON 存储
type VariationAttributes []VariationAttribute

// Value 实现 driver.Valuer 接口
func (a VariationAttributes) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan 实现 sql.Scanner 接口
func (a *VariationAttributes) Scan(value interface{}) error {
	return scanJSON(value, a, func() { *a = VariationAttributes{} })
}

func scanJSON(value interface{}, dest interface{}, reset func()) error {
	switch v := value.(type) {
	case nil:
		reset()
		return nil
	case []byte:
		if len(v) == 0 {
			reset()
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			reset()
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
}
