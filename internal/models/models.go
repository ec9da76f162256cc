package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"        json:"id"`
	Name        string          `gorm:"not null"                        json:"name"`
	Category    string          `gorm:"index"                           json:"category"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(12,2)"     json:"price"`
	Stock       int             `gorm:"not null"                        json:"stock"`
	Description string          `                                       json:"description"`
}

type Customer struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"              json:"id"`
	Name      string          `gorm:"not null"                              json:"name"`
	Phone     string          `gorm:"not null;uniqueIndex"                  json:"phone"`
	TotalBill decimal.Decimal `gorm:"not null;type:decimal(12,2);default:0" json:"total_bill"`
	CreatedAt time.Time       `gorm:"not null"                              json:"created_at"`
}

type Bill struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CustomerName  string          `gorm:"not null"                    json:"customer_name"`
	CustomerPhone string          `gorm:"index"                       json:"customer_phone"`
	CreatedAt     time.Time       `gorm:"not null"                    json:"created_at"`
	TotalAmount   decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total_amount"`
	PaymentMethod string          `gorm:"not null"                    json:"payment_method"`
	Items         []BillItem      `gorm:"foreignKey:BillID"           json:"items,omitempty"`
}

type BillItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	BillID    uint            `gorm:"index;not null"              json:"bill_id"`
	ProductID uint            `gorm:"index;not null"              json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID"        json:"-"`
	Quantity  int             `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"unit_price"`
}

func All() []any {
	return []any{&Product{}, &Customer{}, &Bill{}, &BillItem{}}
}
