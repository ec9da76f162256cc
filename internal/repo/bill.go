package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/fabric_billing/internal/models"
)

// BillItemRow is a bill line joined with the product name.
type BillItemRow struct {
	ID          uint
	BillID      uint
	ProductID   uint
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductName string
}

func (r *GormRepo) CreateBill(ctx context.Context, bill *models.Bill) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(bill).Error; err != nil {
		return wrap("bills.create", bill.CustomerName, err)
	}
	return nil
}

func (r *GormRepo) CreateBillItem(ctx context.Context, item *models.BillItem) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return wrap("bill_items.create", item.ProductID, err)
	}
	return nil
}

func (r *GormRepo) GetBill(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		First(&bill, id).Error
	if err != nil {
		return nil, wrap("bills.get", id, err)
	}
	return &bill, nil
}

func (r *GormRepo) ListBills(ctx context.Context) ([]models.Bill, error) {
	bills := make([]models.Bill, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&bills).Error; err != nil {
		return nil, wrap("bills.list", "", err)
	}
	return bills, nil
}

// ListBillsPage returns bill headers newest first, plus the total count.
func (r *GormRepo) ListBillsPage(ctx context.Context, offset, limit int) ([]models.Bill, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Bill{}).Count(&total).Error; err != nil {
		return nil, 0, wrap("bills.count", "", err)
	}

	bills := make([]models.Bill, 0, limit)
	err := r.DB.WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&bills).Error
	if err != nil {
		return nil, 0, wrap("bills.list_page", offset, err)
	}
	return bills, total, nil
}

func (r *GormRepo) ListBillsByPhone(ctx context.Context, phone string) ([]models.Bill, error) {
	bills := make([]models.Bill, 0)
	if err := r.DB.WithContext(ctx).
		Where("customer_phone = ?", phone).
		Order("id ASC").
		Find(&bills).Error; err != nil {
		return nil, wrap("bills.list_by_phone", phone, err)
	}
	return bills, nil
}

func (r *GormRepo) ListBillItemRows(ctx context.Context) ([]BillItemRow, error) {
	rows := make([]BillItemRow, 0)
	err := r.DB.WithContext(ctx).
		Table("bill_items AS bi").
		Select("bi.id, bi.bill_id, bi.product_id, bi.quantity, bi.unit_price, p.name AS product_name").
		Joins("JOIN products p ON bi.product_id = p.id").
		Order("bi.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("bill_items.list", "", err)
	}
	return rows, nil
}
