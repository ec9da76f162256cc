package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/fabric_billing/internal/models"
)

func (r *GormRepo) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, wrap("customers.find_by_phone", phone, err)
	}
	return &customer, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := r.DB.WithContext(ctx).Create(customer).Error; err != nil {
		return wrap("customers.create", customer.Phone, err)
	}
	return nil
}

func (r *GormRepo) SetCustomerTotal(ctx context.Context, id uint, total decimal.Decimal) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("total_bill", total)
	if res.Error != nil {
		return wrap("customers.set_total", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("customers.set_total", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormRepo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := make([]models.Customer, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&customers).Error; err != nil {
		return nil, wrap("customers.list", "", err)
	}
	return customers, nil
}
