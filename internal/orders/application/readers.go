package application

import (
	"github.com/cpearson/order-service/internal/orders/domain"
	"github.com/cpearson/order-service/pkg/option"
	"github.com/cpearson/order-service/pkg/pipeline"
)

// UserService is a thin suspending lookup over the user store.
type UserService struct {
	store Store[domain.User]
}

func NewUserService(store Store[domain.User]) *UserService {
	return &UserService{store: store}
}

func (s *UserService) GetByID(id int64) pipeline.Task[option.Option[domain.User]] {
	return s.store.GetByID(id)
}

// ProductService is a thin suspending lookup over the product store.
type ProductService struct {
	store Store[domain.Product]
}

func NewProductService(store Store[domain.Product]) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) GetByID(id int64) pipeline.Task[option.Option[domain.Product]] {
	return s.store.GetByID(id)
}

func (s *ProductService) GetAll() pipeline.Task[[]domain.Product] {
	return s.store.AllWhere(func(domain.Product) bool { return true })
}
