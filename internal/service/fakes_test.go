package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/domain"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/port"
)

// In-memory fakes for the repository ports. They implement just enough
// behavior for the policy checks in the services; transactional semantics
// live in the repository integration tests.

var errNotFound = errors.New("not found")

type fakeOrderRepo struct {
	orders  map[uuid.UUID]domain.Order
	created []port.CreateOrderParams
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]domain.Order{}}
}

func (f *fakeOrderRepo) put(order domain.Order) domain.Order {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = order
	return order
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, params port.CreateOrderParams) (domain.Order, error) {
	f.created = append(f.created, params)
	return f.put(domain.Order{
		UserID: params.UserID,
		Status: domain.OrderStatusPending,
	}), nil
}

func (f *fakeOrderRepo) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, errNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) SearchOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range f.orders {
		for _, userID := range filter.UserIDs {
			if order.UserID == userID {
				result = append(result, order)
			}
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range f.orders {
		result = append(result, order)
	}
	return result, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, errNotFound
	}
	order.Status = status
	f.orders[orderID] = order
	return order, nil
}

type fakePaymentRepo struct {
	payments  map[uuid.UUID]domain.Payment
	inserted  []port.CreatePaymentParams
	confirmed []uuid.UUID
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[uuid.UUID]domain.Payment{}}
}

func (f *fakePaymentRepo) put(payment domain.Payment) domain.Payment {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments[payment.ID] = payment
	return payment
}

func (f *fakePaymentRepo) InsertPayment(_ context.Context, params port.CreatePaymentParams) (domain.Payment, error) {
	f.inserted = append(f.inserted, params)
	return f.put(domain.Payment{
		OrderID:  params.OrderID,
		UserID:   params.UserID,
		Provider: params.Provider,
		Amount:   params.Amount,
		Status:   domain.PaymentStatusPending,
		Metadata: params.Metadata,
	}), nil
}

func (f *fakePaymentRepo) AttachProviderPaymentID(_ context.Context, paymentID uuid.UUID, providerPaymentID string) (domain.Payment, error) {
	payment, ok := f.payments[paymentID]
	if !ok {
		return domain.Payment{}, errNotFound
	}
	payment.ProviderPaymentID = providerPaymentID
	f.payments[paymentID] = payment
	return payment, nil
}

func (f *fakePaymentRepo) ConfirmPayment(_ context.Context, paymentID uuid.UUID, success bool) (domain.Payment, error) {
	payment, ok := f.payments[paymentID]
	if !ok {
		return domain.Payment{}, errNotFound
	}
	if !payment.Status.Confirmable() {
		return domain.Payment{}, domain.ErrPaymentNotConfirmable
	}

	payment.Status = domain.PaymentStatusFailed
	if success {
		payment.Status = domain.PaymentStatusSucceeded
	}
	f.payments[paymentID] = payment
	f.confirmed = append(f.confirmed, paymentID)
	return payment, nil
}

func (f *fakePaymentRepo) GetPayment(_ context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	payment, ok := f.payments[paymentID]
	if !ok {
		return domain.Payment{}, errNotFound
	}
	return payment, nil
}

func (f *fakePaymentRepo) ListPaymentsByOrder(_ context.Context, orderID uuid.UUID) ([]domain.Payment, error) {
	var result []domain.Payment
	for _, payment := range f.payments {
		if payment.OrderID == orderID {
			result = append(result, payment)
		}
	}
	return result, nil
}

func (f *fakePaymentRepo) ListPaymentsByUser(_ context.Context, userID uuid.UUID) ([]domain.Payment, error) {
	var result []domain.Payment
	for _, payment := range f.payments {
		if payment.UserID == userID {
			result = append(result, payment)
		}
	}
	return result, nil
}

func (f *fakePaymentRepo) ListPayments(_ context.Context) ([]domain.Payment, error) {
	var result []domain.Payment
	for _, payment := range f.payments {
		result = append(result, payment)
	}
	return result, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uuid.UUID]domain.Product{}}
}

func (f *fakeProductRepo) put(product domain.Product) domain.Product {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products[product.ID] = product
	return product
}

func (f *fakeProductRepo) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, errNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) ListProducts(_ context.Context) ([]domain.Product, error) {
	var result []domain.Product
	for _, product := range f.products {
		result = append(result, product)
	}
	return result, nil
}

func (f *fakeProductRepo) InsertProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	return f.put(product), nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	current, ok := f.products[product.ID]
	if !ok {
		return domain.Product{}, errNotFound
	}
	product.Stock = current.Stock
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, productID uuid.UUID) error {
	if _, ok := f.products[productID]; !ok {
		return errNotFound
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, productID uuid.UUID, delta int, _ *uuid.UUID) (domain.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, errNotFound
	}
	if product.Stock+delta < 0 {
		return domain.Product{}, domain.InsufficientStockError{
			ProductID:   productID,
			ProductName: product.Name,
			Requested:   -delta,
			Available:   product.Stock,
		}
	}
	product.Stock += delta
	f.products[productID] = product
	return product, nil
}

func (f *fakeProductRepo) SetStock(_ context.Context, productID uuid.UUID, stock int, _ *uuid.UUID) (domain.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return domain.Product{}, errNotFound
	}
	product.Stock = stock
	f.products[productID] = product
	return product, nil
}

type fakeCartRepo struct {
	items   map[uuid.UUID][]domain.CartItem // by user
	cleared []uuid.UUID
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: map[uuid.UUID][]domain.CartItem{}}
}

func (f *fakeCartRepo) GetCart(_ context.Context, userID uuid.UUID) (domain.Cart, error) {
	return domain.Cart{UserID: userID, Items: f.items[userID]}, nil
}

func (f *fakeCartRepo) AddItem(_ context.Context, userID, productID uuid.UUID, quantity int) (domain.CartItem, error) {
	item := domain.CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
	}
	f.items[userID] = append(f.items[userID], item)
	return item, nil
}

func (f *fakeCartRepo) UpdateItemQuantity(_ context.Context, userID, itemID uuid.UUID, quantity int) (domain.CartItem, error) {
	for i, item := range f.items[userID] {
		if item.ID == itemID {
			f.items[userID][i].Quantity = quantity
			return f.items[userID][i], nil
		}
	}
	return domain.CartItem{}, errNotFound
}

func (f *fakeCartRepo) RemoveItem(_ context.Context, userID, itemID uuid.UUID) (bool, error) {
	for i, item := range f.items[userID] {
		if item.ID == itemID {
			f.items[userID] = append(f.items[userID][:i], f.items[userID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) ClearCart(_ context.Context, userID uuid.UUID) error {
	delete(f.items, userID)
	f.cleared = append(f.cleared, userID)
	return nil
}

type fakeUserRepo struct {
	users       map[uuid.UUID]domain.User
	roleChanges []domain.RoleChange
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]domain.User{}}
}

func (f *fakeUserRepo) put(user domain.User) domain.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) GetUser(_ context.Context, userID uuid.UUID) (domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return domain.User{}, errNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		result = append(result, user)
	}
	return result, nil
}

func (f *fakeUserRepo) InsertUser(_ context.Context, user domain.User) (domain.User, error) {
	return f.put(user), nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, userID uuid.UUID, newRole domain.Role, changedBy *uuid.UUID) (domain.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return domain.User{}, errNotFound
	}
	if user.Role != newRole {
		f.roleChanges = append(f.roleChanges, domain.RoleChange{
			UserID:       userID,
			PreviousRole: user.Role,
			NewRole:      newRole,
			ChangedBy:    changedBy,
		})
		user.Role = newRole
		f.users[userID] = user
	}
	return user, nil
}

type fakeHistoryRepo struct {
	roleChanges  []domain.RoleChange
	stockChanges []domain.StockChange
}

func (f *fakeHistoryRepo) RoleHistoryByUser(_ context.Context, userID uuid.UUID) ([]domain.RoleChange, error) {
	var result []domain.RoleChange
	for _, change := range f.roleChanges {
		if change.UserID == userID {
			result = append(result, change)
		}
	}
	return result, nil
}

func (f *fakeHistoryRepo) StockHistoryByProduct(_ context.Context, productID uuid.UUID) ([]domain.StockChange, error) {
	var result []domain.StockChange
	for _, change := range f.stockChanges {
		if change.ProductID == productID {
			result = append(result, change)
		}
	}
	return result, nil
}
