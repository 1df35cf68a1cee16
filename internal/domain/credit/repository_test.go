package credit

import (
	"context"

	"credit-application-system/internal/domain/customer"
	"credit-application-system/internal/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCreditRepository struct {
	mock.Mock
}

var _ Repository = (*MockCreditRepository)(nil)

func (_m *MockCreditRepository) Save(ctx context.Context, credit *Credit) error {
	ret := _m.Called(ctx, credit)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Credit) error); ok {
		r0 = rf(ctx, credit)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCreditRepository) FindByCreditCode(ctx context.Context, code uuid.UUID) (*Credit, error) {
	ret := _m.Called(ctx, code)

	var r0 *Credit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Credit)
	}

	return r0, ret.Error(1)
}

func (_m *MockCreditRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Credit
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*Credit)
	}

	return r0, ret.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

var _ customer.CustomerService = (*MockCustomerService)(nil)

func (m *MockCustomerService) Save(ctx context.Context, cust *customer.Customer) (*customer.Customer, error) {
	args := m.Called(ctx, cust)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, customerID int64, fields customer.UpdateFields) (*customer.Customer, error) {
	args := m.Called(ctx, customerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, customerID int64) error {
	return m.Called(ctx, customerID).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

var _ event.Publisher = (*MockEventPublisher)(nil)

func (m *MockEventPublisher) PublishCustomerCreated(ctx context.Context, evt event.CustomerEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishCustomerUpdated(ctx context.Context, evt event.CustomerEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishCustomerDeleted(ctx context.Context, evt event.CustomerDeletedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventPublisher) PublishCreditIssued(ctx context.Context, evt event.CreditIssuedEvent) error {
	return m.Called(ctx, evt).Error(0)
}
