package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/vstore/internal/domain"
	"github.com/osse101/vstore/internal/inventory"
	"github.com/osse101/vstore/internal/market"
)

// MockInventoryService implements inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Buy(ctx context.Context, itemID, payload string) error {
	return m.Called(ctx, itemID, payload).Error(0)
}

func (m *MockInventoryService) Balance(ctx context.Context, itemID string) (int, error) {
	args := m.Called(ctx, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) Give(ctx context.Context, itemID string, amount int) error {
	return m.Called(ctx, itemID, amount).Error(0)
}

func (m *MockInventoryService) Take(ctx context.Context, itemID string, amount int) error {
	return m.Called(ctx, itemID, amount).Error(0)
}

func (m *MockInventoryService) Equip(ctx context.Context, goodID string) error {
	return m.Called(ctx, goodID).Error(0)
}

func (m *MockInventoryService) Unequip(ctx context.Context, goodID string) error {
	return m.Called(ctx, goodID).Error(0)
}

func (m *MockInventoryService) IsEquipped(ctx context.Context, goodID string) (bool, error) {
	args := m.Called(ctx, goodID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryService) UpgradeLevel(ctx context.Context, goodID string) (int, error) {
	args := m.Called(ctx, goodID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) CurrentUpgrade(ctx context.Context, goodID string) (string, error) {
	args := m.Called(ctx, goodID)
	return args.String(0), args.Error(1)
}

func (m *MockInventoryService) Upgrade(ctx context.Context, goodID string) error {
	return m.Called(ctx, goodID).Error(0)
}

func (m *MockInventoryService) ForceUpgrade(ctx context.Context, upgradeID string) error {
	return m.Called(ctx, upgradeID).Error(0)
}

func (m *MockInventoryService) RemoveUpgrades(ctx context.Context, goodID string) error {
	return m.Called(ctx, goodID).Error(0)
}

func (m *MockInventoryService) ExportBalances(ctx context.Context) (domain.Balances, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Balances), args.Error(1)
}

func (m *MockInventoryService) ImportBalances(ctx context.Context, snapshot domain.Balances) (*inventory.ImportReport, error) {
	args := m.Called(ctx, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.ImportReport), args.Error(1)
}

func (m *MockInventoryService) HandleMarketPurchase(ctx context.Context, c market.Completion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockInventoryService) HandleMarketCancelled(ctx context.Context, c market.Completion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockInventoryService) HandleMarketRefund(ctx context.Context, c market.Completion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockInventoryService) HandleMarketFailure(ctx context.Context, c market.Completion) error {
	return m.Called(ctx, c).Error(0)
}
