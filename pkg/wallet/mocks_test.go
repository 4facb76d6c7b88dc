package wallet_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/mintshell/pkg/wallet"
)

// MockWallet is a mock implementation of wallet.Wallet
type MockWallet struct {
	mock.Mock
}

func (m *MockWallet) Summary(ctx context.Context) (wallet.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(wallet.Summary), args.Error(1)
}

func (m *MockWallet) AddSource(ctx context.Context, url string) (wallet.Source, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(wallet.Source), args.Error(1)
}

func (m *MockWallet) Mint(ctx context.Context, url string) (wallet.MintClient, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(wallet.MintClient), args.Error(1)
}

// MockMintClient is a mock implementation of wallet.MintClient
type MockMintClient struct {
	mock.Mock
}

func (m *MockMintClient) CreateConfirmation(ctx context.Context, amount uint64) (wallet.Quote, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(wallet.Quote), args.Error(1)
}

func (m *MockMintClient) CheckStatus(ctx context.Context, q wallet.Quote) (wallet.QuoteState, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(wallet.QuoteState), args.Error(1)
}

func (m *MockMintClient) Finalize(ctx context.Context, q wallet.Quote) (uint64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockMintClient) TransferOut(ctx context.Context, amount uint64) (string, error) {
	args := m.Called(ctx, amount)
	return args.String(0), args.Error(1)
}

func (m *MockMintClient) TransferIn(ctx context.Context, token string) (uint64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockMintClient) PayRequest(ctx context.Context, request string) (uint64, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(uint64), args.Error(1)
}

func connectTo(w wallet.Wallet) wallet.Connector {
	return func(context.Context) (wallet.Wallet, error) { return w, nil }
}
