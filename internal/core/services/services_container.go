package services

import (
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// FX rates first since the transfer paths depend on them
	container.FxRate = NewFxRateService(cfg.FxAPIBaseURL, cfg.FxTimeout)

	container.Wallet = NewWalletService(repos.WalletRepo, repos.LedgerRepo, container.FxRate)
	container.User = NewUserService(repos.UserRepo, container.Wallet)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.WalletRepo, repos.CategoryRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Friend = NewFriendService(repos.FriendRepo, repos.UserRepo, container.Wallet)
	container.PeerPayment = NewPeerPaymentService(
		repos.PeerPaymentRepo,
		repos.WalletRepo,
		repos.LedgerRepo,
		repos.UserRepo,
		container.Friend,
		container.FxRate,
	)
	container.SavingsGoal = NewSavingsGoalService(repos.SavingsGoalRepo, repos.WalletRepo)

	// Initialize TokenService
	container.TokenService = NewTokenService(cfg)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
