package pgsql

import (
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	walletRepo := newPgxWalletRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	friendRepo := newPgxFriendRepository(dbPool)
	peerPaymentRepo := newPgxPeerPaymentRepository(dbPool)
	savingsGoalRepo := newPgxSavingsGoalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		WalletRepo:      walletRepo,
		LedgerRepo:      ledgerRepo,
		CategoryRepo:    categoryRepo,
		FriendRepo:      friendRepo,
		PeerPaymentRepo: peerPaymentRepo,
		SavingsGoalRepo: savingsGoalRepo,
	}
}
