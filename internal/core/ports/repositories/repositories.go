package repositories

// RepositoryProvider aggregates every repository implementation so the
// service container can be wired from a single value.
type RepositoryProvider struct {
	UserRepo        UserRepository
	WalletRepo      WalletRepository
	LedgerRepo      LedgerRepository
	CategoryRepo    CategoryRepository
	FriendRepo      FriendRepository
	PeerPaymentRepo PeerPaymentRepository
	SavingsGoalRepo SavingsGoalRepository
}
