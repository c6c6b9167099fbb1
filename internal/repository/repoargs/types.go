package repoargs

type RepositoryName string

const (
	AccountRepoName     RepositoryName = "account"
	TransactionRepoName RepositoryName = "transaction"
	CatalogRepoName     RepositoryName = "catalog"
	GrantRepoName       RepositoryName = "grant"
	BoostRepoName       RepositoryName = "boost"
	ProfileRepoName     RepositoryName = "profile"
	EarningsRepoName    RepositoryName = "earnings"
	PayoutRepoName      RepositoryName = "payout"
	ReferralRepoName    RepositoryName = "referral"
	StoryRepoName       RepositoryName = "story"
)
