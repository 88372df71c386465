package repoargs

type RepositoryName string

const (
	GameRepoName   RepositoryName = "game"
	CouponRepoName RepositoryName = "coupon"
	OrderRepoName  RepositoryName = "order"
	UserRepoName   RepositoryName = "user"
	ReviewRepoName RepositoryName = "review"
)
