package repoargs

type CreateReview struct {
	GameID  int64
	UserID  int64
	Rating  int32
	Comment string
	Author  string
}
