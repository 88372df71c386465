package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/logger"
	"github.com/rshanto/gameghor/internal/service"
	"github.com/rshanto/gameghor/internal/service/tokens"
	"github.com/rshanto/gameghor/internal/transport/api/mocks"
	"github.com/rshanto/gameghor/internal/transport/api/testutils"
)

type ReviewsHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockReviewService *mocks.MockReviewServicer
	jwtSecret         []byte
}

func TestReviewsHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewsHandlerTestSuite))
}

func (s *ReviewsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockReviewService = mocks.NewMockReviewServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:        logger.New(os.Stdout),
		ReviewService: s.mockReviewService,
		JWTSecretKey:  s.jwtSecret,
	})
}

func (s *ReviewsHandlerTestSuite) postReview(token string, payload any) *http.Response {
	body, marshalErr := json.Marshal(payload)
	s.Require().NoError(marshalErr)

	opts := []func(*testutils.RequestOptions){testutils.WithJSONBody()}
	if token != "" {
		opts = append(opts, testutils.WithAuthToken(token))
	}

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    "/games/7/reviews",
		Body:   bytes.NewReader(body),
	}, opts...)
	s.Require().NoError(err)
	return resp
}

// TestCreateReviewStampsUser: автор отзыва берется из JWT текущего юзера,
// тело запроса на user_id повлиять не может.
func (s *ReviewsHandlerTestSuite) TestCreateReviewStampsUser() {
	token, tokenErr := tokens.GenerateUserJWT(42, domain.RoleUser, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockReviewService.EXPECT().
		Create(gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, gameID int64, args service.CreateReviewArgs) (*domain.Review, error) {
			s.Equal(int64(42), args.UserID)
			s.EqualValues(5, args.Rating)
			return &domain.Review{
				ID:     1,
				GameID: gameID,
				UserID: args.UserID,
				Rating: args.Rating,
				Author: args.Author,
			}, nil
		})

	resp := s.postReview(token, gin.H{"rating": 5, "author": "buyer", "comment": "great game"})
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var reviewResp ReviewResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&reviewResp))
	s.Equal(int64(42), reviewResp.UserID)
}

func (s *ReviewsHandlerTestSuite) TestCreateReviewRequiresAuth() {
	resp := s.postReview("", gin.H{"rating": 5, "author": "buyer"})
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
