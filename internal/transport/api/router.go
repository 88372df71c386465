package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rshanto/gameghor/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	GamesRoute          = "/games"
	GameRoute           = "/games/:id"
	GameReviewsRoute    = "/games/:id/reviews"
	CouponValidateRoute = "/coupons/validate"
	VerifyNagadRoute    = "/verify/nagad"
	OrdersRoute         = "/orders"
	RegisterRoute       = "/auth/register"
	LoginRoute          = "/auth/login"

	AdminRouteGroup   = "/admin"
	AdminGamesRoute   = "/games"
	AdminGameRoute    = "/games/:id"
	AdminOrdersRoute  = "/orders"
	AdminOrderRoute   = "/orders/:id"
	AdminCouponsRoute = "/coupons"
	AdminCouponRoute  = "/coupons/:id"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	CatalogService CatalogServicer
	CouponService  CouponServicer
	OrderService   OrderServicer
	UserService    UserServicer
	ReviewService  ReviewServicer
	Verifier       PaymentVerifier
	JWTSecretKey   []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	gamesHandler := NewGamesHandler(args.CatalogService, args.ReviewService)
	couponsHandler := NewCouponsHandler(args.CouponService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	authHandler := NewAuthHandler(args.UserService)
	verifyHandler := NewVerifyHandler(args.Verifier)

	r.GET(GamesRoute, gamesHandler.Index)
	r.GET(GameRoute, gamesHandler.Show)
	r.GET(GameReviewsRoute, gamesHandler.Reviews)

	r.POST(CouponValidateRoute, couponsHandler.Validate)
	r.POST(VerifyNagadRoute, verifyHandler.Nagad)
	r.POST(OrdersRoute, ordersHandler.Create)

	r.POST(RegisterRoute, authHandler.Register)
	r.POST(LoginRoute, authHandler.Login)

	r.POST(GameReviewsRoute, middlewares.AuthRequired(args.JWTSecretKey), gamesHandler.CreateReview)

	admin := r.Group(AdminRouteGroup)
	admin.Use(middlewares.AuthRequired(args.JWTSecretKey), middlewares.AdminRequired())
	// ниже все роуты группы требуют юзера с ролью admin.
	admin.POST(AdminGamesRoute, gamesHandler.Create)
	admin.DELETE(AdminGameRoute, gamesHandler.Delete)

	admin.GET(AdminOrdersRoute, ordersHandler.Index)
	admin.PATCH(AdminOrderRoute, ordersHandler.UpdateStatus)

	admin.GET(AdminCouponsRoute, couponsHandler.Index)
	admin.POST(AdminCouponsRoute, couponsHandler.Create)
	admin.PATCH(AdminCouponRoute, couponsHandler.Update)
	admin.DELETE(AdminCouponRoute, couponsHandler.Delete)

	return r
}
