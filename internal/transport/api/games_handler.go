package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service"
)

type GamesHandler struct {
	catalogSvs CatalogServicer
	reviewSvs  ReviewServicer
}

func NewGamesHandler(catalogSvs CatalogServicer, reviewSvs ReviewServicer) *GamesHandler {
	return &GamesHandler{
		catalogSvs: catalogSvs,
		reviewSvs:  reviewSvs,
	}
}

type GameResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Platform    domain.PlatformType `json:"platform"`
	Category    string              `json:"category"`
	Images      []string            `json:"images"`
	InStock     bool                `json:"in_stock"`
	StockCount  int32               `json:"stock_count"`
	Featured    bool                `json:"featured"`
	CreatedAt   time.Time           `json:"created_at"`
}

func newGameResponse(game *domain.Game) GameResponse {
	return GameResponse{
		ID:          game.ID,
		Title:       game.Title,
		Description: game.Description,
		Price:       game.Price.InexactFloat64(),
		Platform:    game.Platform,
		Category:    game.Category,
		Images:      game.Images,
		InStock:     game.InStock,
		StockCount:  game.StockCount,
		Featured:    game.Featured,
		CreatedAt:   game.CreatedAt,
	}
}

// Index GET GamesRoute. Публичный каталог с необязательными фильтрами
// q, platform и featured.
func (h *GamesHandler) Index(c *gin.Context) {
	listArgs := repoargs.ListGames{
		Query:    c.Query("q"),
		Platform: domain.PlatformType(c.Query("platform")),
	}
	if raw, exist := c.GetQuery("featured"); exist {
		featured := raw == "true" || raw == "1"
		listArgs.Featured = &featured
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	games, err := h.catalogSvs.List(reqCtx, listArgs)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]GameResponse, len(games))
	for i := range games {
		response[i] = newGameResponse(&games[i])
	}
	c.JSON(http.StatusOK, response)
}

// Show GET GameRoute.
func (h *GamesHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	game, err := h.catalogSvs.FindByID(reqCtx, id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGameResponse(game))
}

type CreateGameParams struct {
	Title       string   `binding:"required,min=1,max=255"    json:"title"`
	Description string   `binding:"max=5000"                  json:"description"`
	Price       float64  `binding:"required,gte=0"            json:"price"`
	Platform    string   `binding:"required,oneof=pc mobile"  json:"platform"`
	Category    string   `binding:"max=100"                   json:"category"`
	Images      []string `binding:"dive,url"                  json:"images"`
	InStock     bool     `json:"in_stock"`
	StockCount  int32    `binding:"gte=0"                     json:"stock_count"`
	Featured    bool     `json:"featured"`
}

// Create POST AdminRouteGroup + AdminGamesRoute.
func (h *GamesHandler) Create(c *gin.Context) {
	var params CreateGameParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	game, err := h.catalogSvs.Create(reqCtx, service.CreateGameArgs{
		Title:       params.Title,
		Description: params.Description,
		Price:       decimal.NewFromFloat(params.Price),
		Platform:    domain.PlatformType(params.Platform),
		Category:    params.Category,
		Images:      params.Images,
		InStock:     params.InStock,
		StockCount:  params.StockCount,
		Featured:    params.Featured,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newGameResponse(game))
}

// Delete DELETE AdminRouteGroup + AdminGameRoute.
func (h *GamesHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.catalogSvs.Delete(reqCtx, id); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"game_id"`
	UserID    int64     `json:"user_id"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Reviews GET GameReviewsRoute.
func (h *GamesHandler) Reviews(c *gin.Context) {
	gameID, ok := parseIDParam(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	reviews, err := h.reviewSvs.ListByGame(reqCtx, gameID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		response[i] = ReviewResponse{
			ID:        review.ID,
			GameID:    review.GameID,
			UserID:    review.UserID,
			Rating:    review.Rating,
			Comment:   review.Comment,
			Author:    review.Author,
			CreatedAt: review.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, response)
}

type CreateReviewParams struct {
	Rating  int32  `binding:"required,min=1,max=5" json:"rating"`
	Comment string `binding:"max=2000"             json:"comment"`
	Author  string `binding:"required,max=100"     json:"author"`
}

// CreateReview POST GameReviewsRoute. Требует авторизации.
func (h *GamesHandler) CreateReview(c *gin.Context) {
	gameID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var params CreateReviewParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	review, err := h.reviewSvs.Create(reqCtx, gameID, service.CreateReviewArgs{
		UserID:  getUserIDFromContext(c),
		Rating:  params.Rating,
		Comment: params.Comment,
		Author:  params.Author,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ReviewResponse{
		ID:        review.ID,
		GameID:    review.GameID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Author:    review.Author,
		CreatedAt: review.CreatedAt,
	})
}
