package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

type OrderService struct {
	uow        uow.UOW
	orderRepo  OrderRepository
	gameRepo   GameRepository
	couponSvs  CouponValidator
	validation *validator.Validate
}

func NewOrderService(u uow.UOW, couponSvs CouponValidator) (*OrderService, error) {
	orderRepo, orderRepoErr := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if orderRepoErr != nil {
		return nil, orderRepoErr
	}
	gameRepo, gameRepoErr := uow.GetRepositoryAs[GameRepository](u, uow.RepositoryName(repoargs.GameRepoName))
	if gameRepoErr != nil {
		return nil, gameRepoErr
	}
	return &OrderService{
		uow:        u,
		orderRepo:  orderRepo,
		gameRepo:   gameRepo,
		couponSvs:  couponSvs,
		validation: validator.New(),
	}, nil
}

type PlaceOrderArgs struct {
	GameID        int64
	BuyerEmail    string
	PaymentNumber string
	TransactionID string
	CouponCode    string
	Note          string
}

// PlaceOrder принимает заявку на покупку и превращает ее в заказ в статусе
// pending либо в типизированный отказ (*domain.AdmissionError).
//
// Алгоритм работы (проверки выполняются по порядку, первая неудача прерывает):
//  1. Загружает игру; купон (если передан) проверяется параллельно, так как
//     результаты друг от друга не зависят.
//  2. Проверяет доступность: in_stock и stock_count > 0 требуются оба.
//  3. Валидирует обязательные поля покупателя.
//  4. Переданный, но невалидный купон отклоняет заказ целиком - молчаливый
//     откат на полную цену запрещен, покупатель должен видеть цену, на
//     которую согласился.
//  5. Снимает снапшот цены, считает итог с округлением до 2 знаков и создает
//     заказ. Остаток на этом шаге не уменьшается: резервирование происходит
//     только при завершении заказа оператором, перепродажа - осознанный риск.
func (o *OrderService) PlaceOrder(ctx context.Context, args PlaceOrderArgs) (*domain.Order, error) {
	var game *domain.Game
	var couponResult *domain.CouponResult
	var gameErr, couponErr error

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		game, gameErr = o.gameRepo.FindByID(groupCtx, args.GameID)
		return gameErr
	})
	if args.CouponCode != "" {
		g.Go(func() error {
			couponResult, couponErr = o.couponSvs.Validate(groupCtx, args.CouponCode, args.GameID)
			return couponErr
		})
	}
	_ = g.Wait()

	// Ошибки разбираются именно в этом порядке, а не в порядке завершения
	// горутин: отказ not_found не должен зависеть от того, какая из двух
	// загрузок упала первой.
	if gameErr != nil {
		if errors.Is(gameErr, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("game")
		}
		return nil, fmt.Errorf("placing order: %w", gameErr)
	}
	if couponErr != nil {
		return nil, fmt.Errorf("placing order: %w", couponErr)
	}

	if !game.Purchasable() {
		return nil, domain.NewOutOfStockError()
	}

	if invalidFields := o.invalidOrderFields(args); len(invalidFields) > 0 {
		return nil, domain.NewInvalidInputError(invalidFields...)
	}

	var discountPercent int32
	var couponCode string
	if couponResult != nil {
		if !couponResult.Valid {
			return nil, domain.NewInvalidCouponError(couponResult.Reason)
		}
		discountPercent = couponResult.DiscountPercent
		couponCode = NormalizeCouponCode(args.CouponCode)
	}

	order, createErr := o.orderRepo.Create(ctx, repoargs.CreateOrder{
		GameID:          args.GameID,
		BuyerEmail:      args.BuyerEmail,
		PaymentNumber:   args.PaymentNumber,
		TransactionID:   args.TransactionID,
		CouponCode:      couponCode,
		UnitPrice:       game.Price,
		DiscountPercent: discountPercent,
		TotalPrice:      domain.DiscountedTotal(game.Price, discountPercent),
		Note:            args.Note,
	})
	if createErr != nil {
		return nil, fmt.Errorf("placing order: %w", createErr)
	}
	return order, nil
}

func (o *OrderService) invalidOrderFields(args PlaceOrderArgs) []string {
	var fields []string
	if o.validation.Var(args.BuyerEmail, "required,email") != nil {
		fields = append(fields, "buyer_email")
	}
	if args.PaymentNumber == "" {
		fields = append(fields, "payment_number")
	}
	if args.TransactionID == "" {
		fields = append(fields, "transaction_id")
	}
	return fields
}

// SetStatus переводит заказ в новый статус по действию оператора. Единственная
// точка записи статуса. Переход проверяется по таблице domain.CanTransition;
// из терминальных статусов переходов нет. Ценовые поля заказа не изменяются
// ни при каком переходе.
//
// Перевод в completed дополнительно списывает единицу остатка игры в той же
// транзакции (условный декремент: только при stock_count > 0).
func (o *OrderService) SetStatus(ctx context.Context, id int64, status domain.OrderStatusType) (*domain.Order, error) {
	var updated *domain.Order

	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}

		order, findErr := orderRepo.FindByID(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}

		if !domain.CanTransition(order.Status, status) {
			return domain.NewInvalidTransitionError(order.Status, status)
		}

		var updErr error
		updated, updErr = orderRepo.UpdateStatus(c, id, status)
		if updErr != nil {
			return updErr //nolint:wrapcheck
		}

		if status == domain.OrderStatusCompleted {
			gameRepo, gameRepoErr := uow.GetAs[GameRepository](tx, uow.RepositoryName(repoargs.GameRepoName))
			if gameRepoErr != nil {
				return gameRepoErr //nolint:wrapcheck
			}
			// Остаток мог закончиться между приемом и завершением заказа -
			// тогда декремент ничего не спишет. Заказ все равно завершается:
			// оплата заявлена, разбор перепродажи - ручной процесс.
			if _, decErr := gameRepo.DecrementStock(c, updated.GameID); decErr != nil {
				return decErr //nolint:wrapcheck
			}
		}
		return nil
	})

	if txErr != nil {
		if _, ok := domain.AsAdmissionError(txErr); ok {
			return nil, txErr
		}
		if errors.Is(txErr, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("order")
		}
		return nil, fmt.Errorf("setting order status: %w", txErr)
	}
	return updated, nil
}

func (o *OrderService) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := o.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("order")
		}
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// List возвращает заказы для панели оператора, новые - первыми.
func (o *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := o.orderRepo.List(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}
