// internal/application/usecase/restock_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	catdom "storefront/internal/domain/catalog"
	restockdom "storefront/internal/domain/restock"
)

var (
	ErrRestockInvalidArgument = errors.New("restock_usecase: invalid argument")
	ErrRestockSKUNotFound     = errors.New("restock_usecase: sku not found")
	ErrRestockAlreadyInStock  = errors.New("restock_usecase: sku is in stock")
)

// RestockUsecase manages "notify me when back in stock" subscriptions.
type RestockUsecase struct {
	repo     restockdom.Repository
	products catdom.Repository
	notifier restockdom.Notifier
	clock    Clock
}

func NewRestockUsecase(
	repo restockdom.Repository,
	products catdom.Repository,
	notifier restockdom.Notifier,
) *RestockUsecase {
	return &RestockUsecase{
		repo:     repo,
		products: products,
		notifier: notifier,
		clock:    systemClock{},
	}
}

// NewRestockUsecaseWithClock is useful for tests.
func NewRestockUsecaseWithClock(
	repo restockdom.Repository,
	products catdom.Repository,
	notifier restockdom.Notifier,
	clock Clock,
) *RestockUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &RestockUsecase{repo: repo, products: products, notifier: notifier, clock: clock}
}

// Subscribe registers an email for one out-of-stock SKU.
// The doc id is deterministic (skuId + email), so re-subscribing is idempotent.
func (uc *RestockUsecase) Subscribe(ctx context.Context, productID, skuID, email string) (restockdom.Subscription, error) {
	pid := strings.TrimSpace(productID)
	sid := strings.TrimSpace(skuID)
	mail := strings.ToLower(strings.TrimSpace(email))
	if pid == "" || sid == "" || mail == "" {
		return restockdom.Subscription{}, ErrRestockInvalidArgument
	}

	detail, err := uc.products.GetDetailBySKUID(ctx, sid)
	if err != nil {
		if catdom.IsNotFound(err) {
			return restockdom.Subscription{}, ErrRestockSKUNotFound
		}
		return restockdom.Subscription{}, err
	}
	sku := detail.PrimarySKU
	if sku.ID != sid || sku.ProductID != pid {
		return restockdom.Subscription{}, ErrRestockSKUNotFound
	}
	if sku.InStock() {
		// 在庫があるなら購読の意味がない。呼び出し側にそのまま伝える。
		return restockdom.Subscription{}, ErrRestockAlreadyInStock
	}

	id := sid + "__" + mail
	sub, err := restockdom.NewSubscription(id, pid, sid, mail, uc.clock.Now())
	if err != nil {
		return restockdom.Subscription{}, err
	}

	if err := uc.repo.Upsert(ctx, sub); err != nil {
		return restockdom.Subscription{}, err
	}
	return sub, nil
}

// NotifyForSKU mails every pending subscriber of skuID when the SKU is back
// in stock, marking each notified. Returns the number of mails sent.
//
// Per-subscriber failures are logged and skipped (the rest still get mail).
func (uc *RestockUsecase) NotifyForSKU(ctx context.Context, skuID string) (int, error) {
	sid := strings.TrimSpace(skuID)
	if sid == "" {
		return 0, ErrRestockInvalidArgument
	}
	if uc.notifier == nil {
		return 0, errors.New("restock_usecase: notifier is nil")
	}

	detail, err := uc.products.GetDetailBySKUID(ctx, sid)
	if err != nil {
		if catdom.IsNotFound(err) {
			return 0, ErrRestockSKUNotFound
		}
		return 0, err
	}
	if !detail.PrimarySKU.InStock() {
		// まだ在庫が無いなら何もしない（冪等）
		return 0, nil
	}

	pending, err := uc.repo.ListPendingBySKUID(ctx, sid)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, sub := range pending {
		if err := uc.notifier.NotifyBackInStock(ctx, sub.Email, detail.Product.Name, sid); err != nil {
			log.Printf("[restock] notify error skuId=%q email=%q err=%q", sid, sub.Email, err.Error())
			continue
		}
		if err := uc.repo.MarkNotified(ctx, sub.ID); err != nil {
			log.Printf("[restock] mark notified error id=%q err=%q", sub.ID, err.Error())
			continue
		}
		sent++
	}

	log.Printf("[restock] notify done skuId=%q pending=%d sent=%d", sid, len(pending), sent)
	return sent, nil
}
