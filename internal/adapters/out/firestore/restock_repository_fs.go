// internal/adapters/out/firestore/restock_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	restockdom "storefront/internal/domain/restock"
)

// RestockRepositoryFS implements restock.Repository using Firestore.
//
// Collection design:
// - collection: restockSubscriptions
// - docId: subscription id (= skuId + "__" + email, deterministic)
// - pending = notifiedAt == nil
type RestockRepositoryFS struct {
	Client *firestore.Client
}

const restockCollection = "restockSubscriptions"

func NewRestockRepositoryFS(client *firestore.Client) *RestockRepositoryFS {
	return &RestockRepositoryFS{Client: client}
}

func (r *RestockRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(restockCollection)
}

func (r *RestockRepositoryFS) Upsert(ctx context.Context, s restockdom.Subscription) error {
	if r == nil || r.Client == nil {
		return errors.New("restock_repository_fs: firestore client is nil")
	}
	id := strings.TrimSpace(s.ID)
	if id == "" {
		return restockdom.ErrInvalid
	}

	_, err := r.col().Doc(id).Set(ctx, s)
	return err
}

func (r *RestockRepositoryFS) ListPendingBySKUID(ctx context.Context, skuID string) ([]restockdom.Subscription, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("restock_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(skuID)
	if sid == "" {
		return nil, restockdom.ErrInvalid
	}

	it := r.col().Where("skuId", "==", sid).Where("notifiedAt", "==", nil).Documents(ctx)
	defer it.Stop()

	var out []restockdom.Subscription
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var s restockdom.Subscription
		if err := snap.DataTo(&s); err != nil {
			return nil, err
		}
		s.ID = snap.Ref.ID
		out = append(out, s)
	}
	return out, nil
}

func (r *RestockRepositoryFS) MarkNotified(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("restock_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return restockdom.ErrInvalid
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "notifiedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return restockdom.ErrNotFound
		}
		return err
	}
	return nil
}
