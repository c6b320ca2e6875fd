// internal/platform/di/store/container.go
package store

import (
	"context"
	"errors"
	"log"
	"strings"

	// inbound
	catalogquery "storefront/internal/application/query/catalog"
	usecase "storefront/internal/application/usecase"

	// outbound
	outfs "storefront/internal/adapters/out/firestore"
	gcso "storefront/internal/adapters/out/gcs"
	mailout "storefront/internal/adapters/out/mail"
	outpg "storefront/internal/adapters/out/postgres"

	restockdom "storefront/internal/domain/restock"

	"storefront/internal/infra/database"
	shared "storefront/internal/platform/di/shared"
)

// Container is the storefront DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Infra *shared.Infra

	// Queries
	ProductDetailQ *catalogquery.ProductDetailQuery

	// Usecases
	CartUC    *usecase.CartUsecase
	RestockUC *usecase.RestockUsecase

	// Repos handlers need directly
	ReviewRepo *outpg.ReviewRepositoryPG

	// Owned resources beyond Infra
	db *database.DB
}

// NewContainer wires the buyer-facing storefront service.
//
// Wiring policy:
// - Firestore repos (products/carts/restock) are required.
// - Postgres reviews are best-effort: review routes disappear when the DB
//   cannot be reached, the product page still renders (summary section only
//   carries an error string).
// - SendGrid is best-effort: restock subscribe still works, notification
//   sending is a no-op until a key is configured.
func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	// shared infra
	if infra == nil {
		var err error
		infra, err = shared.NewInfra(ctx)
		if err != nil {
			return nil, err
		}
	}
	if infra == nil {
		return nil, errors.New("di.store: shared infra is nil")
	}
	if infra.Config == nil {
		return nil, errors.New("di.store: shared infra config is nil")
	}

	fsClient := infra.Firestore
	if fsClient == nil {
		return nil, errors.New("di.store: infra.Firestore is nil")
	}
	gcsClient := infra.GCS
	if gcsClient == nil {
		return nil, errors.New("di.store: infra.GCS is nil")
	}

	cont := &Container{Infra: infra}

	// ------------------------------------------------------------
	// Repositories (Firestore)
	// ------------------------------------------------------------
	productRepo := outfs.NewProductRepositoryFS(fsClient)
	cartRepo := outfs.NewCartRepositoryFS(fsClient)
	restockRepo := outfs.NewRestockRepositoryFS(fsClient)

	// ------------------------------------------------------------
	// Reviews (Postgres, best-effort)
	// ------------------------------------------------------------
	if db := openReviewsDB(ctx, infra); db != nil {
		cont.db = db
		cont.ReviewRepo = outpg.NewReviewRepositoryPG(db.Client)
	}

	// ------------------------------------------------------------
	// Media resolver (GCS, best-effort: skipped when bucket unset)
	// ------------------------------------------------------------
	var media catalogquery.MediaResolver
	if bucket := infra.Settings.MediaBucket; bucket != "" {
		media = gcso.NewMediaResolverGCS(gcsClient, bucket)
	}

	// ------------------------------------------------------------
	// Product detail query
	// ------------------------------------------------------------
	{
		opts := []catalogquery.ProductDetailQueryOption{}
		if cont.ReviewRepo != nil {
			opts = append(opts, catalogquery.WithReviewRepo(cont.ReviewRepo))
		}
		if media != nil {
			opts = append(opts, catalogquery.WithMediaResolver(media))
		}
		cont.ProductDetailQ = catalogquery.NewProductDetailQuery(productRepo, opts...)
	}

	// ------------------------------------------------------------
	// Usecases
	// ------------------------------------------------------------
	cont.CartUC = usecase.NewCartUsecase(cartRepo, productRepo)

	var notifier restockdom.Notifier
	if key := resolveSendGridKey(ctx, infra); key != "" && infra.Settings.MailFromAddress != "" {
		notifier = mailout.NewRestockNotifier(mailout.NewSendGridClient(key), infra.Settings.MailFromAddress)
		log.Printf("[di.store] restock notifier initialized from=%s", infra.Settings.MailFromAddress)
	} else {
		log.Printf("[di.store] WARN: SendGrid not configured (restock notifications disabled)")
	}
	cont.RestockUC = usecase.NewRestockUsecase(restockRepo, productRepo, notifier)

	return cont, nil
}

// Close releases resources the container owns beyond shared Infra.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.db != nil {
		_ = c.db.Close()
	}
	return nil
}

// openReviewsDB connects to Postgres; password comes from Secret Manager when
// a secret name is configured, else DB_PASSWORD.
func openReviewsDB(ctx context.Context, infra *shared.Infra) *database.DB {
	cfg := infra.Config

	password := strings.TrimSpace(cfg.DBPassword)
	if secret := infra.Settings.DBPasswordSecret; secret != "" {
		if v, err := accessSecret(ctx, infra.SecretManager, infra.ProjectID, secret); err != nil {
			log.Printf("[di.store] WARN: db password secret read failed: %v (falling back to DB_PASSWORD)", err)
		} else {
			password = v
		}
	}
	if password == "" {
		log.Printf("[di.store] WARN: db password is empty (reviews disabled)")
		return nil
	}

	db, err := database.NewConnection(cfg.DBHost, cfg.DBPort, cfg.DBUser, password, cfg.DBName)
	if err != nil {
		log.Printf("[di.store] WARN: postgres connection failed: %v (reviews disabled)", err)
		return nil
	}
	return db
}

func resolveSendGridKey(ctx context.Context, infra *shared.Infra) string {
	key := strings.TrimSpace(infra.Config.SendGridAPIKey)
	if secret := infra.Settings.SendGridAPIKeySecret; secret != "" {
		if v, err := accessSecret(ctx, infra.SecretManager, infra.ProjectID, secret); err != nil {
			log.Printf("[di.store] WARN: sendgrid key secret read failed: %v (falling back to SENDGRID_API_KEY)", err)
		} else {
			key = v
		}
	}
	return key
}
