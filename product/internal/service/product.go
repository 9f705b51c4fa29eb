package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/product/internal/otel"
	"github.com/Alturino/storefront/product/internal/repository"
	"github.com/Alturino/storefront/product/pkg/request"
	"github.com/Alturino/storefront/product/pkg/response"
)

const (
	KEY_PRODUCTS = "products:%s"
	cacheTTL     = time.Hour
)

type ProductService struct {
	pool    *pgxpool.Pool
	queries *repository.Queries
	cache   *redis.Client
}

func NewProductService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
) *ProductService {
	return &ProductService{pool: pool, queries: queries, cache: cache}
}

func (svc *ProductService) InsertProduct(
	c context.Context,
	param request.InsertProduct,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ProductService InsertProduct").
		Str(constants.KEY_PRODUCT_ID, param.ID).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating product").Logger()
	logger.Trace().Msg("validating product")
	if err := validate.Get().StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("validated product")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing transaction").Logger()
	logger.Trace().Msg("initializing transaction")
	tx, err := svc.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	defer func() {
		if err := tx.Rollback(c); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Error().Err(err).Msg("failed rolling back transaction")
		}
	}()
	queries := svc.queries.WithTx(tx)
	logger.Trace().Msg("initialized transaction")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	_, err = queries.FindProductById(c, param.ID)
	if err == nil {
		err = fmt.Errorf("failed inserting productId=%s with error=%w", param.ID, inErrors.ErrProductAlreadyExist)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("product is not exist in database")
	logger.Trace().Msg("product is not exist in database")

	images := param.Images
	if images == nil {
		images = []string{}
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting product to database").Logger()
	logger.Trace().Msg("inserting product to database")
	span.AddEvent("inserting product to database")
	inserted, err := queries.InsertProduct(c, repository.InsertProductParams{
		ID:         param.ID,
		Name:       param.Name,
		Images:     images,
		Price:      repository.Numeric(param.Price),
		Discount:   param.Discount,
		NewArrival: param.NewArrival,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product := inserted.Response()
	span.AddEvent("inserted product to database")
	logger = logger.With().Object(constants.KEY_PRODUCT, product).Logger()
	logger.Info().Msg("inserted product to database")

	logger = logger.With().Str(constants.KEY_PROCESS, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("committed transaction")

	c = logger.WithContext(c)
	svc.cacheProduct(c, product)

	return product, nil
}

func (svc *ProductService) GetProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService GetProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ProductService GetProducts").
		Str(constants.KEY_PROCESS, "finding products in database").
		Logger()

	logger.Trace().Msg("finding products in database")
	span.AddEvent("finding products in database")
	rows, err := svc.queries.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	products := make([]response.Product, len(rows))
	for i, row := range rows {
		products[i] = row.Response()
	}
	span.AddEvent("found products in database")
	logger.Info().Int(constants.KEY_PRODUCTS, len(products)).Msg("found products in database")

	return products, nil
}

func (svc *ProductService) FindProductById(
	c context.Context,
	id string,
) (product response.Product, err error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	cacheKey := fmt.Sprintf(KEY_PRODUCTS, id)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ProductService FindProductById").
		Str(constants.KEY_PRODUCT_ID, id).
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding product in cache").Logger()
	logger.Trace().Msg("finding product in cache")
	jsonCache, err := svc.cache.Get(c, cacheKey).Result()
	if err == nil {
		err = json.Unmarshal([]byte(jsonCache), &product)
		if err == nil {
			span.AddEvent("found product in cache")
			logger.Info().Msg("found product in cache")
			return product, nil
		}
		err = fmt.Errorf("failed unmarshaling product from cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else if !errors.Is(err, redis.Nil) {
		err = fmt.Errorf("failed finding product in cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
	}
	logger.Trace().Msg("product is not in cache")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	row, err := svc.queries.FindProductById(c, id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding productId=%s with error=%w", id, inErrors.ErrProductNotFound)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if err != nil {
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	product = row.Response()
	span.AddEvent("found product in database")
	logger.Info().Msg("found product in database")

	c = logger.WithContext(c)
	svc.cacheProduct(c, product)

	return product, nil
}

// cacheProduct is best effort; the database stays the source of truth.
func (svc *ProductService) cacheProduct(c context.Context, product response.Product) {
	c, span := otel.Tracer.Start(c, "ProductService cacheProduct")
	defer span.End()

	cacheKey := fmt.Sprintf(KEY_PRODUCTS, product.ID)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_PROCESS, "inserting product to cache").
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger.Trace().Msg("inserting product to cache")
	value, err := json.Marshal(product)
	if err != nil {
		err = fmt.Errorf("failed marshaling product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if err = svc.cache.Set(c, cacheKey, value, cacheTTL).Err(); err != nil {
		err = fmt.Errorf("failed inserting product to cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("inserted product to cache")
}
