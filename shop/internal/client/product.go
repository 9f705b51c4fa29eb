package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/pkg/response"
	"github.com/Alturino/storefront/shop/internal/otel"
)

// ProductClient reads the catalog from product-service.
type ProductClient struct {
	baseURL string
	client  *http.Client
}

func NewProductClient(baseURL string) ProductClient {
	return ProductClient{baseURL: baseURL, client: otelhttp.DefaultClient}
}

type productResponse struct {
	Message string `json:"message"`
	Data    struct {
		Product response.Product `json:"product"`
	} `json:"data"`
}

func (p ProductClient) FindProductById(c context.Context, id string) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductClient FindProductById")
	defer span.End()

	requestId := log.RequestIDFromContext(c)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ProductClient FindProductById").
		Str(constants.KEY_PRODUCT_ID, id).
		Str(constants.KEY_REQUEST_ID, requestId).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "creating find product request").Logger()
	logger.Trace().Msg("creating find product request")
	target, err := url.JoinPath(p.baseURL, url.PathEscape(id))
	if err != nil {
		err = fmt.Errorf("failed joining product url with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	req, err := http.NewRequestWithContext(c, http.MethodGet, target, nil)
	if err != nil {
		err = fmt.Errorf("failed creating find product request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if requestId != "" {
		req.Header.Add(constants.KEY_HEADER_REQUEST_ID, requestId)
	}
	logger.Trace().Str(constants.KEY_REQUEST_URL, target).Msg("created find product request")

	logger = logger.With().Str(constants.KEY_PROCESS, "sending find product request").Logger()
	logger.Trace().Msg("sending find product request")
	resp, err := p.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed sending find product request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	defer resp.Body.Close()
	logger.Trace().Msg("sent find product request")

	logger = logger.With().Int(constants.KEY_STATUS_CODE, resp.StatusCode).Logger()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		err = fmt.Errorf("failed finding productId=%s with error=%w", id, inErrors.ErrProductNotFound)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	default:
		err = fmt.Errorf(
			"product service returned status code=%d with error=%w",
			resp.StatusCode,
			errors.New(errorMessage(resp.Body)),
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding find product response").Logger()
	logger.Trace().Msg("decoding find product response")
	respBody := productResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		err = fmt.Errorf("failed decoding find product response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Object(constants.KEY_PRODUCT, respBody.Data.Product).Msg("decoded find product response")

	return respBody.Data.Product, nil
}

// errorMessage reads the message of an error envelope, falling back to the
// raw body when the response is not JSON.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil {
		return err.Error()
	}
	respBody := productResponse{}
	if err := json.Unmarshal(raw, &respBody); err == nil && respBody.Message != "" {
		return respBody.Message
	}
	return strings.TrimSpace(string(raw))
}
