package constants

const (
	KEY_APP_NAME             = "app"
	KEY_BODY                 = "body"
	KEY_CACHE_KEY            = "cacheKey"
	KEY_CART_BACKEND         = "cartBackend"
	KEY_CART_ITEM            = "cartItem"
	KEY_CART_ITEMS           = "cartItems"
	KEY_CART_ITEM_QUANTITY   = "cartItemQuantity"
	KEY_CART_MERGED_QUANTITY = "cartItemMergedQuantity"
	KEY_CONFIG               = "config"
	KEY_DB_URL               = "dbUrl"
	KEY_HEADER               = "header"
	KEY_NAVIGATION_TARGET    = "navigationTarget"
	KEY_NOTIFICATION         = "notification"
	KEY_NOTIFIER_BACKEND     = "notifierBackend"
	KEY_PROCESS              = "process"
	KEY_PRODUCT              = "product"
	KEY_PRODUCTS             = "products"
	KEY_PRODUCT_ID           = "productId"
	KEY_REQUEST              = "request"
	KEY_REQUEST_BODY         = "requestBody"
	KEY_REQUEST_HOST         = "host"
	KEY_REQUEST_ID           = "requestId"
	KEY_REQUEST_IP           = "requesterIP"
	KEY_REQUEST_METHOD       = "requestMethod"
	KEY_REQUEST_URI          = "requestURI"
	KEY_REQUEST_URL          = "requestURL"
	KEY_SELECTOR_QUANTITY    = "selectorQuantity"
	KEY_SESSION_ID           = "sessionId"
	KEY_SPAN_ID              = "spanId"
	KEY_STATUS_CODE          = "statusCode"
	KEY_TAG                  = "tag"
	KEY_TRACE_ID             = "traceId"
)
