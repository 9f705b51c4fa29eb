package constants

const (
	APP_CART_SERVICE         = "cart-service"
	APP_MAIN_STOREFRONT      = "main storefront"
	APP_NOTIFICATION_SERVICE = "notification-service"
	APP_PRODUCT_SERVICE      = "product-service"
	APP_SHOP_SERVICE         = "shop-service"
)
