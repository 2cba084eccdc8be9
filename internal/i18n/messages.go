package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "Invalid request parameters",
		"error.unauthorized":           "Please sign in first",
		"error.token_invalid":          "Invalid or expired token",
		"error.forbidden":              "You do not have permission to perform this action",
		"error.not_found":              "Resource not found",
		"error.too_many_requests":      "Too many requests, please try again later",
		"error.internal_error":         "Internal server error",
		"error.session_required":       "A cart session is required",
		"error.session_not_found":      "Cart session not found",
		"error.product_id_required":    "Product id is required",
		"error.quantity_invalid":       "Quantity must be greater than zero and within the per-line limit",
		"error.product_not_found":      "Product not found",
		"error.product_inactive":       "Product is not available",
		"error.variation_not_found":    "Selected option is not available",
		"error.line_item_not_found":    "Cart item not found",
		"error.cart_item_not_found":    "Cart item not found",
		"error.wishlist_item_missing":  "Product is not in your wishlist",
		"error.storage_failed":         "Failed to save your cart, please try again",
		"error.remote_unavailable":     "Cart service is temporarily unavailable",
		"error.sync_failed":            "Failed to sync your cart",
		"error.sync_not_configured":    "Cart sync is not available for this session",
		"error.queue_unavailable":      "Background sync is not available",
		"error.auth_header_missing":    "Authorization header is missing",
		"error.auth_header_invalid":    "Authorization header is malformed",
		"error.jwt_secret_missing":     "Token verification is not configured",
		"error.session_invalid":        "Invalid cart session id",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiting is temporarily unavailable",
		"error.user_id_invalid":        "Invalid user id",
		"error.authz_update_failed":    "Failed to update permissions",
		"cart.sync_queued":             "Cart sync has been scheduled",
		"cart.cleared":                 "Your cart is empty",
		"wishlist.cleared":             "Your wishlist is empty",
	},
	LocaleAR: {
		"error.bad_request":            "معلمات الطلب غير صالحة",
		"error.unauthorized":           "يرجى تسجيل الدخول أولاً",
		"error.token_invalid":          "رمز غير صالح أو منتهي الصلاحية",
		"error.forbidden":              "ليس لديك صلاحية لتنفيذ هذا الإجراء",
		"error.not_found":              "المورد غير موجود",
		"error.too_many_requests":      "طلبات كثيرة جداً، يرجى المحاولة لاحقاً",
		"error.internal_error":         "خطأ داخلي في الخادم",
		"error.session_required":       "جلسة سلة التسوق مطلوبة",
		"error.session_not_found":      "جلسة سلة التسوق غير موجودة",
		"error.product_id_required":    "معرف المنتج مطلوب",
		"error.quantity_invalid":       "يجب أن تكون الكمية أكبر من صفر وضمن الحد المسموح",
		"error.product_not_found":      "المنتج غير موجود",
		"error.product_inactive":       "المنتج غير متوفر",
		"error.variation_not_found":    "الخيار المحدد غير متوفر",
		"error.line_item_not_found":    "العنصر غير موجود في السلة",
		"error.cart_item_not_found":    "العنصر غير موجود في السلة",
		"error.wishlist_item_missing":  "المنتج ليس في قائمة أمنياتك",
		"error.storage_failed":         "تعذر حفظ سلة التسوق، يرجى المحاولة مرة أخرى",
		"error.remote_unavailable":     "خدمة سلة التسوق غير متوفرة مؤقتاً",
		"error.sync_failed":            "تعذرت مزامنة سلة التسوق",
		"error.sync_not_configured":    "مزامنة السلة غير متاحة لهذه الجلسة",
		"error.queue_unavailable":      "المزامنة في الخلفية غير متاحة",
		"error.auth_header_missing":    "ترويسة التفويض مفقودة",
		"error.auth_header_invalid":    "ترويسة التفويض غير صالحة",
		"error.jwt_secret_missing":     "التحقق من الرمز غير مهيأ",
		"error.session_invalid":        "معرف جلسة السلة غير صالح",
		"error.rate_limited":           "طلبات كثيرة جداً، يرجى المحاولة بعد %d ثانية",
		"error.rate_limit_unavailable": "تحديد معدل الطلبات غير متاح مؤقتاً",
		"error.user_id_invalid":        "معرف المستخدم غير صالح",
		"error.authz_update_failed":    "فشل تحديث الصلاحيات",
		"cart.sync_queued":             "تمت جدولة مزامنة السلة",
		"cart.cleared":                 "سلة التسوق فارغة",
		"wishlist.cleared":             "قائمة الأمنيات فارغة",
	},
}
