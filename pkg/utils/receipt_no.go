package utils

import (
	"strconv"
	"time"
)

// GenerateReceiptNo produces the local fallback receipt number used when
// the upstream order response carries no identifier. It is millisecond
// timestamp based and therefore NOT guaranteed unique across terminals —
// the sale journal records it next to the (absent) server order ID so it
// can be reconciled later.
func GenerateReceiptNo() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
