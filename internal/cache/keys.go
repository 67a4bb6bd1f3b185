package cache

import (
	"strconv"
	"strings"
)

// KeyTaxRules returns the cache key for a country's tax list.
func KeyTaxRules(country string) string {
	return "tax:rules:" + strings.ToUpper(strings.TrimSpace(country))
}

// KeySalesReport returns a per-business key for a sales report window.
func KeySalesReport(businessID int64, from, to string) string {
	return "report:sales:" + strconv.FormatInt(businessID, 10) + ":" + from + ":" + to
}
