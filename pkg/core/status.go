package core

import (
	"fmt"
	"net/http"
	"sort"
)

// reasons is the closed status table. Codes outside it are rejected when
// assigned, never at emission time.
var reasons = map[int]string{
	http.StatusOK:                  "OK",
	http.StatusBadRequest:          "Bad Request.",
	http.StatusUnauthorized:        "Unauthorized.",
	http.StatusNotFound:            "Not Found.",
	http.StatusMethodNotAllowed:    "Method Not Allowed.",
	http.StatusInternalServerError: "Server Error.",
}

// StatusText returns the reason phrase for code and whether code is known.
func StatusText(code int) (string, bool) {
	r, ok := reasons[code]
	return r, ok
}

// KnownStatusCodes lists the accepted codes in ascending order.
func KnownStatusCodes() []int {
	out := make([]int, 0, len(reasons))
	for c := range reasons {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

func statusLine(code int) string {
	return fmt.Sprintf("%d %s", code, reasons[code])
}
