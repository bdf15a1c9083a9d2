package tree

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	errorInvalidDepthFormat  = "invalid depth %q: expected a non-negative integer or one of %s"
	errorNegativeDepthFormat = "invalid depth %q: must not be negative"
	unlimitedDepthLiteral    = "inf"
)

var unlimitedDepthLiterals = map[string]struct{}{
	unlimitedDepthLiteral: {},
	"infinite":            {},
	"infinity":            {},
	"unlimited":           {},
}

// ParseDepth converts a user supplied depth into a depth budget.
// Non-negative integers are returned as is; the unlimited literals map to UnlimitedDepth.
func ParseDepth(input string) (int, error) {
	normalizedInput := strings.ToLower(strings.TrimSpace(input))
	if _, unlimited := unlimitedDepthLiterals[normalizedInput]; unlimited {
		return UnlimitedDepth, nil
	}
	parsedDepth, parseError := strconv.Atoi(normalizedInput)
	if parseError != nil {
		return 0, fmt.Errorf(errorInvalidDepthFormat, input, unlimitedDepthLiteral)
	}
	if parsedDepth < 0 {
		return 0, fmt.Errorf(errorNegativeDepthFormat, input)
	}
	return parsedDepth, nil
}

// FormatDepth renders a depth budget the way ParseDepth accepts it.
func FormatDepth(depth int) string {
	if depth < 0 {
		return unlimitedDepthLiteral
	}
	return strconv.Itoa(depth)
}
