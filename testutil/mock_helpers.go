// Package testutil contains helpers which cut down on the boilerplate required when unit testing the library.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMatchContext matches any context argument when setting up mock expectations.
var MockMatchContext = mock.MatchedBy(func(_ context.Context) bool { return true })
