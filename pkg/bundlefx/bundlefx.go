// bundlefx/bundlefx.go
package bundlefx

import (
	"github.com/joeydtaylor/tramp/pkg/middleware/auth"
	"github.com/joeydtaylor/tramp/pkg/middleware/logger"
	"github.com/joeydtaylor/tramp/pkg/middleware/metrics"
	"go.uber.org/fx"
)

// Module provides the system/access loggers, the access-log middleware,
// the /metrics handler with the dispatch observer, and the optional
// assertion guard.
var Module = fx.Options(
	logger.Module,
	metrics.Module,
	auth.Module,
)
