package submissions

import (
	"carecapture-service/internal/app/models"
	"context"
)

// StructuredCompiler compiles one structured list into backend writes.
type StructuredCompiler interface {
	Compile(ctx context.Context, value models.StructuredValue, requestContext models.RequestContext) ([]models.Request, error)
}
