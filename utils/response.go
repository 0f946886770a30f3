package utils

import (
	"github.com/kataras/iris/v12"
)

// JSONEnvelope writes the data/meta/links envelope the dashboard consumes.
// links is reserved for pagination cursors and stays empty for now.
func JSONEnvelope(ctx iris.Context, data interface{}, meta iris.Map) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  meta,
		"links": iris.Map{},
	})
}
