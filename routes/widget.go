package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"bookaroo-server/models"
	"bookaroo-server/storage"
	"bookaroo-server/utils"

	"github.com/kataras/iris/v12"
)

var widgetCtx = context.Background()

// widgetConfigTTL bounds how stale a cached widget config can be after a
// host edits pricing.
const widgetConfigTTL = 5 * time.Minute

type widgetConfig struct {
	PropertyID  uint               `json:"propertyID"`
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	Type        string             `json:"type"`
	BasePrice   float64            `json:"basePrice"`
	CleaningFee float64            `json:"cleaningFee"`
	MaxGuests   int                `json:"maxGuests"`
	Currency    string             `json:"currency"`
	Seasonal    map[string]float64 `json:"seasonalRates"`
}

// GetWidgetConfig is the public, unauthenticated endpoint the embedded
// widget bootstraps from, addressed by widget key rather than property ID
// so the numeric ID space is not exposed. Responses are cached in Redis.
func GetWidgetConfig(ctx iris.Context) {
	key := ctx.Params().Get("widgetKey")

	cacheKey := "widget:config:" + key
	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(widgetCtx, cacheKey).Result(); err == nil {
			ctx.ContentType("application/json")
			ctx.WriteString(cached)
			return
		}
	}

	var property models.Property
	if err := storage.DB.Where("widget_key = ?", key).First(&property).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Unknown widget key", ctx)
		return
	}
	if property.IsActive != nil && !*property.IsActive {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Unknown widget key", ctx)
		return
	}

	config := widgetConfig{
		PropertyID:  property.ID,
		Name:        property.Name,
		Location:    property.Location,
		Type:        property.Type,
		BasePrice:   property.BasePrice,
		CleaningFee: property.CleaningFee,
		MaxGuests:   property.MaxGuests,
		Currency:    property.Currency,
		Seasonal:    property.SeasonalRateMap(),
	}

	payload, _ := json.Marshal(iris.Map{"success": true, "data": config})
	if storage.Redis != nil {
		storage.Redis.Set(widgetCtx, cacheKey, string(payload), widgetConfigTTL)
	}

	ctx.ContentType("application/json")
	ctx.Write(payload)
}

// GetWidgetEmbed returns the copy-paste snippet for the host dashboard's
// "embed widget" screen.
func GetWidgetEmbed(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	property, ok := ownedProperty(ctx, id, userID)
	if !ok {
		return
	}

	base := os.Getenv("WIDGET_BASE_URL")
	if base == "" {
		base = "https://widget.bookaroo.app"
	}

	snippet := fmt.Sprintf(
		`<script src="%s/embed.js" data-bookaroo-key="%s" async></script>`,
		base, property.WidgetKey)

	ctx.JSON(iris.Map{
		"widgetKey": property.WidgetKey,
		"embedCode": snippet,
	})
}

// RegenerateWidgetKey rotates a property's widget key, invalidating
// previously embedded snippets and the cached config.
func RegenerateWidgetKey(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	property, ok := ownedProperty(ctx, id, userID)
	if !ok {
		return
	}

	oldKey := property.WidgetKey
	property.WidgetKey = utils.GenerateShortToken(16)
	if err := storage.DB.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if storage.Redis != nil && oldKey != "" {
		storage.Redis.Del(widgetCtx, "widget:config:"+oldKey)
	}

	ctx.JSON(iris.Map{"widgetKey": property.WidgetKey})
}
